// Copyright 2026 Skyward Data
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/skyward-data/airq/ai"
	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/storage"
)

const (
	// DefaultTopK is the number of nearest neighbors retrieved per question.
	DefaultTopK = 3

	// DefaultKeywordLimit caps the keyword matches retrieved per question.
	DefaultKeywordLimit = 3

	// FallbackAnswer is the canonical refusal string. It is returned verbatim
	// when no evidence exists and demanded verbatim from the generator when
	// the evidence cannot answer the question.
	FallbackAnswer = "Data not available in the dataset."

	// TableSource names the dataset table; it is always the first source of a
	// result.
	TableSource = "table: air_quality_cleaned"
)

// Confidence is reported per answering path, not computed: answers that went
// through generation carry the grounded value, evidence-free refusals the
// fallback value.
const (
	fallbackConfidence = 0.20
	groundedConfidence = 0.83
)

// Answerer answers natural-language questions over the indexed dataset using
// hybrid retrieval and grounded generation.
type Answerer struct {
	index    storage.VectorIndex
	keywords storage.KeywordStore
	provider ai.AIProvider

	topK         int
	keywordLimit int
	logger       *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) {
		a.logger = logger
	}
}

// WithTopK sets the number of nearest neighbors retrieved per question.
func WithTopK(k int) Option {
	return func(a *Answerer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithKeywordLimit sets the cap on keyword matches retrieved per question.
func WithKeywordLimit(limit int) Option {
	return func(a *Answerer) {
		if limit > 0 {
			a.keywordLimit = limit
		}
	}
}

// NewAnswerer creates an Answerer over the given stores and AI provider.
func NewAnswerer(index storage.VectorIndex, keywords storage.KeywordStore, provider ai.AIProvider, opts ...Option) (*Answerer, error) {
	if index == nil {
		return nil, ErrVectorIndexRequired
	}
	if keywords == nil {
		return nil, ErrKeywordStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	a := &Answerer{
		index:        index,
		keywords:     keywords,
		provider:     provider,
		topK:         DefaultTopK,
		keywordLimit: DefaultKeywordLimit,
		logger:       slog.Default().With("component", "answerer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Ask answers a question over the dataset.
func (a *Answerer) Ask(ctx context.Context, question string) (*core.AnswerResult, error) {
	return a.AskWithMonitor(ctx, question, noopMonitor{})
}

// AskWithMonitor answers a question, reporting each stage to the monitor.
//
// Both retrieval channels run concurrently. When the assembled context is
// empty the engine refuses without consulting the generator; a generation
// failure surfaces as an error, never as a fabricated answer.
func (a *Answerer) AskWithMonitor(ctx context.Context, question string, monitor Monitor) (*core.AnswerResult, error) {
	if monitor == nil {
		monitor = noopMonitor{}
	}
	monitor.Start(question)

	vector, keyword, err := a.retrieve(ctx, question)
	if err != nil {
		monitor.Finish(nil, err)
		return nil, err
	}
	monitor.AfterVectorSearch(vector)
	monitor.AfterKeywordSearch(keyword)

	evidence := mergeEvidence(vector, keyword)
	monitor.AfterMerge(evidence)

	block := buildContext(evidence)
	monitor.AfterContext(block)

	if block.Empty() {
		a.logger.Info("no evidence for question, answering with fallback")
		monitor.Fallback()
		result := &core.AnswerResult{
			Answer:     FallbackAnswer,
			Sources:    []string{TableSource},
			Confidence: fallbackConfidence,
		}
		monitor.Finish(result, nil)
		return result, nil
	}

	system, user := buildPrompts(block.Text, question)
	text, err := a.provider.Generator().Generate(ctx, system, user)
	if err != nil {
		err = fmt.Errorf("generating answer: %w", err)
		monitor.Finish(nil, err)
		return nil, err
	}

	sources := make([]string, 0, len(block.Sources)+1)
	sources = append(sources, TableSource)
	sources = append(sources, block.Sources...)

	result := &core.AnswerResult{
		Answer:     text,
		Sources:    sources,
		Confidence: groundedConfidence,
	}
	monitor.Finish(result, nil)
	return result, nil
}

// retrieve runs both retrieval channels concurrently and resolves vector hits
// to full rows. A hit that cannot be resolved is a corrupted-artifact signal
// and fails the whole question.
func (a *Answerer) retrieve(ctx context.Context, question string) ([]core.Evidence, []*core.Row, error) {
	embedding, err := a.provider.Embedder().EmbedText(ctx, question)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding question: %w", err)
	}

	var (
		vector  []core.Evidence
		keyword []*core.Row
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hits, err := a.index.Search(gctx, embedding, a.topK)
		if err != nil {
			return fmt.Errorf("vector search: %w", err)
		}
		vector = make([]core.Evidence, 0, len(hits))
		for _, hit := range hits {
			row, err := a.index.Row(hit.RowID)
			if err != nil {
				return fmt.Errorf("resolving vector hit %d: %w", hit.RowID, err)
			}
			vector = append(vector, core.Evidence{
				Row:        row,
				Provenance: core.ProvenanceVector,
				Distance:   hit.Distance,
			})
		}
		return nil
	})

	g.Go(func() error {
		rows, err := a.keywords.FindByCitySubstring(gctx, question, a.keywordLimit)
		if err != nil {
			return fmt.Errorf("keyword search: %w", err)
		}
		keyword = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return vector, keyword, nil
}

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


package airq

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/skyward-data/airq/ai"
	"github.com/skyward-data/airq/ai/ollama"
	"github.com/skyward-data/airq/answer"
	"github.com/skyward-data/airq/core"
	"github.com/skyward-data/airq/index"
	"github.com/skyward-data/airq/ingestion"
	"github.com/skyward-data/airq/storage"
	"github.com/skyward-data/airq/storage/sqlite"
)

// Artifact file names inside the data directory. All three are written by one
// build pass and stamped with the same fingerprint.
const (
	VectorIndexFile = "vectors.idx"
	RowMetaDir      = "rows_db"
	DatasetFile     = "air_quality.db"
)

// System is the assembled answering engine: loaded artifacts, AI provider,
// and the answerer wired over them.
type System struct {
	index    *index.Index
	dataset  *sqlite.Store
	provider ai.AIProvider
	answerer *answer.Answerer
	logger   *slog.Logger
}

// SystemOption configures OpenSystem.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig   *ai.Config
	provider   ai.AIProvider
	answerOpts []answer.Option
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider directly, bypassing provider
// construction. Intended for tests.
func WithProvider(provider ai.AIProvider) SystemOption {
	return func(o *systemOptions) {
		o.provider = provider
	}
}

// WithAnswerOptions passes options through to the answerer.
func WithAnswerOptions(opts ...answer.Option) SystemOption {
	return func(o *systemOptions) {
		o.answerOpts = append(o.answerOpts, opts...)
	}
}

// OpenSystem opens the artifacts in dataDir and assembles the answering
// engine over them. It refuses to start when the dataset database and the
// index artifacts carry different build fingerprints, or when they were
// embedded with a different model than the provider is configured for.
func OpenSystem(ctx context.Context, dataDir string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	idx, err := index.Load(ctx, filepath.Join(dataDir, VectorIndexFile), filepath.Join(dataDir, RowMetaDir))
	if err != nil {
		return nil, fmt.Errorf("loading index: %w", err)
	}
	manifest := idx.Manifest()

	dataset, err := sqlite.Open(filepath.Join(dataDir, DatasetFile))
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}

	fingerprint, err := dataset.Meta(ctx, sqlite.MetaFingerprint)
	if err != nil {
		dataset.Close()
		return nil, fmt.Errorf("reading dataset fingerprint: %w", err)
	}
	if fingerprint != manifest.Fingerprint {
		dataset.Close()
		return nil, fmt.Errorf("%w: dataset %s, index %s",
			storage.ErrArtifactMismatch, fingerprint, manifest.Fingerprint)
	}

	provider := options.provider
	if provider == nil {
		// Questions must be embedded with the model the index was built
		// with; the manifest, not the config, is authoritative.
		config := options.aiConfig
		config.EmbeddingModel = manifest.EmbeddingModel
		provider, err = ollama.NewProvider(config)
		if err != nil {
			dataset.Close()
			return nil, fmt.Errorf("creating AI provider: %w", err)
		}
	}

	answerer, err := answer.NewAnswerer(idx, dataset, provider, options.answerOpts...)
	if err != nil {
		provider.Close()
		dataset.Close()
		return nil, err
	}

	logger := slog.Default().With("component", "system")
	logger.Info("system ready",
		"rows", idx.Count(),
		"embedding_model", manifest.EmbeddingModel,
		"fingerprint", manifest.Fingerprint)

	return &System{
		index:    idx,
		dataset:  dataset,
		provider: provider,
		answerer: answerer,
		logger:   logger,
	}, nil
}

// Ask answers a question over the dataset.
func (s *System) Ask(ctx context.Context, question string) (*core.AnswerResult, error) {
	return s.answerer.Ask(ctx, question)
}

// Answerer returns the underlying answering engine.
func (s *System) Answerer() *answer.Answerer {
	return s.answerer
}

// Index returns the loaded vector index.
func (s *System) Index() *index.Index {
	return s.index
}

// Close releases all resources.
func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.dataset.Close(); err != nil {
		s.logger.Error("error closing dataset", "err", err)
		return err
	}
	return nil
}

// BuildArtifacts runs one full build pass: load and clean the CSV at csvPath,
// embed every row, and write the three artifacts into dataDir stamped with a
// shared fingerprint. Returns the manifest of the pass.
func BuildArtifacts(ctx context.Context, csvPath, dataDir string, embedder ai.Embedder, embeddingModel string, embedOpts ingestion.EmbedOptions) (*storage.Manifest, error) {
	pipeline := ingestion.NewPipeline()
	rows, err := pipeline.LoadRows(csvPath)
	if err != nil {
		return nil, err
	}

	if report := core.ValidateRows(rows); !report.Passed() {
		for _, failure := range report.Failures {
			slog.Default().Warn("row failed validation", "row_id", failure.RowID, "reason", failure.Reason)
		}
		return nil, fmt.Errorf("%d of %d rows failed validation", report.Failed, report.Checked)
	}

	vectors, err := ingestion.EmbedRows(ctx, embedder, rows, embedOpts)
	if err != nil {
		return nil, err
	}

	manifest, err := index.Build(ctx, rows, vectors, embeddingModel,
		filepath.Join(dataDir, VectorIndexFile), filepath.Join(dataDir, RowMetaDir))
	if err != nil {
		return nil, err
	}

	dataset, err := sqlite.Open(filepath.Join(dataDir, DatasetFile))
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer dataset.Close()

	if err := dataset.ReplaceRows(ctx, rows); err != nil {
		return nil, err
	}
	if err := dataset.SetMeta(ctx, sqlite.MetaFingerprint, manifest.Fingerprint); err != nil {
		return nil, err
	}
	if err := dataset.SetMeta(ctx, sqlite.MetaEmbeddingModel, manifest.EmbeddingModel); err != nil {
		return nil, err
	}
	if err := dataset.SetMeta(ctx, sqlite.MetaBuiltAt, manifest.BuiltAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}

	return manifest, nil
}

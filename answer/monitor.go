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

import "github.com/skyward-data/airq/core"

// Monitor receives callbacks at each stage of answering a question.
// Implementations must be fast; callbacks run synchronously on the request
// path.
type Monitor interface {
	// Start is called when a question is accepted.
	Start(question string)

	// AfterVectorSearch is called with the resolved vector evidence.
	AfterVectorSearch(evidence []core.Evidence)

	// AfterKeywordSearch is called with the keyword matches.
	AfterKeywordSearch(rows []*core.Row)

	// AfterMerge is called with the fused evidence list.
	AfterMerge(evidence []core.Evidence)

	// AfterContext is called with the assembled context block.
	AfterContext(block *core.ContextBlock)

	// Fallback is called when the engine answers without invoking generation.
	Fallback()

	// Finish is called with the final result, or nil when answering failed.
	Finish(result *core.AnswerResult, err error)
}

// noopMonitor is the default Monitor that does nothing.
type noopMonitor struct{}

func (noopMonitor) Start(string)                      {}
func (noopMonitor) AfterVectorSearch([]core.Evidence) {}
func (noopMonitor) AfterKeywordSearch([]*core.Row)    {}
func (noopMonitor) AfterMerge([]core.Evidence)        {}
func (noopMonitor) AfterContext(*core.ContextBlock)   {}
func (noopMonitor) Fallback()                         {}
func (noopMonitor) Finish(*core.AnswerResult, error)  {}

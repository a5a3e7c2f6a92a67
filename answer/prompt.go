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

import "fmt"

// systemPrompt pins the generator to the dataset; it is sent with every
// generation request.
const systemPrompt = "You are a strict data analyst. Never use outside knowledge."

// userPromptTemplate wraps the context block and question. The quoted phrase
// must match FallbackAnswer exactly so callers see one canonical refusal
// string regardless of which path produced it.
const userPromptTemplate = `
You are a data analyst assistant.

You MUST answer ONLY using the dataset below.
If the answer is not present, reply exactly:
"%s"

DATA:
%s

QUESTION:
%s

Give a short factual answer.
`

// buildPrompts returns the system and user prompts for a generation request.
func buildPrompts(contextText, question string) (system, user string) {
	return systemPrompt, fmt.Sprintf(userPromptTemplate, FallbackAnswer, contextText, question)
}

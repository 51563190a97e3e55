// Copyright (c) 2025 DifyForge Authors.
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

package ktypes

// Backend names accepted by knowledgebase.NewKnowledgeBase.
const (
	DifyBackend  = "dify"
	LocalBackend = "local"
)

// KnowledgeEntry is one retrieved chunk, normalized across backends.
type KnowledgeEntry struct {
	Content  string
	Score    float64
	Metadata map[string]any
}

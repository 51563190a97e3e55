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

package _interface

import (
	"context"

	"github.com/difyforge/difykb-go/knowledgebase/ktypes"
)

// KnowledgeBackend is the storage-agnostic contract the knowledge base tool
// talks to. Opts carry backend-specific overrides (topK, searchMethod, ...)
// without widening the interface.
type KnowledgeBackend interface {
	Search(ctx context.Context, query string, opts ...map[string]any) ([]ktypes.KnowledgeEntry, error)
	AddFromText(ctx context.Context, texts []string, opts ...map[string]any) error
	Dataset() string
}

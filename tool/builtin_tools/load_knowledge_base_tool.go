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

package builtin_tools

import (
	"github.com/difyforge/difykb-go/knowledgebase"
	"github.com/difyforge/difykb-go/knowledgebase/ktypes"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

type QueryKnowledgeReq struct {
	Query string `json:"query" jsonschema:"The query for loading the knowledge base for this tool"`
}

type QueryKnowledgeResult struct {
	Result []ktypes.KnowledgeEntry `json:"result,omitempty"`
}

// LoadKnowledgeBaseTool wraps a configured knowledge base into a single
// search tool named after the knowledge base.
func LoadKnowledgeBaseTool(knowledge *knowledgebase.KnowledgeBase) (tool.Tool, error) {
	handler := func(ctx tool.Context, req *QueryKnowledgeReq) (QueryKnowledgeResult, error) {
		result, err := knowledge.Backend.Search(ctx, req.Query)
		if err != nil {
			return QueryKnowledgeResult{}, err
		}
		return QueryKnowledgeResult{
			Result: result,
		}, nil
	}
	return functiontool.New(
		functiontool.Config{
			Name:        knowledge.Name,
			Description: knowledge.Description,
		},
		handler)
}

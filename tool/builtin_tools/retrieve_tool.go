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
	"context"
	"encoding/json"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

var retrieveToolDescription = `
	Search a dataset and return the best matching chunks.

    Args:
    Required:
        - dataset_id (str)
        - query (str): the search query.
    Optional:
        - search_method (str): "keyword_search" (default), "semantic_search",
          "hybrid_search" or "full_text_search".
        - top_k (int): number of chunks to return. Default: 5.
        - score_threshold (float): when set, only chunks scoring at or above
          the threshold are returned.
        - reranking_enable (bool): rerank results with a reranking model.
        - reranking_provider_name (str): reranking model provider.
        - reranking_model_name (str): reranking model name.
    Returns:
        {"query": {...}, "records": [{"segment": {...}, "score": n}]}
`

type RetrieveArgs struct {
	DatasetID             string   `json:"dataset_id" jsonschema:"The dataset id to search"`
	Query                 string   `json:"query" jsonschema:"The search query"`
	SearchMethod          string   `json:"search_method,omitempty" jsonschema:"keyword_search, semantic_search, hybrid_search or full_text_search"`
	TopK                  int      `json:"top_k,omitempty" jsonschema:"Number of chunks to return, default 5"`
	ScoreThreshold        *float64 `json:"score_threshold,omitempty" jsonschema:"Minimum relevance score for returned chunks"`
	RerankingEnable       bool     `json:"reranking_enable,omitempty" jsonschema:"Rerank results with a reranking model"`
	RerankingProviderName string   `json:"reranking_provider_name,omitempty" jsonschema:"Reranking model provider"`
	RerankingModelName    string   `json:"reranking_model_name,omitempty" jsonschema:"Reranking model name"`
}

func NewRetrieveTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req RetrieveArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.Retrieve(ctx, &dify_knowledge.RetrieveRequest{
				DatasetID:             req.DatasetID,
				Query:                 req.Query,
				SearchMethod:          req.SearchMethod,
				TopK:                  req.TopK,
				ScoreThreshold:        req.ScoreThreshold,
				RerankingEnable:       req.RerankingEnable,
				RerankingProviderName: req.RerankingProviderName,
				RerankingModelName:    req.RerankingModelName,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "retrieve",
			Description: retrieveToolDescription,
		},
		handler)
}

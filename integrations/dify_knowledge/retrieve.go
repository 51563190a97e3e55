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

package dify_knowledge

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/difyforge/difykb-go/common"
)

// RetrieveRequest searches a dataset. Supplying ScoreThreshold implies
// enabling the threshold on the remote side.
type RetrieveRequest struct {
	DatasetID    string
	Query        string
	SearchMethod string
	TopK         int

	ScoreThreshold        *float64
	RerankingEnable       bool
	RerankingProviderName string
	RerankingModelName    string
}

// retrievalModel mirrors the API's retrieval_model object. Null-valued
// fields are serialized explicitly, matching what the service expects.
type retrievalModel struct {
	SearchMethod          string         `json:"search_method"`
	RerankingEnable       bool           `json:"reranking_enable"`
	RerankingMode         *string        `json:"reranking_mode"`
	RerankingModel        rerankingModel `json:"reranking_model"`
	Weights               *float64       `json:"weights"`
	TopK                  int            `json:"top_k"`
	ScoreThresholdEnabled bool           `json:"score_threshold_enabled"`
	ScoreThreshold        *float64       `json:"score_threshold"`
}

type rerankingModel struct {
	RerankingProviderName string `json:"reranking_provider_name"`
	RerankingModelName    string `json:"reranking_model_name"`
}

func (r *RetrieveRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("query", r.Query); err != nil {
		return nil, err
	}
	method, err := optionalEnum("search_method", r.SearchMethod, common.DEFAULT_SEARCH_METHOD, SearchMethods)
	if err != nil {
		return nil, err
	}
	topK := r.TopK
	if topK == 0 {
		topK = common.DEFAULT_TOPK
	}
	if topK < 1 {
		return nil, validationErrorf("top_k must be a positive integer, got %d", r.TopK)
	}

	return &Request{
		Method: http.MethodPost,
		Path:   datasetPath(r.DatasetID, "/retrieve"),
		Body: map[string]any{
			"query": r.Query,
			"retrieval_model": retrievalModel{
				SearchMethod:    method,
				RerankingEnable: r.RerankingEnable,
				RerankingModel: rerankingModel{
					RerankingProviderName: r.RerankingProviderName,
					RerankingModelName:    r.RerankingModelName,
				},
				TopK:                  topK,
				ScoreThresholdEnabled: r.ScoreThreshold != nil,
				ScoreThreshold:        r.ScoreThreshold,
			},
		},
	}, nil
}

// RetrieveResult decodes the retrieval response envelope.
type RetrieveResult struct {
	Query struct {
		Content string `json:"content"`
	} `json:"query"`
	Records []RetrieveRecord `json:"records"`
}

type RetrieveRecord struct {
	Segment struct {
		ID       string `json:"id"`
		Content  string `json:"content"`
		Document struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"document"`
	} `json:"segment"`
	Score float64 `json:"score"`
}

func (c *Client) Retrieve(ctx context.Context, req *RetrieveRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

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

package dify_knowledge_backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/difyforge/difykb-go/common"
	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	_interface "github.com/difyforge/difykb-go/knowledgebase/interface"
	"github.com/difyforge/difykb-go/knowledgebase/ktypes"
	"github.com/difyforge/difykb-go/log"
	"github.com/difyforge/difykb-go/utils"
	"github.com/google/uuid"
)

var ErrNewDifyKnowledgeBase = errors.New("NewDifyKnowledgeBackend error")
var ErrDifyKnowledgeBaseSearch = errors.New("DifyKnowledgeBackend search error")
var ErrDifyKnowledgeBaseAddDocs = errors.New("DifyKnowledgeBackend add docs error")

type Config struct {
	APIKey  string
	BaseURL string

	// DatasetID selects an existing dataset. When empty and CreateIfNotExist
	// is set, a dataset named DatasetName is created instead.
	DatasetID        string
	DatasetName      string
	CreateIfNotExist bool

	TopK           int
	SearchMethod   string
	ScoreThreshold *float64
}

type DifyKnowledgeBackend struct {
	client *dify_knowledge.Client
	config *Config
}

func NewDifyKnowledgeBackend(cfg *Config) (_interface.KnowledgeBackend, error) {
	client, err := dify_knowledge.New(&dify_knowledge.Client{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w : %w", ErrNewDifyKnowledgeBase, err)
	}

	if cfg.DatasetID == "" {
		if !cfg.CreateIfNotExist {
			return nil, fmt.Errorf("%w : dataset id is empty and CreateIfNotExist is false", ErrNewDifyKnowledgeBase)
		}
		if cfg.DatasetName == "" {
			return nil, fmt.Errorf("%w : dataset name is required to create a dataset", ErrNewDifyKnowledgeBase)
		}
		raw, err := client.CreateDataset(context.Background(), &dify_knowledge.CreateDatasetRequest{Name: cfg.DatasetName})
		if err != nil {
			return nil, fmt.Errorf("%w : create dataset error: %w", ErrNewDifyKnowledgeBase, err)
		}
		var created dify_knowledge.Dataset
		if err := json.Unmarshal(raw, &created); err != nil {
			return nil, fmt.Errorf("%w : decode created dataset: %w", ErrNewDifyKnowledgeBase, err)
		}
		cfg.DatasetID = created.ID
		log.Info("Create dify dataset", cfg.DatasetName, "successfully, id:", created.ID)
	}

	if cfg.TopK <= 0 {
		cfg.TopK = common.DEFAULT_TOPK
	}
	if cfg.SearchMethod == "" {
		cfg.SearchMethod = common.DEFAULT_SEARCH_METHOD
	}
	return &DifyKnowledgeBackend{
		client: client,
		config: cfg,
	}, nil
}

func (d *DifyKnowledgeBackend) Search(ctx context.Context, query string, opts ...map[string]any) ([]ktypes.KnowledgeEntry, error) {
	req := &dify_knowledge.RetrieveRequest{
		DatasetID:      d.config.DatasetID,
		Query:          query,
		SearchMethod:   utils.ExtractOptsValueWithDefault[string]("searchMethod", d.config.SearchMethod, opts...),
		TopK:           utils.ExtractOptsValueWithDefault[int]("topK", d.config.TopK, opts...),
		ScoreThreshold: d.config.ScoreThreshold,
	}
	if threshold, err := utils.ExtractOptsValue[float64]("scoreThreshold", opts...); err == nil {
		req.ScoreThreshold = &threshold
	}

	raw, err := d.client.Retrieve(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w : %w", ErrDifyKnowledgeBaseSearch, err)
	}

	var result dify_knowledge.RetrieveResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w : decode retrieve response: %w", ErrDifyKnowledgeBaseSearch, err)
	}

	var entries []ktypes.KnowledgeEntry
	for _, record := range result.Records {
		entries = append(entries, ktypes.KnowledgeEntry{
			Content: record.Segment.Content,
			Score:   record.Score,
			Metadata: map[string]any{
				"segment_id":    record.Segment.ID,
				"document_id":   record.Segment.Document.ID,
				"document_name": record.Segment.Document.Name,
			},
		})
	}
	return entries, nil
}

func (d *DifyKnowledgeBackend) AddFromText(ctx context.Context, texts []string, opts ...map[string]any) error {
	prefix := utils.ExtractOptsValueWithDefault[string]("namePrefix", "text", opts...)
	for _, text := range texts {
		name := fmt.Sprintf("%s-%s", prefix, uuid.NewString())
		_, err := d.client.CreateDocumentByText(ctx, &dify_knowledge.CreateDocumentByTextRequest{
			DatasetID: d.config.DatasetID,
			Name:      name,
			Text:      text,
		})
		if err != nil {
			return fmt.Errorf("%w : create document %s error: %w", ErrDifyKnowledgeBaseAddDocs, name, err)
		}
	}
	return nil
}

func (d *DifyKnowledgeBackend) Dataset() string {
	return d.config.DatasetID
}

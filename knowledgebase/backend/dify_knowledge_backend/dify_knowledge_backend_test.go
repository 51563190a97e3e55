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
	"testing"

	"github.com/bytedance/mockey"
	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/stretchr/testify/assert"
)

func TestNewDifyKnowledgeBackend(t *testing.T) {
	mockey.PatchConvey("TestNewDifyKnowledgeBackend", t, func() {
		cfg := &Config{
			APIKey:  "dataset-test-key",
			BaseURL: "https://api.dify.example/v1",
		}

		mockey.PatchConvey("dataset id empty and not create", func() {
			c := *cfg
			kb, err := NewDifyKnowledgeBackend(&c)
			assert.Nil(t, kb)
			assert.NotNil(t, err)
		})

		mockey.PatchConvey("create dataset failed", func() {
			c := *cfg
			c.CreateIfNotExist = true
			c.DatasetName = "kb"
			mockey.Mock((*dify_knowledge.Client).CreateDataset).Return(nil, assert.AnError).Build()
			kb, err := NewDifyKnowledgeBackend(&c)
			assert.Nil(t, kb)
			assert.NotNil(t, err)
		})

		mockey.PatchConvey("create dataset success", func() {
			c := *cfg
			c.CreateIfNotExist = true
			c.DatasetName = "kb"
			mockey.Mock((*dify_knowledge.Client).CreateDataset).
				Return(json.RawMessage(`{"id":"ds-new","name":"kb"}`), nil).Build()
			kb, err := NewDifyKnowledgeBackend(&c)
			assert.Nil(t, err)
			assert.NotNil(t, kb)
			assert.Equal(t, "ds-new", kb.Dataset())
		})

		mockey.PatchConvey("existing dataset applies defaults", func() {
			c := *cfg
			c.DatasetID = "ds-1"
			kb, err := NewDifyKnowledgeBackend(&c)
			assert.Nil(t, err)
			assert.NotNil(t, kb)
			assert.Equal(t, 5, c.TopK)
			assert.Equal(t, "keyword_search", c.SearchMethod)
		})
	})
}

func TestDifyKnowledgeBackend_Search(t *testing.T) {
	mockey.PatchConvey("TestDifyKnowledgeBackend_Search", t, func() {
		cfg := &Config{
			APIKey:    "dataset-test-key",
			BaseURL:   "https://api.dify.example/v1",
			DatasetID: "ds-1",
		}
		kb, err := NewDifyKnowledgeBackend(cfg)
		assert.Nil(t, err)

		mockey.PatchConvey("search error", func() {
			mockey.Mock((*dify_knowledge.Client).Retrieve).Return(nil, assert.AnError).Build()
			entries, err := kb.Search(context.Background(), "query")
			assert.Nil(t, entries)
			assert.NotNil(t, err)
		})

		mockey.PatchConvey("search success", func() {
			mockey.Mock((*dify_knowledge.Client).Retrieve).Return(json.RawMessage(`{
				"query": {"content": "query"},
				"records": [
					{"segment": {"id": "seg-1", "content": "first chunk", "document": {"id": "doc-1", "name": "notes"}}, "score": 0.92},
					{"segment": {"id": "seg-2", "content": "second chunk", "document": {"id": "doc-1", "name": "notes"}}, "score": 0.41}
				]
			}`), nil).Build()

			entries, err := kb.Search(context.Background(), "query")
			assert.Nil(t, err)
			assert.Len(t, entries, 2)
			assert.Equal(t, "first chunk", entries[0].Content)
			assert.Equal(t, 0.92, entries[0].Score)
			assert.Equal(t, "doc-1", entries[0].Metadata["document_id"])
		})

		mockey.PatchConvey("opts override config", func() {
			var captured *dify_knowledge.RetrieveRequest
			mockey.Mock((*dify_knowledge.Client).Retrieve).To(
				func(c *dify_knowledge.Client, ctx context.Context, req *dify_knowledge.RetrieveRequest) (json.RawMessage, error) {
					captured = req
					return json.RawMessage(`{"records":[]}`), nil
				}).Build()

			_, err := kb.Search(context.Background(), "query", map[string]any{
				"topK":           3,
				"searchMethod":   "hybrid_search",
				"scoreThreshold": 0.7,
			})
			assert.Nil(t, err)
			assert.Equal(t, 3, captured.TopK)
			assert.Equal(t, "hybrid_search", captured.SearchMethod)
			assert.Equal(t, 0.7, *captured.ScoreThreshold)
		})
	})
}

func TestDifyKnowledgeBackend_AddFromText(t *testing.T) {
	mockey.PatchConvey("TestDifyKnowledgeBackend_AddFromText", t, func() {
		kb, err := NewDifyKnowledgeBackend(&Config{
			APIKey:    "dataset-test-key",
			BaseURL:   "https://api.dify.example/v1",
			DatasetID: "ds-1",
		})
		assert.Nil(t, err)

		mockey.PatchConvey("create document error", func() {
			mockey.Mock((*dify_knowledge.Client).CreateDocumentByText).Return(nil, assert.AnError).Build()
			err := kb.AddFromText(context.Background(), []string{"hello"})
			assert.NotNil(t, err)
		})

		mockey.PatchConvey("one document per text", func() {
			calls := 0
			mockey.Mock((*dify_knowledge.Client).CreateDocumentByText).To(
				func(c *dify_knowledge.Client, ctx context.Context, req *dify_knowledge.CreateDocumentByTextRequest) (json.RawMessage, error) {
					calls++
					assert.Equal(t, "ds-1", req.DatasetID)
					assert.NotEmpty(t, req.Name)
					return json.RawMessage(`{"document":{"id":"doc-1"},"batch":"b"}`), nil
				}).Build()

			err := kb.AddFromText(context.Background(), []string{"one", "two"})
			assert.Nil(t, err)
			assert.Equal(t, 2, calls)
		})
	})
}

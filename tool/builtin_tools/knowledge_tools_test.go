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
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/stretchr/testify/assert"
)

type spyTransport struct {
	calls int
	body  string
}

func (s *spyTransport) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Header:     http.Header{},
	}, nil
}

func testConfig(t *testing.T, spy *spyTransport) *KnowledgeConfig {
	t.Helper()
	client, err := dify_knowledge.New(
		&dify_knowledge.Client{APIKey: "dataset-test-key", BaseURL: "https://api.dify.example/v1"},
		dify_knowledge.WithHTTPClient(spy),
	)
	assert.NoError(t, err)
	return &KnowledgeConfig{Client: client}
}

func TestNewKnowledgeBaseTools(t *testing.T) {
	tools, err := NewKnowledgeBaseTools(&KnowledgeConfig{APIKey: "dataset-test-key"})
	assert.NoError(t, err)
	assert.Len(t, tools, 23)

	names := make(map[string]bool, len(tools))
	for _, tl := range tools {
		assert.False(t, names[tl.Name()], "duplicate tool name %s", tl.Name())
		names[tl.Name()] = true
	}
	for _, expected := range []string{
		"create_dataset", "list_datasets", "delete_dataset",
		"create_document", "list_documents", "delete_document", "get_indexing_status",
		"add_chunks", "list_chunks", "get_chunk", "update_chunk", "delete_chunk",
		"list_child_chunks", "create_child_chunk", "update_child_chunk", "delete_child_chunk",
		"create_metadata_field", "update_metadata_field", "delete_metadata_field",
		"list_metadata_fields", "toggle_built_in_metadata", "update_document_metadata",
		"retrieve",
	} {
		assert.True(t, names[expected], "missing tool %s", expected)
	}
}

func TestExecute_Success(t *testing.T) {
	spy := &spyTransport{body: `{"data":[]}`}
	cfg := testConfig(t, spy)

	result, err := execute(cfg, context.Background(), func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
		return client.ListDatasets(ctx, &dify_knowledge.ListDatasetsRequest{})
	})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Message)
	assert.JSONEq(t, `{"data":[]}`, string(result.Data))
	assert.Equal(t, 1, spy.calls)
}

func TestExecute_ValidationFoldedIntoResult(t *testing.T) {
	spy := &spyTransport{body: `{}`}
	cfg := testConfig(t, spy)

	result, err := execute(cfg, context.Background(), func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
		return client.CreateDataset(ctx, &dify_knowledge.CreateDatasetRequest{})
	})
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "name is required")
	assert.Nil(t, result.Data)
	assert.Equal(t, 0, spy.calls)
}

func TestExecute_ClientInitFailure(t *testing.T) {
	t.Setenv("DIFY_API_KEY", "")
	cfg := &KnowledgeConfig{BaseURL: "https://api.dify.example/v1"}

	result, err := execute(cfg, context.Background(), func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
		return client.ListDatasets(ctx, &dify_knowledge.ListDatasetsRequest{})
	})
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestToolResult_Serialization(t *testing.T) {
	encoded, err := json.Marshal(ToolResult{Success: true, Data: json.RawMessage(`{"id":"ds-1"}`)})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"ds-1"}}`, string(encoded))

	encoded, err = json.Marshal(ToolResult{Message: "dataset_id is required"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"dataset_id is required"}`, string(encoded))
}

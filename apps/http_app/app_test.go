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

package http_app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/difyforge/difykb-go/tool/builtin_tools"
	"github.com/stretchr/testify/assert"
)

type fakeTransport struct {
	calls int
	body  string
}

func (f *fakeTransport) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{},
	}, nil
}

func newTestServer(t *testing.T, transport *fakeTransport) *Server {
	t.Helper()
	client, err := dify_knowledge.New(
		&dify_knowledge.Client{APIKey: "dataset-test-key", BaseURL: "https://api.dify.example/v1"},
		dify_knowledge.WithHTTPClient(transport),
	)
	assert.NoError(t, err)
	srv, err := NewServer(&builtin_tools.KnowledgeConfig{Client: client})
	assert.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, &fakeTransport{body: `{}`})
	rec := doRequest(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_ListTools(t *testing.T) {
	srv := newTestServer(t, &fakeTransport{body: `{}`})
	rec := doRequest(t, srv, http.MethodGet, "/v1/tools", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Tools []string `json:"tools"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Tools, 23)
	assert.Contains(t, payload.Tools, "retrieve")
	assert.Contains(t, payload.Tools, "create_dataset")
}

func TestServer_UnknownTool(t *testing.T) {
	srv := newTestServer(t, &fakeTransport{body: `{}`})
	rec := doRequest(t, srv, http.MethodPost, "/v1/tools/nonexistent", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown tool")
}

func TestServer_InvokeSuccess(t *testing.T) {
	transport := &fakeTransport{body: `{"data":[],"total":0,"page":1,"has_more":false}`}
	srv := newTestServer(t, transport)

	rec := doRequest(t, srv, http.MethodPost, "/v1/tools/list_datasets", `{"page":1,"limit":5}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result builtin_tools.ToolResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"has_more":false}`, string(result.Data))
	assert.Equal(t, 1, transport.calls)
}

func TestServer_ValidationFailureStillAnswers200(t *testing.T) {
	transport := &fakeTransport{body: `{}`}
	srv := newTestServer(t, transport)

	rec := doRequest(t, srv, http.MethodPost, "/v1/tools/create_dataset", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result builtin_tools.ToolResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "name is required")
	assert.Equal(t, 0, transport.calls)
}

func TestServer_MalformedArguments(t *testing.T) {
	transport := &fakeTransport{body: `{}`}
	srv := newTestServer(t, transport)

	rec := doRequest(t, srv, http.MethodPost, "/v1/tools/retrieve", `{"top_k": "five"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result builtin_tools.ToolResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "invalid arguments")
	assert.Equal(t, 0, transport.calls)
}

func TestServer_ProcessRuleRejectedBeforeTransport(t *testing.T) {
	transport := &fakeTransport{body: `{}`}
	srv := newTestServer(t, transport)

	rec := doRequest(t, srv, http.MethodPost, "/v1/tools/create_document",
		`{"dataset_id":"ds-1","name":"doc","text":"hello","process_rule":"{\"mode\":"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result builtin_tools.ToolResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "process_rule")
	assert.Equal(t, 0, transport.calls)
}

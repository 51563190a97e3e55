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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// spyDoer counts round trips without performing any.
type spyDoer struct {
	calls int
	resp  *http.Response
	err   error
}

func (s *spyDoer) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	return s.resp, s.err
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c, err := New(&Client{APIKey: "dataset-test-key", BaseURL: serverURL})
	assert.NoError(t, err)
	return c
}

func TestNew_MissingAPIKey(t *testing.T) {
	t.Setenv("DIFY_API_KEY", "")
	_, err := New(&Client{BaseURL: "https://example.invalid/v1"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, DifyKnowledgeConfigErr))
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New(&Client{APIKey: "dataset-test-key", BaseURL: "https://example.invalid/v1/"})
	assert.NoError(t, err)
	assert.Equal(t, "https://example.invalid/v1", c.BaseURL)
}

func TestClient_RequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListDatasets(context.Background(), &ListDatasetsRequest{})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer dataset-test-key", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_ListPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"data":[{"id":"ds-1","name":"kb"}],"total":11,"page":2,"has_more":false}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	raw, err := c.ListDatasets(context.Background(), &ListDatasetsRequest{Pagination: Pagination{Page: 2, Limit: 10}})
	assert.NoError(t, err)

	var list DatasetList
	assert.NoError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 11, list.Total)
	assert.Equal(t, 2, list.Page)
	assert.False(t, list.HasMore)
	assert.Equal(t, "ds-1", list.Data[0].ID)
}

func TestClient_NoContentSynthesizesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	raw, err := c.DeleteDataset(context.Background(), &DeleteDatasetRequest{DatasetID: "ds-1"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Operation completed successfully"}`, string(raw))
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"segment not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetSegment(context.Background(), &GetSegmentRequest{
		DatasetID: "ds-1", DocumentID: "doc-1", SegmentID: "missing",
	})
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "segment not found")
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Authentication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.ValidateCredentials(context.Background())
	assert.True(t, IsAuthentication(err))
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limit exceeded"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Retrieve(context.Background(), &RetrieveRequest{DatasetID: "ds-1", Query: "q"})
	assert.True(t, IsRateLimited(err))
}

func TestClient_NetworkFailure(t *testing.T) {
	spy := &spyDoer{err: errors.New("dial tcp: connection refused")}
	c, err := New(&Client{APIKey: "dataset-test-key", BaseURL: "http://127.0.0.1:1"}, WithHTTPClient(spy))
	assert.NoError(t, err)

	_, err = c.ListDatasets(context.Background(), &ListDatasetsRequest{})
	assert.True(t, IsNetwork(err))
	assert.Equal(t, 1, spy.calls)
}

func TestClient_ValidationSkipsTransport(t *testing.T) {
	spy := &spyDoer{}
	c, err := New(&Client{APIKey: "dataset-test-key", BaseURL: "http://127.0.0.1:1"}, WithHTTPClient(spy))
	assert.NoError(t, err)

	_, err = c.CreateDataset(context.Background(), &CreateDatasetRequest{})
	assert.True(t, IsValidation(err))

	_, err = c.DeleteSegment(context.Background(), &DeleteSegmentRequest{DatasetID: "ds-1"})
	assert.True(t, IsValidation(err))

	assert.Equal(t, 0, spy.calls)
}

func TestClient_NoCachingBetweenCalls(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	req := &ListDatasetsRequest{}
	_, err := c.ListDatasets(context.Background(), req)
	assert.NoError(t, err)
	_, err = c.ListDatasets(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestClient_CreateDocumentBody(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets/ds-1/document/create-by-text", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"document":{"id":"doc-1","name":"notes"},"batch":"batch-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	raw, err := c.CreateDocumentByText(context.Background(), &CreateDocumentByTextRequest{
		DatasetID: "ds-1", Name: "notes", Text: "hello world",
	})
	assert.NoError(t, err)
	assert.Equal(t, "notes", gotBody["name"])
	assert.Equal(t, "high_quality", gotBody["indexing_technique"])

	var result CreateDocumentResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "doc-1", result.Document.ID)
	assert.Equal(t, "batch-1", result.Batch)
}

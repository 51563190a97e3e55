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
	"strings"

	"github.com/difyforge/difykb-go/common"
)

// CreateDocumentByTextRequest creates a document from text, or updates one
// when DocumentID is set. The routing decision is the caller's: there is no
// implicit lookup-by-name, which would be ambiguous when several documents
// share a name.
type CreateDocumentByTextRequest struct {
	DatasetID  string
	DocumentID string // empty -> create, set -> update
	Name       string
	Text       string

	IndexingTechnique string
	DocForm           string
	DocLanguage       string
	ProcessRule       *ProcessRule
}

// IsUpdate reports whether the request routes to update-by-text.
func (r *CreateDocumentByTextRequest) IsUpdate() bool {
	return strings.TrimSpace(r.DocumentID) != ""
}

func (r *CreateDocumentByTextRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("name", r.Name); err != nil {
		return nil, err
	}
	if err := requireID("text", r.Text); err != nil {
		return nil, err
	}

	technique, err := optionalEnum("indexing_technique", r.IndexingTechnique, common.DEFAULT_INDEXING_TECHNIQUE, IndexingTechniques)
	if err != nil {
		return nil, err
	}

	rule := r.ProcessRule
	if rule == nil {
		rule = DefaultProcessRule()
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	docForm := strings.TrimSpace(r.DocForm)
	if docForm != "" {
		if err := validateEnum("doc_form", docForm, DocForms); err != nil {
			return nil, err
		}
	}
	// A hierarchical rule only makes sense under parent-child chunking; let
	// the builder reject the mismatch instead of the remote service silently
	// misindexing.
	if rule.Mode == ProcessModeHierarchical && docForm != "hierarchical_model" {
		return nil, validationErrorf("process_rule mode %q requires doc_form %q, got %q",
			ProcessModeHierarchical, "hierarchical_model", docForm)
	}

	body := map[string]any{
		"name":               r.Name,
		"text":               r.Text,
		"indexing_technique": technique,
		"process_rule":       rule,
	}
	if docForm != "" {
		body["doc_form"] = docForm
	}
	if lang := strings.TrimSpace(r.DocLanguage); lang != "" {
		body["doc_language"] = lang
	}

	if r.IsUpdate() {
		return &Request{
			Method: http.MethodPost,
			Path:   documentPath(r.DatasetID, r.DocumentID, "/update-by-text"),
			Body:   body,
		}, nil
	}
	return &Request{
		Method: http.MethodPost,
		Path:   datasetPath(r.DatasetID, "/document/create-by-text"),
		Body:   body,
	}, nil
}

type ListDocumentsRequest struct {
	DatasetID string
	Keyword   string
	Pagination
}

func (r *ListDocumentsRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	page, err := r.Pagination.normalize()
	if err != nil {
		return nil, err
	}
	q := page.query()
	if keyword := strings.TrimSpace(r.Keyword); keyword != "" {
		q.Set("keyword", keyword)
	}
	return &Request{
		Method: http.MethodGet,
		Path:   datasetPath(r.DatasetID, "/documents"),
		Query:  q,
	}, nil
}

type DeleteDocumentRequest struct {
	DatasetID  string
	DocumentID string
}

func (r *DeleteDocumentRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("document_id", r.DocumentID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodDelete,
		Path:   documentPath(r.DatasetID, r.DocumentID, ""),
	}, nil
}

// IndexingStatusRequest reads embedding progress for a creation batch.
type IndexingStatusRequest struct {
	DatasetID string
	Batch     string
}

func (r *IndexingStatusRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("batch", r.Batch); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodGet,
		Path:   documentPath(r.DatasetID, r.Batch, "/indexing-status"),
	}, nil
}

// Document is the subset of document attributes surfaced in summaries.
type Document struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	WordCount      int    `json:"word_count"`
	IndexingStatus string `json:"indexing_status"`
}

type DocumentList struct {
	Data    []Document `json:"data"`
	Total   int        `json:"total"`
	Page    int        `json:"page"`
	HasMore bool       `json:"has_more"`
}

// CreateDocumentResult decodes the create/update response envelope.
type CreateDocumentResult struct {
	Document Document `json:"document"`
	Batch    string   `json:"batch"`
}

func (c *Client) CreateDocumentByText(ctx context.Context, req *CreateDocumentByTextRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) ListDocuments(ctx context.Context, req *ListDocumentsRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) DeleteDocument(ctx context.Context, req *DeleteDocumentRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) GetIndexingStatus(ctx context.Context, req *IndexingStatusRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

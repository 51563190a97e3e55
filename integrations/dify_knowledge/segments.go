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
)

// Segment is one retrievable chunk of a document. Answer is only meaningful
// in QA form; Keywords augment keyword search.
type Segment struct {
	Content  string   `json:"content"`
	Answer   string   `json:"answer,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// SplitKeywords turns the comma-separated keyword text the tools accept into
// a trimmed list.
func SplitKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

type AddSegmentsRequest struct {
	DatasetID  string
	DocumentID string
	Segments   []Segment
}

func (r *AddSegmentsRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("document_id", r.DocumentID); err != nil {
		return nil, err
	}
	if len(r.Segments) == 0 {
		return nil, validationErrorf("segments must contain at least one entry")
	}
	for i, seg := range r.Segments {
		if strings.TrimSpace(seg.Content) == "" {
			return nil, validationErrorf("segments[%d]: content is required", i)
		}
	}
	return &Request{
		Method: http.MethodPost,
		Path:   documentPath(r.DatasetID, r.DocumentID, "/segments"),
		Body:   map[string]any{"segments": r.Segments},
	}, nil
}

type ListSegmentsRequest struct {
	DatasetID  string
	DocumentID string
}

func (r *ListSegmentsRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("document_id", r.DocumentID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodGet,
		Path:   documentPath(r.DatasetID, r.DocumentID, "/segments"),
	}, nil
}

type GetSegmentRequest struct {
	DatasetID  string
	DocumentID string
	SegmentID  string
}

func (r *GetSegmentRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodGet,
		Path:   segmentPath(r.DatasetID, r.DocumentID, r.SegmentID, ""),
	}, nil
}

// UpdateSegmentRequest updates a chunk in place. Only non-zero fields are
// sent, so the remote keeps whatever the caller leaves out.
type UpdateSegmentRequest struct {
	DatasetID  string
	DocumentID string
	SegmentID  string

	Content  string
	Answer   string
	Keywords []string
	Enabled  *bool
}

func (r *UpdateSegmentRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	segment := map[string]any{}
	if r.Content != "" {
		segment["content"] = r.Content
	}
	if r.Answer != "" {
		segment["answer"] = r.Answer
	}
	if r.Keywords != nil {
		segment["keywords"] = r.Keywords
	}
	if r.Enabled != nil {
		segment["enabled"] = *r.Enabled
	}
	if len(segment) == 0 {
		return nil, validationErrorf("at least one of content, answer, keywords, enabled must be provided")
	}
	return &Request{
		Method: http.MethodPost,
		Path:   segmentPath(r.DatasetID, r.DocumentID, r.SegmentID, ""),
		Body:   map[string]any{"segment": segment},
	}, nil
}

type DeleteSegmentRequest struct {
	DatasetID  string
	DocumentID string
	SegmentID  string
}

func (r *DeleteSegmentRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodDelete,
		Path:   segmentPath(r.DatasetID, r.DocumentID, r.SegmentID, ""),
	}, nil
}

func requireSegmentIDs(datasetID, documentID, segmentID string) error {
	if err := requireID("dataset_id", datasetID); err != nil {
		return err
	}
	if err := requireID("document_id", documentID); err != nil {
		return err
	}
	return requireID("segment_id", segmentID)
}

// SegmentSummary is the subset of segment attributes surfaced in summaries.
type SegmentSummary struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
	Enabled  bool     `json:"enabled"`
	Status   string   `json:"status"`
}

type SegmentList struct {
	Data []SegmentSummary `json:"data"`
}

func (c *Client) AddSegments(ctx context.Context, req *AddSegmentsRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) ListSegments(ctx context.Context, req *ListSegmentsRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) GetSegment(ctx context.Context, req *GetSegmentRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) UpdateSegment(ctx context.Context, req *UpdateSegmentRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) DeleteSegment(ctx context.Context, req *DeleteSegmentRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

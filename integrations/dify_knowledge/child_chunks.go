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
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Child chunk operations are only meaningful for documents indexed with the
// hierarchical (parent-child) chunk method; the remote rejects them
// otherwise.

type ListChildChunksRequest struct {
	DatasetID  string
	DocumentID string
	SegmentID  string
	Keyword    string
	Pagination
}

func (r *ListChildChunksRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	page, err := r.Pagination.normalize()
	if err != nil {
		return nil, err
	}
	q := page.query()
	if keyword := strings.TrimSpace(r.Keyword); keyword != "" {
		q.Set("q", keyword)
	}
	return &Request{
		Method: http.MethodGet,
		Path:   segmentPath(r.DatasetID, r.DocumentID, r.SegmentID, "/child_chunks"),
		Query:  q,
	}, nil
}

type CreateChildChunkRequest struct {
	DatasetID  string
	DocumentID string
	SegmentID  string
	Content    string
}

func (r *CreateChildChunkRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	if err := requireID("content", r.Content); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   segmentPath(r.DatasetID, r.DocumentID, r.SegmentID, "/child_chunks"),
		Body:   map[string]any{"content": r.Content},
	}, nil
}

type UpdateChildChunkRequest struct {
	DatasetID    string
	DocumentID   string
	SegmentID    string
	ChildChunkID string
	Content      string
}

func (r *UpdateChildChunkRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	if err := requireID("child_chunk_id", r.ChildChunkID); err != nil {
		return nil, err
	}
	if err := requireID("content", r.Content); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPatch,
		Path:   childChunkPath(r.DatasetID, r.DocumentID, r.SegmentID, r.ChildChunkID),
		Body:   map[string]any{"content": r.Content},
	}, nil
}

type DeleteChildChunkRequest struct {
	DatasetID    string
	DocumentID   string
	SegmentID    string
	ChildChunkID string
}

func (r *DeleteChildChunkRequest) build() (*Request, error) {
	if err := requireSegmentIDs(r.DatasetID, r.DocumentID, r.SegmentID); err != nil {
		return nil, err
	}
	if err := requireID("child_chunk_id", r.ChildChunkID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodDelete,
		Path:   childChunkPath(r.DatasetID, r.DocumentID, r.SegmentID, r.ChildChunkID),
	}, nil
}

func childChunkPath(datasetID, documentID, segmentID, childChunkID string) string {
	return segmentPath(datasetID, documentID, segmentID,
		fmt.Sprintf("/child_chunks/%s", url.PathEscape(childChunkID)))
}

func (c *Client) ListChildChunks(ctx context.Context, req *ListChildChunksRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) CreateChildChunk(ctx context.Context, req *CreateChildChunkRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) UpdateChildChunk(ctx context.Context, req *UpdateChildChunkRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) DeleteChildChunk(ctx context.Context, req *DeleteChildChunkRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

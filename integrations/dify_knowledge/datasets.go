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

type CreateDatasetRequest struct {
	Name       string
	Permission string
}

func (r *CreateDatasetRequest) build() (*Request, error) {
	if err := requireID("name", r.Name); err != nil {
		return nil, err
	}
	permission, err := optionalEnum("permission", r.Permission, common.DEFAULT_PERMISSION, Permissions)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   "/datasets",
		Body: map[string]any{
			"name":       r.Name,
			"permission": permission,
		},
	}, nil
}

type ListDatasetsRequest struct {
	Pagination
}

func (r *ListDatasetsRequest) build() (*Request, error) {
	page, err := r.Pagination.normalize()
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodGet,
		Path:   "/datasets",
		Query:  page.query(),
	}, nil
}

type DeleteDatasetRequest struct {
	DatasetID string
}

func (r *DeleteDatasetRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodDelete,
		Path:   datasetPath(r.DatasetID, ""),
	}, nil
}

// Dataset is the subset of dataset attributes surfaced in summaries.
type Dataset struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Permission    string `json:"permission"`
	DocumentCount int    `json:"document_count"`
	WordCount     int    `json:"word_count"`
}

// DatasetList mirrors the list endpoint's pagination envelope. The raw body
// is passed through unchanged; this type only decodes what callers display.
type DatasetList struct {
	Data    []Dataset `json:"data"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	HasMore bool      `json:"has_more"`
}

func (c *Client) CreateDataset(ctx context.Context, req *CreateDatasetRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) ListDatasets(ctx context.Context, req *ListDatasetsRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) DeleteDataset(ctx context.Context, req *DeleteDatasetRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

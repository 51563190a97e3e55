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

// MetadataAssignment attaches one field value to a document. The ID must be
// an existing metadata field id; existence is the remote's concern, this
// layer only enforces shape.
type MetadataAssignment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ParseMetadataAssignments parses a caller-supplied JSON array of
// {id, name, value} objects. A parse failure is ErrInvalidJSON; an element
// missing a key is ErrValidation naming the element index. Values pass
// through untouched.
func ParseMetadataAssignments(raw string) ([]MetadataAssignment, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var elements []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			return nil, invalidJSONErrorf("metadata: %s (offset %d)", syntaxErr.Error(), syntaxErr.Offset)
		}
		return nil, invalidJSONErrorf("metadata must be a JSON array of objects: %s", err.Error())
	}

	assignments := make([]MetadataAssignment, 0, len(elements))
	for i, element := range elements {
		id, err := stringKey(element, "id")
		if err != nil || id == "" {
			return nil, validationErrorf("metadata[%d]: non-empty 'id' is required", i)
		}
		name, err := stringKey(element, "name")
		if err != nil || name == "" {
			return nil, validationErrorf("metadata[%d]: non-empty 'name' is required", i)
		}
		rawValue, ok := element["value"]
		if !ok {
			return nil, validationErrorf("metadata[%d]: 'value' is required", i)
		}
		var value any
		if err := json.Unmarshal(rawValue, &value); err != nil {
			return nil, invalidJSONErrorf("metadata[%d]: decoding value: %s", i, err.Error())
		}
		assignments = append(assignments, MetadataAssignment{ID: id, Name: name, Value: value})
	}
	return assignments, nil
}

func stringKey(element map[string]json.RawMessage, key string) (string, error) {
	raw, ok := element[key]
	if !ok {
		return "", fmt.Errorf("missing key %s", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

type CreateMetadataFieldRequest struct {
	DatasetID string
	Name      string
	Type      string
}

func (r *CreateMetadataFieldRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("name", r.Name); err != nil {
		return nil, err
	}
	fieldType, err := optionalEnum("field_type", r.Type, "string", MetadataFieldTypes)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Path:   datasetPath(r.DatasetID, "/metadata"),
		Body:   map[string]any{"type": fieldType, "name": r.Name},
	}, nil
}

type UpdateMetadataFieldRequest struct {
	DatasetID  string
	MetadataID string
	Name       string
}

func (r *UpdateMetadataFieldRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("metadata_id", r.MetadataID); err != nil {
		return nil, err
	}
	if err := requireID("name", r.Name); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPatch,
		Path:   metadataFieldPath(r.DatasetID, r.MetadataID),
		Body:   map[string]any{"name": r.Name},
	}, nil
}

type DeleteMetadataFieldRequest struct {
	DatasetID  string
	MetadataID string
}

func (r *DeleteMetadataFieldRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := requireID("metadata_id", r.MetadataID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodDelete,
		Path:   metadataFieldPath(r.DatasetID, r.MetadataID),
	}, nil
}

type ListMetadataRequest struct {
	DatasetID string
}

func (r *ListMetadataRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodGet,
		Path:   datasetPath(r.DatasetID, "/metadata"),
	}, nil
}

// ToggleBuiltInMetadataRequest enables or disables the built-in fields.
type ToggleBuiltInMetadataRequest struct {
	DatasetID string
	Action    string
}

func (r *ToggleBuiltInMetadataRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if err := validateEnum("action", r.Action, BuiltInMetadataActions); err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodDelete,
		Path:   datasetPath(r.DatasetID, "/metadata/built-in/"+url.PathEscape(r.Action)),
	}, nil
}

// DocumentMetadataOperation assigns a list of field values to one document.
type DocumentMetadataOperation struct {
	DocumentID   string               `json:"document_id"`
	MetadataList []MetadataAssignment `json:"metadata_list"`
}

type UpdateDocumentMetadataRequest struct {
	DatasetID  string
	Operations []DocumentMetadataOperation
}

func (r *UpdateDocumentMetadataRequest) build() (*Request, error) {
	if err := requireID("dataset_id", r.DatasetID); err != nil {
		return nil, err
	}
	if len(r.Operations) == 0 {
		return nil, validationErrorf("operation_data must contain at least one entry")
	}
	for i, op := range r.Operations {
		if strings.TrimSpace(op.DocumentID) == "" {
			return nil, validationErrorf("operation_data[%d]: document_id is required", i)
		}
		for j, m := range op.MetadataList {
			if strings.TrimSpace(m.ID) == "" {
				return nil, validationErrorf("operation_data[%d].metadata_list[%d]: non-empty 'id' is required", i, j)
			}
			if strings.TrimSpace(m.Name) == "" {
				return nil, validationErrorf("operation_data[%d].metadata_list[%d]: non-empty 'name' is required", i, j)
			}
		}
	}
	return &Request{
		Method: http.MethodPost,
		Path:   datasetPath(r.DatasetID, "/documents/metadata"),
		Body:   map[string]any{"operation_data": r.Operations},
	}, nil
}

func metadataFieldPath(datasetID, metadataID string) string {
	return datasetPath(datasetID, "/metadata/"+url.PathEscape(metadataID))
}

// MetadataField is one dataset-scoped custom attribute.
type MetadataField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type MetadataFieldList struct {
	DocMetadata []MetadataField `json:"doc_metadata"`
}

func (c *Client) CreateMetadataField(ctx context.Context, req *CreateMetadataFieldRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) UpdateMetadataField(ctx context.Context, req *UpdateMetadataFieldRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) DeleteMetadataField(ctx context.Context, req *DeleteMetadataFieldRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) ListMetadata(ctx context.Context, req *ListMetadataRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) ToggleBuiltInMetadata(ctx context.Context, req *ToggleBuiltInMetadataRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

func (c *Client) UpdateDocumentMetadata(ctx context.Context, req *UpdateDocumentMetadataRequest) (json.RawMessage, error) {
	r, err := req.build()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, r)
}

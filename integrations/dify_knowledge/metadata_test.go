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
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseMetadataAssignments(t *testing.T) {
	got, err := ParseMetadataAssignments(`[
		{"id": "m-1", "name": "author", "value": "alice"},
		{"id": "m-2", "name": "year", "value": 2024}
	]`)
	assert.NoError(t, err)
	want := []MetadataAssignment{
		{ID: "m-1", Name: "author", Value: "alice"},
		{ID: "m-2", Name: "year", Value: float64(2024)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMetadataAssignments_Empty(t *testing.T) {
	got, err := ParseMetadataAssignments("  ")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseMetadataAssignments_Errors(t *testing.T) {
	_, err := ParseMetadataAssignments(`[{"id": "m-1"`)
	assert.True(t, IsInvalidJSON(err))
	assert.Contains(t, err.Error(), "offset")

	_, err = ParseMetadataAssignments(`{"id": "m-1"}`)
	assert.True(t, IsInvalidJSON(err))

	_, err = ParseMetadataAssignments(`[{"name": "author", "value": "x"}]`)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "metadata[0]")
	assert.Contains(t, err.Error(), "'id'")

	_, err = ParseMetadataAssignments(`[{"id": "m-1", "name": "author", "value": "x"}, {"id": "m-2", "name": "year"}]`)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "metadata[1]")
	assert.Contains(t, err.Error(), "'value'")
}

func TestCreateMetadataFieldRequest_Build(t *testing.T) {
	r, err := (&CreateMetadataFieldRequest{DatasetID: "ds-1", Name: "author"}).build()
	assert.NoError(t, err)
	assert.Equal(t, "/datasets/ds-1/metadata", r.Path)
	assert.JSONEq(t, `{"type":"string","name":"author"}`, mustBody(t, r))

	_, err = (&CreateMetadataFieldRequest{DatasetID: "ds-1", Name: "year", Type: "integer"}).build()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "field_type")
}

func TestUpdateMetadataFieldRequest_Build(t *testing.T) {
	r, err := (&UpdateMetadataFieldRequest{DatasetID: "ds-1", MetadataID: "m-1", Name: "writer"}).build()
	assert.NoError(t, err)
	assert.Equal(t, http.MethodPatch, r.Method)
	assert.Equal(t, "/datasets/ds-1/metadata/m-1", r.Path)

	_, err = (&UpdateMetadataFieldRequest{DatasetID: "ds-1", MetadataID: "m-1"}).build()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "name is required")
}

func TestToggleBuiltInMetadataRequest_Build(t *testing.T) {
	r, err := (&ToggleBuiltInMetadataRequest{DatasetID: "ds-1", Action: "disable"}).build()
	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, r.Method)
	assert.Equal(t, "/datasets/ds-1/metadata/built-in/disable", r.Path)

	_, err = (&ToggleBuiltInMetadataRequest{DatasetID: "ds-1", Action: "toggle"}).build()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "enable")
}

func TestUpdateDocumentMetadataRequest_Build(t *testing.T) {
	r, err := (&UpdateDocumentMetadataRequest{
		DatasetID: "ds-1",
		Operations: []DocumentMetadataOperation{{
			DocumentID:   "doc-1",
			MetadataList: []MetadataAssignment{{ID: "m-1", Name: "author", Value: "alice"}},
		}},
	}).build()
	assert.NoError(t, err)
	assert.Equal(t, "/datasets/ds-1/documents/metadata", r.Path)
	assert.JSONEq(t, `{"operation_data":[{"document_id":"doc-1","metadata_list":[{"id":"m-1","name":"author","value":"alice"}]}]}`, mustBody(t, r))

	_, err = (&UpdateDocumentMetadataRequest{DatasetID: "ds-1"}).build()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "at least one")

	_, err = (&UpdateDocumentMetadataRequest{
		DatasetID:  "ds-1",
		Operations: []DocumentMetadataOperation{{MetadataList: []MetadataAssignment{{ID: "m-1", Name: "author"}}}},
	}).build()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "operation_data[0]")
}

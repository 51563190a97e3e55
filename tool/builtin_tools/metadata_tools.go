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

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

var createMetadataFieldToolDescription = `
	Create a custom metadata field on a dataset.

    Args:
    Required:
        - dataset_id (str)
        - name (str): the field name.
    Optional:
        - field_type (str): "string" (default), "number" or "time".
    Returns:
        The created field (id, name, type).
`

var updateMetadataFieldToolDescription = `
	Rename a custom metadata field.

    Args:
    Required:
        - dataset_id (str)
        - metadata_id (str): the field id.
        - name (str): the new field name.
    Returns:
        The updated field.
`

var deleteMetadataFieldToolDescription = `
	Delete a custom metadata field and its values on all documents. This
	cannot be undone.

    Args:
    Required:
        - dataset_id (str)
        - metadata_id (str): the field id.
    Returns:
        {"success": true} on completion.
`

var listMetadataFieldsToolDescription = `
	List the metadata fields of a dataset.

    Args:
    Required:
        - dataset_id (str)
    Returns:
        {"doc_metadata": [fields], "built_in_field_enabled": bool}
`

var toggleBuiltInMetadataToolDescription = `
	Enable or disable the built-in metadata fields (document name, uploader,
	upload date, ...) of a dataset.

    Args:
    Required:
        - dataset_id (str)
        - action (str): "enable" or "disable".
    Returns:
        {"success": true} on completion.
`

var updateDocumentMetadataToolDescription = `
	Assign metadata field values to a document.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - metadata (str): JSON array of assignments, each with the field id,
          field name and value:
          [{"id": "field-id", "name": "author", "value": "alice"}]
    Returns:
        {"success": true} on completion.
`

type CreateMetadataFieldArgs struct {
	DatasetID string `json:"dataset_id" jsonschema:"The dataset id"`
	Name      string `json:"name" jsonschema:"The field name"`
	FieldType string `json:"field_type,omitempty" jsonschema:"string, number or time"`
}

type UpdateMetadataFieldArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	MetadataID string `json:"metadata_id" jsonschema:"The field id"`
	Name       string `json:"name" jsonschema:"The new field name"`
}

type DeleteMetadataFieldArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	MetadataID string `json:"metadata_id" jsonschema:"The field id to delete"`
}

type ListMetadataFieldsArgs struct {
	DatasetID string `json:"dataset_id" jsonschema:"The dataset id"`
}

type ToggleBuiltInMetadataArgs struct {
	DatasetID string `json:"dataset_id" jsonschema:"The dataset id"`
	Action    string `json:"action" jsonschema:"enable or disable"`
}

type UpdateDocumentMetadataArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	Metadata   string `json:"metadata" jsonschema:"JSON array of {id, name, value} assignments"`
}

func NewCreateMetadataFieldTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req CreateMetadataFieldArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.CreateMetadataField(ctx, &dify_knowledge.CreateMetadataFieldRequest{
				DatasetID: req.DatasetID,
				Name:      req.Name,
				Type:      req.FieldType,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "create_metadata_field",
			Description: createMetadataFieldToolDescription,
		},
		handler)
}

func NewUpdateMetadataFieldTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req UpdateMetadataFieldArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.UpdateMetadataField(ctx, &dify_knowledge.UpdateMetadataFieldRequest{
				DatasetID:  req.DatasetID,
				MetadataID: req.MetadataID,
				Name:       req.Name,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "update_metadata_field",
			Description: updateMetadataFieldToolDescription,
		},
		handler)
}

func NewDeleteMetadataFieldTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req DeleteMetadataFieldArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.DeleteMetadataField(ctx, &dify_knowledge.DeleteMetadataFieldRequest{
				DatasetID:  req.DatasetID,
				MetadataID: req.MetadataID,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "delete_metadata_field",
			Description: deleteMetadataFieldToolDescription,
		},
		handler)
}

func NewListMetadataFieldsTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req ListMetadataFieldsArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.ListMetadata(ctx, &dify_knowledge.ListMetadataRequest{DatasetID: req.DatasetID})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "list_metadata_fields",
			Description: listMetadataFieldsToolDescription,
		},
		handler)
}

func NewToggleBuiltInMetadataTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req ToggleBuiltInMetadataArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.ToggleBuiltInMetadata(ctx, &dify_knowledge.ToggleBuiltInMetadataRequest{
				DatasetID: req.DatasetID,
				Action:    req.Action,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "toggle_built_in_metadata",
			Description: toggleBuiltInMetadataToolDescription,
		},
		handler)
}

func NewUpdateDocumentMetadataTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req UpdateDocumentMetadataArgs) (ToolResult, error) {
		assignments, err := dify_knowledge.ParseMetadataAssignments(req.Metadata)
		if err != nil {
			return ToolResult{Message: err.Error()}, nil
		}
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.UpdateDocumentMetadata(ctx, &dify_knowledge.UpdateDocumentMetadataRequest{
				DatasetID: req.DatasetID,
				Operations: []dify_knowledge.DocumentMetadataOperation{{
					DocumentID:   req.DocumentID,
					MetadataList: assignments,
				}},
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "update_document_metadata",
			Description: updateDocumentMetadataToolDescription,
		},
		handler)
}

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

// Child chunk tools require the parent document to be indexed with
// doc_form "hierarchical_model".

var listChildChunksToolDescription = `
	List the child chunks of a parent chunk, paginated, optionally filtered
	by keyword. Only valid for hierarchical_model documents.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str): the parent chunk id.
    Optional:
        - keyword (str): filter child chunks by content keyword.
        - page (int): page number, starting at 1. Default: 1.
        - limit (int): page size. Default: 20.
    Returns:
        {"data": [child chunks], "total": n, "page": n}
`

var createChildChunkToolDescription = `
	Create a child chunk under a parent chunk. Only valid for
	hierarchical_model documents.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str): the parent chunk id.
        - content (str): the child chunk text.
    Returns:
        The created child chunk object.
`

var updateChildChunkToolDescription = `
	Replace the content of a child chunk. Only valid for hierarchical_model
	documents.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str): the parent chunk id.
        - child_chunk_id (str)
        - content (str): the new child chunk text.
    Returns:
        The updated child chunk object.
`

var deleteChildChunkToolDescription = `
	Delete a child chunk. This cannot be undone. Only valid for
	hierarchical_model documents.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str): the parent chunk id.
        - child_chunk_id (str)
    Returns:
        {"success": true} on completion.
`

type ListChildChunksArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	SegmentID  string `json:"segment_id" jsonschema:"The parent chunk id"`
	Keyword    string `json:"keyword,omitempty" jsonschema:"Filter child chunks by content keyword"`
	Page       int    `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Page size, default 20"`
}

type CreateChildChunkArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	SegmentID  string `json:"segment_id" jsonschema:"The parent chunk id"`
	Content    string `json:"content" jsonschema:"The child chunk text"`
}

type UpdateChildChunkArgs struct {
	DatasetID    string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID   string `json:"document_id" jsonschema:"The document id"`
	SegmentID    string `json:"segment_id" jsonschema:"The parent chunk id"`
	ChildChunkID string `json:"child_chunk_id" jsonschema:"The child chunk id"`
	Content      string `json:"content" jsonschema:"The new child chunk text"`
}

type DeleteChildChunkArgs struct {
	DatasetID    string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID   string `json:"document_id" jsonschema:"The document id"`
	SegmentID    string `json:"segment_id" jsonschema:"The parent chunk id"`
	ChildChunkID string `json:"child_chunk_id" jsonschema:"The child chunk id to delete"`
}

func NewListChildChunksTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req ListChildChunksArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.ListChildChunks(ctx, &dify_knowledge.ListChildChunksRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
				SegmentID:  req.SegmentID,
				Keyword:    req.Keyword,
				Pagination: dify_knowledge.Pagination{Page: req.Page, Limit: req.Limit},
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "list_child_chunks",
			Description: listChildChunksToolDescription,
		},
		handler)
}

func NewCreateChildChunkTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req CreateChildChunkArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.CreateChildChunk(ctx, &dify_knowledge.CreateChildChunkRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
				SegmentID:  req.SegmentID,
				Content:    req.Content,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "create_child_chunk",
			Description: createChildChunkToolDescription,
		},
		handler)
}

func NewUpdateChildChunkTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req UpdateChildChunkArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.UpdateChildChunk(ctx, &dify_knowledge.UpdateChildChunkRequest{
				DatasetID:    req.DatasetID,
				DocumentID:   req.DocumentID,
				SegmentID:    req.SegmentID,
				ChildChunkID: req.ChildChunkID,
				Content:      req.Content,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "update_child_chunk",
			Description: updateChildChunkToolDescription,
		},
		handler)
}

func NewDeleteChildChunkTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req DeleteChildChunkArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.DeleteChildChunk(ctx, &dify_knowledge.DeleteChildChunkRequest{
				DatasetID:    req.DatasetID,
				DocumentID:   req.DocumentID,
				SegmentID:    req.SegmentID,
				ChildChunkID: req.ChildChunkID,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "delete_child_chunk",
			Description: deleteChildChunkToolDescription,
		},
		handler)
}

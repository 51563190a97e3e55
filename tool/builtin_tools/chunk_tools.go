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

var addChunksToolDescription = `
	Append chunks (segments) to an existing document.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - content (str): the chunk text.
    Optional:
        - answer (str): the answer text, only meaningful for qa_model
          documents.
        - keywords (str): comma-separated keywords attached to the chunk.
    Returns:
        The created chunk objects.
`

var listChunksToolDescription = `
	List all chunks (segments) of a document.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
    Returns:
        {"data": [chunks]}
`

var getChunkToolDescription = `
	Read one chunk (segment) of a document.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str)
    Returns:
        The chunk object.
`

var updateChunkToolDescription = `
	Update a chunk (segment) in place. Only the supplied fields change.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str)
    Optional (at least one):
        - content (str): new chunk text.
        - answer (str): new answer text (qa_model documents).
        - keywords (str): comma-separated keywords, replaces the existing set.
        - enabled (bool): enable or disable the chunk for retrieval.
    Returns:
        The updated chunk object.
`

var deleteChunkToolDescription = `
	Delete a chunk (segment) from a document. This cannot be undone.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
        - segment_id (str)
    Returns:
        {"success": true} on completion.
`

type AddChunksArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	Content    string `json:"content" jsonschema:"The chunk text"`
	Answer     string `json:"answer,omitempty" jsonschema:"Answer text for qa_model documents"`
	Keywords   string `json:"keywords,omitempty" jsonschema:"Comma-separated keywords"`
}

type ListChunksArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
}

type GetChunkArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	SegmentID  string `json:"segment_id" jsonschema:"The chunk id"`
}

type UpdateChunkArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	SegmentID  string `json:"segment_id" jsonschema:"The chunk id"`
	Content    string `json:"content,omitempty" jsonschema:"New chunk text"`
	Answer     string `json:"answer,omitempty" jsonschema:"New answer text"`
	Keywords   string `json:"keywords,omitempty" jsonschema:"Comma-separated keywords, replaces the existing set"`
	Enabled    *bool  `json:"enabled,omitempty" jsonschema:"Enable or disable the chunk for retrieval"`
}

type DeleteChunkArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id"`
	SegmentID  string `json:"segment_id" jsonschema:"The chunk id to delete"`
}

func NewAddChunksTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req AddChunksArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.AddSegments(ctx, &dify_knowledge.AddSegmentsRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
				Segments: []dify_knowledge.Segment{{
					Content:  req.Content,
					Answer:   req.Answer,
					Keywords: dify_knowledge.SplitKeywords(req.Keywords),
				}},
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "add_chunks",
			Description: addChunksToolDescription,
		},
		handler)
}

func NewListChunksTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req ListChunksArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.ListSegments(ctx, &dify_knowledge.ListSegmentsRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "list_chunks",
			Description: listChunksToolDescription,
		},
		handler)
}

func NewGetChunkTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req GetChunkArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.GetSegment(ctx, &dify_knowledge.GetSegmentRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
				SegmentID:  req.SegmentID,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "get_chunk",
			Description: getChunkToolDescription,
		},
		handler)
}

func NewUpdateChunkTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req UpdateChunkArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.UpdateSegment(ctx, &dify_knowledge.UpdateSegmentRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
				SegmentID:  req.SegmentID,
				Content:    req.Content,
				Answer:     req.Answer,
				Keywords:   dify_knowledge.SplitKeywords(req.Keywords),
				Enabled:    req.Enabled,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "update_chunk",
			Description: updateChunkToolDescription,
		},
		handler)
}

func NewDeleteChunkTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req DeleteChunkArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.DeleteSegment(ctx, &dify_knowledge.DeleteSegmentRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
				SegmentID:  req.SegmentID,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "delete_chunk",
			Description: deleteChunkToolDescription,
		},
		handler)
}

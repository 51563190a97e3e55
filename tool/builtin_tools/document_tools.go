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

var createDocumentToolDescription = `
	Create a document in a dataset from raw text, or update an existing one.

    Args:
    Required:
        - dataset_id (str): the target dataset.
        - name (str): the document name.
        - text (str): the document content.
    Optional:
        - document_id (str): when set, the named document is updated in place
          instead of creating a new one.
        - indexing_technique (str): "high_quality" (default) or "economy".
        - doc_form (str): "text_model", "qa_model" or "hierarchical_model".
          Required (as "hierarchical_model") when the process rule mode is
          "hierarchical".
        - doc_language (str): document language for qa_model, e.g. "English".
        - process_rule (str): JSON object controlling segmentation.
            {"mode": "automatic"} (default), or "custom"/"hierarchical" with
            explicit rules:
            {"mode": "custom", "rules": {
                "pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}],
                "segmentation": {"separator": "\n\n", "max_tokens": 500, "chunk_overlap": 50}}}
            Hierarchical mode additionally needs rules.parent_mode
            ("full-doc" or "paragraph") and rules.subchunk_segmentation.
    Returns:
        {"document": {...}, "batch": "..."} - batch is used to poll indexing
        status.
`

var listDocumentsToolDescription = `
	List documents in a dataset, paginated, optionally filtered by keyword.

    Args:
    Required:
        - dataset_id (str)
    Optional:
        - keyword (str): filter documents whose name contains the keyword.
        - page (int): page number, starting at 1. Default: 1.
        - limit (int): page size. Default: 20.
    Returns:
        {"data": [documents], "total": n, "page": n, "has_more": bool}
`

var deleteDocumentToolDescription = `
	Delete a document and its chunks from a dataset. This cannot be undone.

    Args:
    Required:
        - dataset_id (str)
        - document_id (str)
    Returns:
        {"success": true} on completion.
`

var indexingStatusToolDescription = `
	Check the indexing progress of a document creation batch.

    Args:
    Required:
        - dataset_id (str)
        - batch (str): the batch id returned by create_document.
    Returns:
        Per-document indexing status with completed and total segment counts.
`

type CreateDocumentArgs struct {
	DatasetID         string `json:"dataset_id" jsonschema:"The target dataset id"`
	DocumentID        string `json:"document_id,omitempty" jsonschema:"When set, update this document instead of creating one"`
	Name              string `json:"name" jsonschema:"The document name"`
	Text              string `json:"text" jsonschema:"The document content"`
	IndexingTechnique string `json:"indexing_technique,omitempty" jsonschema:"high_quality or economy"`
	DocForm           string `json:"doc_form,omitempty" jsonschema:"text_model, qa_model or hierarchical_model"`
	DocLanguage       string `json:"doc_language,omitempty" jsonschema:"Document language for qa_model"`
	ProcessRule       string `json:"process_rule,omitempty" jsonschema:"JSON segmentation rule, defaults to {\"mode\":\"automatic\"}"`
}

type ListDocumentsArgs struct {
	DatasetID string `json:"dataset_id" jsonschema:"The dataset id"`
	Keyword   string `json:"keyword,omitempty" jsonschema:"Filter documents by name keyword"`
	Page      int    `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Page size, default 20"`
}

type DeleteDocumentArgs struct {
	DatasetID  string `json:"dataset_id" jsonschema:"The dataset id"`
	DocumentID string `json:"document_id" jsonschema:"The document id to delete"`
}

type IndexingStatusArgs struct {
	DatasetID string `json:"dataset_id" jsonschema:"The dataset id"`
	Batch     string `json:"batch" jsonschema:"The batch id returned by create_document"`
}

func NewCreateDocumentTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req CreateDocumentArgs) (ToolResult, error) {
		rule, err := dify_knowledge.ParseProcessRule(req.ProcessRule)
		if err != nil {
			return ToolResult{Message: err.Error()}, nil
		}
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.CreateDocumentByText(ctx, &dify_knowledge.CreateDocumentByTextRequest{
				DatasetID:         req.DatasetID,
				DocumentID:        req.DocumentID,
				Name:              req.Name,
				Text:              req.Text,
				IndexingTechnique: req.IndexingTechnique,
				DocForm:           req.DocForm,
				DocLanguage:       req.DocLanguage,
				ProcessRule:       rule,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "create_document",
			Description: createDocumentToolDescription,
		},
		handler)
}

func NewListDocumentsTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req ListDocumentsArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.ListDocuments(ctx, &dify_knowledge.ListDocumentsRequest{
				DatasetID:  req.DatasetID,
				Keyword:    req.Keyword,
				Pagination: dify_knowledge.Pagination{Page: req.Page, Limit: req.Limit},
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "list_documents",
			Description: listDocumentsToolDescription,
		},
		handler)
}

func NewDeleteDocumentTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req DeleteDocumentArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.DeleteDocument(ctx, &dify_knowledge.DeleteDocumentRequest{
				DatasetID:  req.DatasetID,
				DocumentID: req.DocumentID,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "delete_document",
			Description: deleteDocumentToolDescription,
		},
		handler)
}

func NewIndexingStatusTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req IndexingStatusArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.GetIndexingStatus(ctx, &dify_knowledge.IndexingStatusRequest{
				DatasetID: req.DatasetID,
				Batch:     req.Batch,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "get_indexing_status",
			Description: indexingStatusToolDescription,
		},
		handler)
}

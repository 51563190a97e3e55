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

var createDatasetToolDescription = `
	Create a new knowledge base dataset.

    Args:
    Required:
        - name (str): the name of the dataset to create.
    Optional:
        - permission (str): who can access the dataset.
            One of: "only_me" (default), "all_team_members", "partial_members".
    Returns:
        The created dataset object (id, name, permission, ...).
`

var listDatasetsToolDescription = `
	List knowledge base datasets, paginated.

    Args:
    Optional:
        - page (int): page number, starting at 1. Default: 1.
        - limit (int): page size. Default: 20.
    Returns:
        {"data": [datasets], "total": n, "page": n, "has_more": bool}
`

var deleteDatasetToolDescription = `
	Delete a knowledge base dataset and everything in it. This cannot be
	undone.

    Args:
    Required:
        - dataset_id (str): the id of the dataset to delete.
    Returns:
        {"success": true} on completion.
`

type CreateDatasetArgs struct {
	Name       string `json:"name" jsonschema:"The name of the dataset to create"`
	Permission string `json:"permission,omitempty" jsonschema:"Access permission: only_me, all_team_members or partial_members"`
}

type ListDatasetsArgs struct {
	Page  int `json:"page,omitempty" jsonschema:"Page number, starting at 1"`
	Limit int `json:"limit,omitempty" jsonschema:"Page size, default 20"`
}

type DeleteDatasetArgs struct {
	DatasetID string `json:"dataset_id" jsonschema:"The id of the dataset to delete"`
}

func NewCreateDatasetTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req CreateDatasetArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.CreateDataset(ctx, &dify_knowledge.CreateDatasetRequest{
				Name:       req.Name,
				Permission: req.Permission,
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "create_dataset",
			Description: createDatasetToolDescription,
		},
		handler)
}

func NewListDatasetsTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req ListDatasetsArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.ListDatasets(ctx, &dify_knowledge.ListDatasetsRequest{
				Pagination: dify_knowledge.Pagination{Page: req.Page, Limit: req.Limit},
			})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "list_datasets",
			Description: listDatasetsToolDescription,
		},
		handler)
}

func NewDeleteDatasetTool(cfg *KnowledgeConfig) (tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	handler := func(ctx tool.Context, req DeleteDatasetArgs) (ToolResult, error) {
		return execute(cfg, ctx, func(ctx context.Context, client *dify_knowledge.Client) (json.RawMessage, error) {
			return client.DeleteDataset(ctx, &dify_knowledge.DeleteDatasetRequest{DatasetID: req.DatasetID})
		})
	}
	return functiontool.New(
		functiontool.Config{
			Name:        "delete_dataset",
			Description: deleteDatasetToolDescription,
		},
		handler)
}

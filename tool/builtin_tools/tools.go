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
	"google.golang.org/adk/tool"
)

// NewKnowledgeBaseTools builds the full knowledge base tool set sharing one
// client configuration.
func NewKnowledgeBaseTools(cfg *KnowledgeConfig) ([]tool.Tool, error) {
	if cfg == nil {
		cfg = &KnowledgeConfig{}
	}
	constructors := []func(*KnowledgeConfig) (tool.Tool, error){
		NewCreateDatasetTool,
		NewListDatasetsTool,
		NewDeleteDatasetTool,
		NewCreateDocumentTool,
		NewListDocumentsTool,
		NewDeleteDocumentTool,
		NewIndexingStatusTool,
		NewAddChunksTool,
		NewListChunksTool,
		NewGetChunkTool,
		NewUpdateChunkTool,
		NewDeleteChunkTool,
		NewListChildChunksTool,
		NewCreateChildChunkTool,
		NewUpdateChildChunkTool,
		NewDeleteChildChunkTool,
		NewCreateMetadataFieldTool,
		NewUpdateMetadataFieldTool,
		NewDeleteMetadataFieldTool,
		NewListMetadataFieldsTool,
		NewToggleBuiltInMetadataTool,
		NewUpdateDocumentMetadataTool,
		NewRetrieveTool,
	}

	tools := make([]tool.Tool, 0, len(constructors))
	for _, construct := range constructors {
		t, err := construct(cfg)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

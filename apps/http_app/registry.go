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

package http_app

import (
	"context"
	"encoding/json"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/difyforge/difykb-go/log"
	"github.com/difyforge/difykb-go/tool/builtin_tools"
)

// bind decodes the request body into the operation's Args type and folds
// every failure into the ToolResult envelope.
func bind[In any](s *Server, call func(context.Context, *dify_knowledge.Client, In) (json.RawMessage, error)) invokeFunc {
	return func(ctx context.Context, args json.RawMessage) builtin_tools.ToolResult {
		var in In
		if len(args) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return builtin_tools.ToolResult{Message: "invalid arguments: " + err.Error()}
			}
		}
		client, err := s.config.KnowledgeClient()
		if err != nil {
			log.Warn("Knowledge base client init failed", "error", err)
			return builtin_tools.ToolResult{Message: err.Error()}
		}
		raw, err := call(ctx, client, in)
		if err != nil {
			log.Warn("Knowledge base call failed", "error", err)
			return builtin_tools.ToolResult{Message: err.Error()}
		}
		return builtin_tools.ToolResult{Success: true, Data: raw}
	}
}

func (s *Server) buildRegistry() map[string]invokeFunc {
	return map[string]invokeFunc{
		"create_dataset": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateDatasetArgs) (json.RawMessage, error) {
			return c.CreateDataset(ctx, &dify_knowledge.CreateDatasetRequest{Name: in.Name, Permission: in.Permission})
		}),
		"list_datasets": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListDatasetsArgs) (json.RawMessage, error) {
			return c.ListDatasets(ctx, &dify_knowledge.ListDatasetsRequest{
				Pagination: dify_knowledge.Pagination{Page: in.Page, Limit: in.Limit},
			})
		}),
		"delete_dataset": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteDatasetArgs) (json.RawMessage, error) {
			return c.DeleteDataset(ctx, &dify_knowledge.DeleteDatasetRequest{DatasetID: in.DatasetID})
		}),
		"create_document": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateDocumentArgs) (json.RawMessage, error) {
			rule, err := dify_knowledge.ParseProcessRule(in.ProcessRule)
			if err != nil {
				return nil, err
			}
			return c.CreateDocumentByText(ctx, &dify_knowledge.CreateDocumentByTextRequest{
				DatasetID:         in.DatasetID,
				DocumentID:        in.DocumentID,
				Name:              in.Name,
				Text:              in.Text,
				IndexingTechnique: in.IndexingTechnique,
				DocForm:           in.DocForm,
				DocLanguage:       in.DocLanguage,
				ProcessRule:       rule,
			})
		}),
		"list_documents": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListDocumentsArgs) (json.RawMessage, error) {
			return c.ListDocuments(ctx, &dify_knowledge.ListDocumentsRequest{
				DatasetID:  in.DatasetID,
				Keyword:    in.Keyword,
				Pagination: dify_knowledge.Pagination{Page: in.Page, Limit: in.Limit},
			})
		}),
		"delete_document": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteDocumentArgs) (json.RawMessage, error) {
			return c.DeleteDocument(ctx, &dify_knowledge.DeleteDocumentRequest{DatasetID: in.DatasetID, DocumentID: in.DocumentID})
		}),
		"get_indexing_status": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.IndexingStatusArgs) (json.RawMessage, error) {
			return c.GetIndexingStatus(ctx, &dify_knowledge.IndexingStatusRequest{DatasetID: in.DatasetID, Batch: in.Batch})
		}),
		"add_chunks": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.AddChunksArgs) (json.RawMessage, error) {
			return c.AddSegments(ctx, &dify_knowledge.AddSegmentsRequest{
				DatasetID:  in.DatasetID,
				DocumentID: in.DocumentID,
				Segments: []dify_knowledge.Segment{{
					Content:  in.Content,
					Answer:   in.Answer,
					Keywords: dify_knowledge.SplitKeywords(in.Keywords),
				}},
			})
		}),
		"list_chunks": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListChunksArgs) (json.RawMessage, error) {
			return c.ListSegments(ctx, &dify_knowledge.ListSegmentsRequest{DatasetID: in.DatasetID, DocumentID: in.DocumentID})
		}),
		"get_chunk": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.GetChunkArgs) (json.RawMessage, error) {
			return c.GetSegment(ctx, &dify_knowledge.GetSegmentRequest{
				DatasetID: in.DatasetID, DocumentID: in.DocumentID, SegmentID: in.SegmentID,
			})
		}),
		"update_chunk": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateChunkArgs) (json.RawMessage, error) {
			return c.UpdateSegment(ctx, &dify_knowledge.UpdateSegmentRequest{
				DatasetID:  in.DatasetID,
				DocumentID: in.DocumentID,
				SegmentID:  in.SegmentID,
				Content:    in.Content,
				Answer:     in.Answer,
				Keywords:   dify_knowledge.SplitKeywords(in.Keywords),
				Enabled:    in.Enabled,
			})
		}),
		"delete_chunk": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteChunkArgs) (json.RawMessage, error) {
			return c.DeleteSegment(ctx, &dify_knowledge.DeleteSegmentRequest{
				DatasetID: in.DatasetID, DocumentID: in.DocumentID, SegmentID: in.SegmentID,
			})
		}),
		"list_child_chunks": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListChildChunksArgs) (json.RawMessage, error) {
			return c.ListChildChunks(ctx, &dify_knowledge.ListChildChunksRequest{
				DatasetID:  in.DatasetID,
				DocumentID: in.DocumentID,
				SegmentID:  in.SegmentID,
				Keyword:    in.Keyword,
				Pagination: dify_knowledge.Pagination{Page: in.Page, Limit: in.Limit},
			})
		}),
		"create_child_chunk": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateChildChunkArgs) (json.RawMessage, error) {
			return c.CreateChildChunk(ctx, &dify_knowledge.CreateChildChunkRequest{
				DatasetID: in.DatasetID, DocumentID: in.DocumentID, SegmentID: in.SegmentID, Content: in.Content,
			})
		}),
		"update_child_chunk": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateChildChunkArgs) (json.RawMessage, error) {
			return c.UpdateChildChunk(ctx, &dify_knowledge.UpdateChildChunkRequest{
				DatasetID:    in.DatasetID,
				DocumentID:   in.DocumentID,
				SegmentID:    in.SegmentID,
				ChildChunkID: in.ChildChunkID,
				Content:      in.Content,
			})
		}),
		"delete_child_chunk": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteChildChunkArgs) (json.RawMessage, error) {
			return c.DeleteChildChunk(ctx, &dify_knowledge.DeleteChildChunkRequest{
				DatasetID:    in.DatasetID,
				DocumentID:   in.DocumentID,
				SegmentID:    in.SegmentID,
				ChildChunkID: in.ChildChunkID,
			})
		}),
		"create_metadata_field": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateMetadataFieldArgs) (json.RawMessage, error) {
			return c.CreateMetadataField(ctx, &dify_knowledge.CreateMetadataFieldRequest{
				DatasetID: in.DatasetID, Name: in.Name, Type: in.FieldType,
			})
		}),
		"update_metadata_field": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateMetadataFieldArgs) (json.RawMessage, error) {
			return c.UpdateMetadataField(ctx, &dify_knowledge.UpdateMetadataFieldRequest{
				DatasetID: in.DatasetID, MetadataID: in.MetadataID, Name: in.Name,
			})
		}),
		"delete_metadata_field": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteMetadataFieldArgs) (json.RawMessage, error) {
			return c.DeleteMetadataField(ctx, &dify_knowledge.DeleteMetadataFieldRequest{
				DatasetID: in.DatasetID, MetadataID: in.MetadataID,
			})
		}),
		"list_metadata_fields": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListMetadataFieldsArgs) (json.RawMessage, error) {
			return c.ListMetadata(ctx, &dify_knowledge.ListMetadataRequest{DatasetID: in.DatasetID})
		}),
		"toggle_built_in_metadata": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ToggleBuiltInMetadataArgs) (json.RawMessage, error) {
			return c.ToggleBuiltInMetadata(ctx, &dify_knowledge.ToggleBuiltInMetadataRequest{
				DatasetID: in.DatasetID, Action: in.Action,
			})
		}),
		"update_document_metadata": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateDocumentMetadataArgs) (json.RawMessage, error) {
			assignments, err := dify_knowledge.ParseMetadataAssignments(in.Metadata)
			if err != nil {
				return nil, err
			}
			return c.UpdateDocumentMetadata(ctx, &dify_knowledge.UpdateDocumentMetadataRequest{
				DatasetID: in.DatasetID,
				Operations: []dify_knowledge.DocumentMetadataOperation{{
					DocumentID:   in.DocumentID,
					MetadataList: assignments,
				}},
			})
		}),
		"retrieve": bind(s, func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.RetrieveArgs) (json.RawMessage, error) {
			return c.Retrieve(ctx, &dify_knowledge.RetrieveRequest{
				DatasetID:             in.DatasetID,
				Query:                 in.Query,
				SearchMethod:          in.SearchMethod,
				TopK:                  in.TopK,
				ScoreThreshold:        in.ScoreThreshold,
				RerankingEnable:       in.RerankingEnable,
				RerankingProviderName: in.RerankingProviderName,
				RerankingModelName:    in.RerankingModelName,
			})
		}),
	}
}

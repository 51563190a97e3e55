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

package mcp_app

import (
	"context"
	"encoding/json"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/difyforge/difykb-go/tool/builtin_tools"
)

// registerTools wires every knowledge base operation as an MCP tool. Input
// schemas are inferred from the shared Args types.
func (s *Server) registerTools() {
	addTool(s, "create_dataset", "Create a new knowledge base dataset.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateDatasetArgs) (json.RawMessage, error) {
			return c.CreateDataset(ctx, &dify_knowledge.CreateDatasetRequest{Name: in.Name, Permission: in.Permission})
		})
	addTool(s, "list_datasets", "List knowledge base datasets, paginated.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListDatasetsArgs) (json.RawMessage, error) {
			return c.ListDatasets(ctx, &dify_knowledge.ListDatasetsRequest{
				Pagination: dify_knowledge.Pagination{Page: in.Page, Limit: in.Limit},
			})
		})
	addTool(s, "delete_dataset", "Delete a dataset and everything in it. This cannot be undone.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteDatasetArgs) (json.RawMessage, error) {
			return c.DeleteDataset(ctx, &dify_knowledge.DeleteDatasetRequest{DatasetID: in.DatasetID})
		})

	addTool(s, "create_document", "Create a document from text, or update one when document_id is set.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateDocumentArgs) (json.RawMessage, error) {
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
		})
	addTool(s, "list_documents", "List documents in a dataset, optionally filtered by keyword.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListDocumentsArgs) (json.RawMessage, error) {
			return c.ListDocuments(ctx, &dify_knowledge.ListDocumentsRequest{
				DatasetID:  in.DatasetID,
				Keyword:    in.Keyword,
				Pagination: dify_knowledge.Pagination{Page: in.Page, Limit: in.Limit},
			})
		})
	addTool(s, "delete_document", "Delete a document and its chunks. This cannot be undone.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteDocumentArgs) (json.RawMessage, error) {
			return c.DeleteDocument(ctx, &dify_knowledge.DeleteDocumentRequest{DatasetID: in.DatasetID, DocumentID: in.DocumentID})
		})
	addTool(s, "get_indexing_status", "Check the indexing progress of a document creation batch.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.IndexingStatusArgs) (json.RawMessage, error) {
			return c.GetIndexingStatus(ctx, &dify_knowledge.IndexingStatusRequest{DatasetID: in.DatasetID, Batch: in.Batch})
		})

	addTool(s, "add_chunks", "Append a chunk to an existing document.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.AddChunksArgs) (json.RawMessage, error) {
			return c.AddSegments(ctx, &dify_knowledge.AddSegmentsRequest{
				DatasetID:  in.DatasetID,
				DocumentID: in.DocumentID,
				Segments: []dify_knowledge.Segment{{
					Content:  in.Content,
					Answer:   in.Answer,
					Keywords: dify_knowledge.SplitKeywords(in.Keywords),
				}},
			})
		})
	addTool(s, "list_chunks", "List all chunks of a document.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListChunksArgs) (json.RawMessage, error) {
			return c.ListSegments(ctx, &dify_knowledge.ListSegmentsRequest{DatasetID: in.DatasetID, DocumentID: in.DocumentID})
		})
	addTool(s, "get_chunk", "Read one chunk of a document.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.GetChunkArgs) (json.RawMessage, error) {
			return c.GetSegment(ctx, &dify_knowledge.GetSegmentRequest{
				DatasetID: in.DatasetID, DocumentID: in.DocumentID, SegmentID: in.SegmentID,
			})
		})
	addTool(s, "update_chunk", "Update a chunk in place; only supplied fields change.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateChunkArgs) (json.RawMessage, error) {
			return c.UpdateSegment(ctx, &dify_knowledge.UpdateSegmentRequest{
				DatasetID:  in.DatasetID,
				DocumentID: in.DocumentID,
				SegmentID:  in.SegmentID,
				Content:    in.Content,
				Answer:     in.Answer,
				Keywords:   dify_knowledge.SplitKeywords(in.Keywords),
				Enabled:    in.Enabled,
			})
		})
	addTool(s, "delete_chunk", "Delete a chunk from a document. This cannot be undone.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteChunkArgs) (json.RawMessage, error) {
			return c.DeleteSegment(ctx, &dify_knowledge.DeleteSegmentRequest{
				DatasetID: in.DatasetID, DocumentID: in.DocumentID, SegmentID: in.SegmentID,
			})
		})

	addTool(s, "list_child_chunks", "List child chunks of a parent chunk (hierarchical documents only).",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListChildChunksArgs) (json.RawMessage, error) {
			return c.ListChildChunks(ctx, &dify_knowledge.ListChildChunksRequest{
				DatasetID:  in.DatasetID,
				DocumentID: in.DocumentID,
				SegmentID:  in.SegmentID,
				Keyword:    in.Keyword,
				Pagination: dify_knowledge.Pagination{Page: in.Page, Limit: in.Limit},
			})
		})
	addTool(s, "create_child_chunk", "Create a child chunk under a parent chunk (hierarchical documents only).",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateChildChunkArgs) (json.RawMessage, error) {
			return c.CreateChildChunk(ctx, &dify_knowledge.CreateChildChunkRequest{
				DatasetID: in.DatasetID, DocumentID: in.DocumentID, SegmentID: in.SegmentID, Content: in.Content,
			})
		})
	addTool(s, "update_child_chunk", "Replace the content of a child chunk (hierarchical documents only).",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateChildChunkArgs) (json.RawMessage, error) {
			return c.UpdateChildChunk(ctx, &dify_knowledge.UpdateChildChunkRequest{
				DatasetID:    in.DatasetID,
				DocumentID:   in.DocumentID,
				SegmentID:    in.SegmentID,
				ChildChunkID: in.ChildChunkID,
				Content:      in.Content,
			})
		})
	addTool(s, "delete_child_chunk", "Delete a child chunk. This cannot be undone.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteChildChunkArgs) (json.RawMessage, error) {
			return c.DeleteChildChunk(ctx, &dify_knowledge.DeleteChildChunkRequest{
				DatasetID:    in.DatasetID,
				DocumentID:   in.DocumentID,
				SegmentID:    in.SegmentID,
				ChildChunkID: in.ChildChunkID,
			})
		})

	addTool(s, "create_metadata_field", "Create a custom metadata field on a dataset.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.CreateMetadataFieldArgs) (json.RawMessage, error) {
			return c.CreateMetadataField(ctx, &dify_knowledge.CreateMetadataFieldRequest{
				DatasetID: in.DatasetID, Name: in.Name, Type: in.FieldType,
			})
		})
	addTool(s, "update_metadata_field", "Rename a custom metadata field.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateMetadataFieldArgs) (json.RawMessage, error) {
			return c.UpdateMetadataField(ctx, &dify_knowledge.UpdateMetadataFieldRequest{
				DatasetID: in.DatasetID, MetadataID: in.MetadataID, Name: in.Name,
			})
		})
	addTool(s, "delete_metadata_field", "Delete a custom metadata field. This cannot be undone.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.DeleteMetadataFieldArgs) (json.RawMessage, error) {
			return c.DeleteMetadataField(ctx, &dify_knowledge.DeleteMetadataFieldRequest{
				DatasetID: in.DatasetID, MetadataID: in.MetadataID,
			})
		})
	addTool(s, "list_metadata_fields", "List the metadata fields of a dataset.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ListMetadataFieldsArgs) (json.RawMessage, error) {
			return c.ListMetadata(ctx, &dify_knowledge.ListMetadataRequest{DatasetID: in.DatasetID})
		})
	addTool(s, "toggle_built_in_metadata", "Enable or disable the built-in metadata fields of a dataset.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.ToggleBuiltInMetadataArgs) (json.RawMessage, error) {
			return c.ToggleBuiltInMetadata(ctx, &dify_knowledge.ToggleBuiltInMetadataRequest{
				DatasetID: in.DatasetID, Action: in.Action,
			})
		})
	addTool(s, "update_document_metadata", "Assign metadata field values to a document.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.UpdateDocumentMetadataArgs) (json.RawMessage, error) {
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
		})

	addTool(s, "retrieve", "Search a dataset and return the best matching chunks.",
		func(ctx context.Context, c *dify_knowledge.Client, in builtin_tools.RetrieveArgs) (json.RawMessage, error) {
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
		})
}

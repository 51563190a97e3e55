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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultProcessRule_Serialization(t *testing.T) {
	encoded, err := json.Marshal(DefaultProcessRule())
	assert.NoError(t, err)
	assert.Equal(t, `{"mode":"automatic"}`, string(encoded))
}

func TestParseProcessRule_Empty(t *testing.T) {
	rule, err := ParseProcessRule("   ")
	assert.NoError(t, err)
	assert.Equal(t, ProcessModeAutomatic, rule.Mode)
	assert.Nil(t, rule.Rules)
}

func TestParseProcessRule_SyntaxError(t *testing.T) {
	_, err := ParseProcessRule(`{"mode": "custom",`)
	assert.True(t, IsInvalidJSON(err))
	assert.Contains(t, err.Error(), "offset")
}

func TestParseProcessRule_Custom(t *testing.T) {
	rule, err := ParseProcessRule(`{
		"mode": "custom",
		"rules": {
			"pre_processing_rules": [
				{"id": "remove_extra_spaces", "enabled": true},
				{"id": "remove_urls_emails", "enabled": false}
			],
			"segmentation": {"separator": "\n\n", "max_tokens": 500, "chunk_overlap": 50}
		}
	}`)
	assert.NoError(t, err)
	assert.Equal(t, ProcessModeCustom, rule.Mode)
	assert.Len(t, rule.Rules.PreProcessingRules, 2)
	assert.Equal(t, 500, *rule.Rules.Segmentation.MaxTokens)
}

func TestParseProcessRule_Validation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "unknown mode",
			raw:     `{"mode": "manual"}`,
			wantErr: "process_rule.mode",
		},
		{
			name:    "custom without rules",
			raw:     `{"mode": "custom"}`,
			wantErr: "rules is required",
		},
		{
			name:    "custom without pre_processing_rules",
			raw:     `{"mode": "custom", "rules": {"segmentation": {"separator": "\n", "max_tokens": 100, "chunk_overlap": 10}}}`,
			wantErr: "pre_processing_rules is required",
		},
		{
			name: "pre_processing_rule without enabled",
			raw: `{"mode": "custom", "rules": {
				"pre_processing_rules": [{"id": "remove_extra_spaces"}],
				"segmentation": {"separator": "\n", "max_tokens": 100, "chunk_overlap": 10}
			}}`,
			wantErr: "enabled must be a boolean",
		},
		{
			name: "custom without segmentation",
			raw: `{"mode": "custom", "rules": {
				"pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}]
			}}`,
			wantErr: "segmentation is required",
		},
		{
			name: "segmentation without max_tokens",
			raw: `{"mode": "custom", "rules": {
				"pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}],
				"segmentation": {"separator": "\n", "chunk_overlap": 10}
			}}`,
			wantErr: "max_tokens is required",
		},
		{
			name: "hierarchical without parent_mode",
			raw: `{"mode": "hierarchical", "rules": {
				"pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}],
				"segmentation": {"separator": "\n", "max_tokens": 100, "chunk_overlap": 10}
			}}`,
			wantErr: "parent_mode",
		},
		{
			name: "hierarchical without subchunk_segmentation",
			raw: `{"mode": "hierarchical", "rules": {
				"pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}],
				"parent_mode": "paragraph",
				"segmentation": {"separator": "\n", "max_tokens": 100, "chunk_overlap": 10}
			}}`,
			wantErr: "subchunk_segmentation is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProcessRule(tt.raw)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseProcessRule_FullDocWaivesMaxTokens(t *testing.T) {
	rule, err := ParseProcessRule(`{"mode": "hierarchical", "rules": {
		"pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}],
		"parent_mode": "full-doc",
		"segmentation": {"separator": "\n\n", "chunk_overlap": 10},
		"subchunk_segmentation": {"separator": "\n", "max_tokens": 200}
	}}`)
	assert.NoError(t, err)
	assert.Equal(t, ParentModeFullDoc, rule.Rules.ParentMode)
	assert.Nil(t, rule.Rules.Segmentation.MaxTokens)

	// Paragraph parent mode keeps the requirement.
	_, err = ParseProcessRule(`{"mode": "hierarchical", "rules": {
		"pre_processing_rules": [{"id": "remove_extra_spaces", "enabled": true}],
		"parent_mode": "paragraph",
		"segmentation": {"separator": "\n\n", "chunk_overlap": 10},
		"subchunk_segmentation": {"separator": "\n", "max_tokens": 200}
	}}`)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "max_tokens is required")
}

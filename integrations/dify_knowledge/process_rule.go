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
	"strings"
)

// Process rule modes.
const (
	ProcessModeAutomatic    = "automatic"
	ProcessModeCustom       = "custom"
	ProcessModeHierarchical = "hierarchical"
)

// Parent modes for hierarchical chunking.
const (
	ParentModeFullDoc   = "full-doc"
	ParentModeParagraph = "paragraph"
)

var processModes = []string{ProcessModeAutomatic, ProcessModeCustom, ProcessModeHierarchical}
var parentModes = []string{ParentModeFullDoc, ParentModeParagraph}

// ProcessRule describes how a document is segmented during indexing. The
// automatic mode carries no rules; custom and hierarchical modes require
// explicit segmentation so that indexing behavior is never silently
// defaulted.
type ProcessRule struct {
	Mode  string        `json:"mode"`
	Rules *ProcessRules `json:"rules,omitempty"`
}

type ProcessRules struct {
	PreProcessingRules   []PreProcessingRule `json:"pre_processing_rules,omitempty"`
	Segmentation         *Segmentation       `json:"segmentation,omitempty"`
	ParentMode           string              `json:"parent_mode,omitempty"`
	SubchunkSegmentation *Segmentation       `json:"subchunk_segmentation,omitempty"`
}

type PreProcessingRule struct {
	ID      string `json:"id"`
	Enabled *bool  `json:"enabled"`
}

// Segmentation fields are pointers so that a structurally absent key can be
// told apart from a zero value.
type Segmentation struct {
	Separator    *string `json:"separator,omitempty"`
	MaxTokens    *int    `json:"max_tokens,omitempty"`
	ChunkOverlap *int    `json:"chunk_overlap,omitempty"`
}

// DefaultProcessRule returns the rule substituted when the caller supplies
// none; it serializes to exactly {"mode":"automatic"}.
func DefaultProcessRule() *ProcessRule {
	return &ProcessRule{Mode: ProcessModeAutomatic}
}

// ParseProcessRule parses caller-supplied JSON text into a validated
// ProcessRule. Empty or blank input yields the automatic default. A parse
// failure is reported as ErrInvalidJSON with the byte offset when the decoder
// provides one; a structurally incomplete rule is reported as ErrValidation.
func ParseProcessRule(raw string) (*ProcessRule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultProcessRule(), nil
	}

	var rule ProcessRule
	if err := json.Unmarshal([]byte(raw), &rule); err != nil {
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			return nil, invalidJSONErrorf("process_rule: %s (offset %d)", syntaxErr.Error(), syntaxErr.Offset)
		}
		return nil, invalidJSONErrorf("process_rule: %s", err.Error())
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return &rule, nil
}

// Validate checks the mode-specific structural requirements.
func (r *ProcessRule) Validate() error {
	if err := validateEnum("process_rule.mode", r.Mode, processModes); err != nil {
		return err
	}
	if r.Mode == ProcessModeAutomatic {
		return nil
	}

	if r.Rules == nil {
		return validationErrorf("process_rule.rules is required for %s mode", r.Mode)
	}
	if r.Rules.PreProcessingRules == nil {
		return validationErrorf("process_rule.rules.pre_processing_rules is required for %s mode", r.Mode)
	}
	for i, rule := range r.Rules.PreProcessingRules {
		if rule.ID == "" {
			return validationErrorf("process_rule.rules.pre_processing_rules[%d]: id is required", i)
		}
		if rule.Enabled == nil {
			return validationErrorf("process_rule.rules.pre_processing_rules[%d]: enabled must be a boolean", i)
		}
	}

	if r.Mode == ProcessModeHierarchical {
		if err := validateEnum("process_rule.rules.parent_mode", r.Rules.ParentMode, parentModes); err != nil {
			return err
		}
		if r.Rules.SubchunkSegmentation == nil {
			return validationErrorf("process_rule.rules.subchunk_segmentation is required for hierarchical mode")
		}
		if r.Rules.SubchunkSegmentation.Separator == nil {
			return validationErrorf("process_rule.rules.subchunk_segmentation.separator is required")
		}
	}

	seg := r.Rules.Segmentation
	if seg == nil {
		return validationErrorf("process_rule.rules.segmentation is required for %s mode", r.Mode)
	}
	if seg.Separator == nil {
		return validationErrorf("process_rule.rules.segmentation.separator is required")
	}
	// max_tokens is waived for hierarchical full-doc mode, where the parent
	// chunk is the whole document.
	if !(r.Mode == ProcessModeHierarchical && r.Rules.ParentMode == ParentModeFullDoc) {
		if seg.MaxTokens == nil {
			return validationErrorf("process_rule.rules.segmentation.max_tokens is required")
		}
	}
	if seg.ChunkOverlap == nil {
		return validationErrorf("process_rule.rules.segmentation.chunk_overlap is required")
	}
	return nil
}

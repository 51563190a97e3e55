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
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/difyforge/difykb-go/common"
)

// Request is a fully-formed outbound call descriptor: method, path with
// identifiers substituted, query parameters and body object. Builders produce
// it without performing any I/O.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Enumerated parameter sets of the Knowledge Base API.
var (
	Permissions = []string{"only_me", "all_team_members", "partial_members"}

	SearchMethods = []string{"keyword_search", "semantic_search", "hybrid_search", "full_text_search"}

	DocForms = []string{"text_model", "qa_model", "hierarchical_model"}

	MetadataFieldTypes = []string{"string", "number", "time"}

	BuiltInMetadataActions = []string{"enable", "disable"}

	IndexingTechniques = []string{"high_quality", "economy"}
)

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return validationErrorf("%s is required", field)
	}
	return nil
}

func validateEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return validationErrorf("%s: invalid value %q, must be one of [%s]", field, value, strings.Join(allowed, ", "))
}

// optionalEnum accepts the empty string and returns def in its place.
func optionalEnum(field, value, def string, allowed []string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	if err := validateEnum(field, value, allowed); err != nil {
		return "", err
	}
	return value, nil
}

// Pagination carries list-endpoint paging parameters. Zero values take the
// API defaults; negative values are rejected rather than clamped.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) normalize() (Pagination, error) {
	out := p
	if out.Page == 0 {
		out.Page = common.DEFAULT_PAGE
	}
	if out.Limit == 0 {
		out.Limit = common.DEFAULT_LIMIT
	}
	if out.Page < 1 {
		return out, validationErrorf("page must be a positive integer, got %d", p.Page)
	}
	if out.Limit < 1 {
		return out, validationErrorf("limit must be a positive integer, got %d", p.Limit)
	}
	return out, nil
}

func (p Pagination) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.Limit))
	return q
}

func datasetPath(datasetID, suffix string) string {
	return fmt.Sprintf("/datasets/%s%s", url.PathEscape(datasetID), suffix)
}

func documentPath(datasetID, documentID, suffix string) string {
	return datasetPath(datasetID, fmt.Sprintf("/documents/%s%s", url.PathEscape(documentID), suffix))
}

func segmentPath(datasetID, documentID, segmentID, suffix string) string {
	return documentPath(datasetID, documentID, fmt.Sprintf("/segments/%s%s", url.PathEscape(segmentID), suffix))
}

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

package common

// Credential environment variables.
const (
	DIFY_API_KEY         = "DIFY_API_KEY"
	DIFY_BASE_URL        = "DIFY_BASE_URL"
	DIFY_TIMEOUT_SECONDS = "DIFY_TIMEOUT_SECONDS"
)

const (
	DEFAULT_DIFY_BASE_URL        = "https://api.dify.ai/v1"
	DEFAULT_DIFY_TIMEOUT_SECONDS = 60
)

// LOGGING
const (
	LOGGING_LEVEL         = "LOGGING_LEVEL"
	DEFAULT_LOGGING_LEVEL = "info"
)

// Pagination and retrieval defaults, matching the Knowledge Base API.
const (
	DEFAULT_PAGE  = 1
	DEFAULT_LIMIT = 20
	DEFAULT_TOPK  = 5
)

const (
	DEFAULT_INDEXING_TECHNIQUE = "high_quality"
	DEFAULT_SEARCH_METHOD      = "keyword_search"
	DEFAULT_PERMISSION         = "only_me"
)

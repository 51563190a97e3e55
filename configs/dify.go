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

package configs

import (
	"strconv"

	"github.com/difyforge/difykb-go/common"
)

// DifyConfig carries Knowledge Base API credentials. The API key is a
// dataset-scoped key ("dataset-..."), not an app key.
type DifyConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c *DifyConfig) MapEnvToConfig() {
	c.APIKey = getEnv(common.DIFY_API_KEY, "")
	c.BaseURL = getEnv(common.DIFY_BASE_URL, common.DEFAULT_DIFY_BASE_URL)

	c.TimeoutSeconds = common.DEFAULT_DIFY_TIMEOUT_SECONDS
	if raw := getEnv(common.DIFY_TIMEOUT_SECONDS, ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			c.TimeoutSeconds = n
		}
	}
}

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
	"os"
	"testing"

	"github.com/difyforge/difykb-go/common"
	"github.com/stretchr/testify/assert"
)

func Test_loadConfigFromProjectEnv(t *testing.T) {
	fd, _ := os.Create(".env")
	_, _ = fd.WriteString("DIFY_BASE_URL=https://dify.example.com/v1")
	_ = fd.Close()
	defer func() {
		_ = os.Remove(".env")
		_ = os.Unsetenv(common.DIFY_BASE_URL)
	}()

	_ = loadConfigFromProjectEnv()
	assert.Equal(t, "https://dify.example.com/v1", os.Getenv(common.DIFY_BASE_URL))

	_ = os.Setenv(common.DIFY_BASE_URL, "https://other.example.com/v1")
	_ = loadConfigFromProjectEnv()
	assert.Equal(t, "https://other.example.com/v1", os.Getenv(common.DIFY_BASE_URL))
}

func Test_loadConfigFromProjectYaml(t *testing.T) {
	fd, _ := os.Create("config.yaml")
	_, _ = fd.WriteString(`dify:
  api_key: "dataset-test-key"
  base_url: "https://yaml.example.com/v1"`)
	_ = fd.Close()
	defer func() {
		_ = os.Remove("config.yaml")
		_ = os.Unsetenv(common.DIFY_API_KEY)
		_ = os.Unsetenv(common.DIFY_BASE_URL)
	}()

	_ = loadConfigFromProjectYaml()
	assert.Equal(t, "dataset-test-key", os.Getenv(common.DIFY_API_KEY))
	assert.Equal(t, "https://yaml.example.com/v1", os.Getenv(common.DIFY_BASE_URL))

	// Already-set environment variables win over config.yaml.
	_ = os.Setenv(common.DIFY_API_KEY, "dataset-env-key")
	_ = loadConfigFromProjectYaml()
	assert.Equal(t, "dataset-env-key", os.Getenv(common.DIFY_API_KEY))
}

func TestDifyConfig_MapEnvToConfig(t *testing.T) {
	_ = os.Unsetenv(common.DIFY_API_KEY)
	_ = os.Unsetenv(common.DIFY_BASE_URL)
	_ = os.Setenv(common.DIFY_TIMEOUT_SECONDS, "not-a-number")
	defer func() {
		_ = os.Unsetenv(common.DIFY_TIMEOUT_SECONDS)
	}()

	cfg := &DifyConfig{}
	cfg.MapEnvToConfig()
	assert.Equal(t, common.DEFAULT_DIFY_BASE_URL, cfg.BaseURL)
	assert.Equal(t, common.DEFAULT_DIFY_TIMEOUT_SECONDS, cfg.TimeoutSeconds)

	_ = os.Setenv(common.DIFY_TIMEOUT_SECONDS, "120")
	cfg.MapEnvToConfig()
	assert.Equal(t, 120, cfg.TimeoutSeconds)
}

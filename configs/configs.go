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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/difyforge/difykb-go/common"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DifyKBConfig struct {
	Dify    *DifyConfig `yaml:"dify"`
	Logging *Logging    `yaml:"LOGGING"`
}

type Logging struct {
	Level string
}

func (c *Logging) MapEnvToConfig() {
	c.Level = getEnv(common.LOGGING_LEVEL, common.DEFAULT_LOGGING_LEVEL)
}

var (
	globalConfig *DifyKBConfig
	configOnce   sync.Once
)

func GetGlobalConfig() *DifyKBConfig {
	configOnce.Do(func() {
		if err := SetupDifyKBConfig(); err != nil {
			panic(err)
		}
	})
	return globalConfig
}

func SetupDifyKBConfig() error {
	if err := loadConfigFromProjectEnv(); err != nil {
		return err
	}
	if err := loadConfigFromProjectYaml(); err != nil {
		return err
	}
	globalConfig = &DifyKBConfig{
		Dify:    &DifyConfig{},
		Logging: &Logging{},
	}
	globalConfig.Dify.MapEnvToConfig()
	globalConfig.Logging.MapEnvToConfig()
	return nil
}

func loadConfigFromProjectEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	envFilePath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envFilePath); err == nil {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(envFilePath); err != nil {
			return fmt.Errorf("loading .env failed: %v", err)
		}
	}
	return nil
}

func loadConfigFromProjectYaml() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	// config.yaml has the lowest priority.
	var yamlConfig map[string]interface{}
	configYamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configYamlPath); err == nil {
		data, err := os.ReadFile(configYamlPath)
		if err != nil {
			return fmt.Errorf("reading config.yaml failed: %v", err)
		}
		if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
			return fmt.Errorf("parsing config.yaml failed: %v", err)
		}

		// Keys map to environment variable names (dify.api_key -> DIFY_API_KEY)
		// without overriding variables that are already set.
		setYamlToEnv(yamlConfig, "")
	}
	return nil
}

func setYamlToEnv(data map[string]interface{}, prefix string) {
	for key, val := range data {
		fullKey := key
		if prefix != "" {
			fullKey = fmt.Sprintf("%s_%s", prefix, key)
		}
		fullKey = strings.ToUpper(fullKey)

		switch v := val.(type) {
		case map[string]interface{}:
			setYamlToEnv(v, fullKey)
		case string:
			if os.Getenv(fullKey) == "" {
				_ = os.Setenv(fullKey, v)
			}
		case int:
			if os.Getenv(fullKey) == "" {
				_ = os.Setenv(fullKey, strconv.Itoa(v))
			}
		case bool:
			if os.Getenv(fullKey) == "" {
				_ = os.Setenv(fullKey, strconv.FormatBool(v))
			}
		}
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

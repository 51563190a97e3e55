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
	"context"
	"encoding/json"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/difyforge/difykb-go/log"
)

// KnowledgeConfig configures the knowledge base tools. Empty credential
// fields fall back to environment variables and the global config; Client
// overrides everything, mainly for tests.
type KnowledgeConfig struct {
	APIKey  string
	BaseURL string
	Client  *dify_knowledge.Client
}

// KnowledgeClient resolves the shared API client, building it on first use.
func (c *KnowledgeConfig) KnowledgeClient() (*dify_knowledge.Client, error) {
	if c.Client != nil {
		return c.Client, nil
	}
	client, err := dify_knowledge.New(&dify_knowledge.Client{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	c.Client = client
	return client, nil
}

// ToolResult is the uniform envelope every knowledge base tool returns. A
// failed call never surfaces as a handler error; the failure is folded into
// Message so the calling model can read and react to it.
type ToolResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// execute resolves the client, runs one API call and converts the outcome
// into a ToolResult.
func execute(cfg *KnowledgeConfig, ctx context.Context, call func(context.Context, *dify_knowledge.Client) (json.RawMessage, error)) (ToolResult, error) {
	client, err := cfg.KnowledgeClient()
	if err != nil {
		log.Warn("Knowledge base client init failed", "error", err)
		return ToolResult{Message: err.Error()}, nil
	}
	raw, err := call(ctx, client)
	if err != nil {
		log.Warn("Knowledge base call failed", "error", err)
		return ToolResult{Message: err.Error()}, nil
	}
	return ToolResult{Success: true, Data: raw}, nil
}

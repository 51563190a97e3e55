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
	"net/http"
	"time"

	"github.com/difyforge/difykb-go/integrations/dify_knowledge"
	"github.com/difyforge/difykb-go/log"
	"github.com/difyforge/difykb-go/tool/builtin_tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "difykb"
	// Version is the MCP server version.
	Version = "0.1.0"
)

// Server exposes the knowledge base tools over the Model Context Protocol,
// so MCP hosts (IDEs, agent runtimes) can manage datasets without the adk
// tool layer.
type Server struct {
	config *builtin_tools.KnowledgeConfig
	server *mcp.Server
}

func NewServer(config *builtin_tools.KnowledgeConfig) (*Server, error) {
	if config == nil {
		config = &builtin_tools.KnowledgeConfig{}
	}

	impl := &mcp.Implementation{
		Name:    serverName,
		Version: Version,
	}

	s := &Server{
		config: config,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info("Starting MCP server on stdio", "name", serverName)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	log.Info("Starting MCP server on HTTP", "addr", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// addTool registers one typed tool. Remote and validation failures are
// folded into the ToolResult message instead of failing the MCP call, so
// the calling model sees what went wrong.
func addTool[In any](s *Server, name, description string, call func(context.Context, *dify_knowledge.Client, In) (json.RawMessage, error)) {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, builtin_tools.ToolResult, error) {
		client, err := s.config.KnowledgeClient()
		if err != nil {
			log.Warn("Knowledge base client init failed", "tool", name, "error", err)
			return nil, builtin_tools.ToolResult{Message: err.Error()}, nil
		}
		raw, err := call(ctx, client, in)
		if err != nil {
			log.Warn("Knowledge base call failed", "tool", name, "error", err)
			return nil, builtin_tools.ToolResult{Message: err.Error()}, nil
		}
		return nil, builtin_tools.ToolResult{Success: true, Data: raw}, nil
	})
}

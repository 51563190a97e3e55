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

package http_app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/difyforge/difykb-go/log"
	"github.com/difyforge/difykb-go/tool/builtin_tools"
	"github.com/gorilla/mux"
)

// Server exposes the knowledge base tools over plain HTTP: POST
// /v1/tools/{name} with the tool arguments as the JSON body. It is meant
// for agent runtimes that speak neither adk nor MCP.
type Server struct {
	config  *builtin_tools.KnowledgeConfig
	router  *mux.Router
	invokes map[string]invokeFunc
}

type invokeFunc func(ctx context.Context, args json.RawMessage) builtin_tools.ToolResult

func NewServer(config *builtin_tools.KnowledgeConfig) (*Server, error) {
	if config == nil {
		config = &builtin_tools.KnowledgeConfig{}
	}
	s := &Server{
		config: config,
		router: mux.NewRouter(),
	}
	s.invokes = s.buildRegistry()
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/tools", s.handleListTools).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/tools/{name}", s.handleInvoke).Methods(http.MethodPost)
	return s, nil
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("Starting knowledge base tool server", "addr", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(s.invokes))
	for name := range s.invokes {
		names = append(names, name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": names})
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	invoke, ok := s.invokes[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, builtin_tools.ToolResult{Message: "unknown tool: " + name})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, builtin_tools.ToolResult{Message: "reading request body: " + err.Error()})
		return
	}

	result := invoke(r.Context(), body)
	// Tool failures still answer 200; the envelope carries the outcome, the
	// HTTP status only reflects the transport.
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Encoding response failed", "error", err)
	}
}

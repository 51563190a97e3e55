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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/difyforge/difykb-go/common"
	"github.com/difyforge/difykb-go/configs"
	"github.com/difyforge/difykb-go/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/go-playground/validator.v8"
)

const tracerName = "github.com/difyforge/difykb-go/integrations/dify_knowledge"

var DifyKnowledgeConfigErr = errors.New("dify knowledge config error")

// Doer performs one HTTP round trip. It is satisfied by *http.Client and by
// test transports.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a Dify Knowledge Base API with a dataset-scoped bearer
// token. It holds no mutable state: every call is an independent round trip.
type Client struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	httpClient Doer
	tracer     trace.Tracer
}

// credentials mirrors the validated subset of Client fields; validator.v8
// cannot walk structs with unexported fields.
type credentials struct {
	APIKey  string `validate:"required"`
	BaseURL string `validate:"required"`
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the transport, mainly for tests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

func (c *Client) validate() error {
	var validate *validator.Validate
	config := &validator.Config{TagName: "validate"}
	validate = validator.New(config)
	if err := validate.Struct(&credentials{APIKey: c.APIKey, BaseURL: c.BaseURL}); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			return fmt.Errorf("field %s validation failed: %s (rule: %s)", err.Field, err.Tag, err.Param)
		}
	}
	return nil
}

// New builds a client, falling back to environment variables and the global
// config for credentials that cfg leaves empty.
func New(cfg *Client, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = &Client{}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = utils.GetEnvWithDefault(common.DIFY_API_KEY, configs.GetGlobalConfig().Dify.APIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = utils.GetEnvWithDefault(common.DIFY_BASE_URL, configs.GetGlobalConfig().Dify.BaseURL, common.DEFAULT_DIFY_BASE_URL)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Duration(configs.GetGlobalConfig().Dify.TimeoutSeconds) * time.Second
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", DifyKnowledgeConfigErr, err)
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	cfg.tracer = otel.Tracer(tracerName)
	return cfg, nil
}

// ValidateCredentials probes the API with a minimal list call, the same check
// the tool provider performs before accepting credentials.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	_, err := c.do(ctx, &Request{
		Method: http.MethodGet,
		Path:   "/datasets",
		Query:  Pagination{Page: 1, Limit: 1}.query(),
	})
	return err
}

// do performs one request-response round trip and normalizes the outcome.
// There is no retry and no caching; the calling agent decides whether to try
// again.
func (c *Client) do(ctx context.Context, r *Request) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "dify_knowledge.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", r.Path),
		),
	)
	defer span.End()

	body, err := c.roundTrip(ctx, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, r *Request) (json.RawMessage, error) {
	var reader io.Reader
	if r.Body != nil {
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return nil, invalidJSONErrorf("encoding request body: %s", err.Error())
		}
		reader = bytes.NewReader(encoded)
	}

	requestURL := c.BaseURL + r.Path
	if len(r.Query) > 0 {
		requestURL += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, requestURL, reader)
	if err != nil {
		return nil, validationErrorf("building request: %s", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	// 204 carries no body; synthesize the confirmation the API omits.
	if resp.StatusCode == http.StatusNoContent {
		return json.RawMessage(`{"success":true,"message":"Operation completed successfully"}`), nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(respBody) == 0 {
			return json.RawMessage(`{"success":true}`), nil
		}
		return respBody, nil
	}
	return nil, classifyResponse(resp.StatusCode, respBody)
}

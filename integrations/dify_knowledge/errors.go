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
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Every failure surfaced by this package wraps exactly one of
// these, so callers can classify with errors.Is.
var (
	// ErrValidation indicates a missing, malformed or out-of-range input
	// parameter, detected before any network call.
	ErrValidation = errors.New("dify: invalid parameter")

	// ErrInvalidJSON indicates caller-supplied JSON (process rule, metadata
	// array) that failed to parse or failed structural checks.
	ErrInvalidJSON = errors.New("dify: invalid JSON input")

	// ErrAuthentication indicates remote status 401/403.
	ErrAuthentication = errors.New("dify: authentication failed")

	// ErrNotFound indicates remote status 404.
	ErrNotFound = errors.New("dify: resource not found")

	// ErrRateLimited indicates remote status 429.
	ErrRateLimited = errors.New("dify: rate limit exceeded")

	// ErrRemoteService indicates any other non-2xx remote status.
	ErrRemoteService = errors.New("dify: knowledge base service error")

	// ErrNetwork indicates a transport-level failure (DNS, connect, TLS,
	// timeout).
	ErrNetwork = errors.New("dify: network failure")
)

// APIError carries the classified kind, the remote status code (zero for
// local failures) and a human-readable message.
type APIError struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind.Error(), e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// IsValidation returns true if the error is a local parameter validation
// failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidJSON returns true if the error is a caller-supplied JSON failure.
func IsInvalidJSON(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}

// IsAuthentication returns true if the error indicates invalid or
// insufficient credentials.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNotFound returns true if the error indicates a missing remote resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited returns true if the error indicates remote rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNetwork returns true if the error indicates a transport-level failure.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}

func validationErrorf(format string, args ...any) error {
	return &APIError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func invalidJSONErrorf(format string, args ...any) error {
	return &APIError{Kind: ErrInvalidJSON, Message: fmt.Sprintf(format, args...)}
}

func networkError(cause error) error {
	return &APIError{Kind: ErrNetwork, Message: cause.Error()}
}

// classifyResponse maps a non-2xx remote response to an APIError. The message
// prefers the remote body's message/error/detail field and falls back to the
// raw body text, then to a generic description.
func classifyResponse(statusCode int, body []byte) error {
	kind := ErrRemoteService
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrAuthentication
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusTooManyRequests:
		kind = ErrRateLimited
	}
	return &APIError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    remoteMessage(body, fmt.Sprintf("API request failed with status %d", statusCode)),
	}
}

func remoteMessage(body []byte, fallback string) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Error != "":
			return parsed.Error
		case parsed.Detail != "":
			return parsed.Detail
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}

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

package utils

import (
	"errors"
	"fmt"
)

var (
	OptsNIlErr        = errors.New("opts is nil")
	OptsInvalidKeyErr = errors.New("opts key not found")
	OptsAssertTypeErr = errors.New("opts value type assert failed")
)

// ExtractOptsValue reads a typed value from the first opts map.
func ExtractOptsValue[T any](key string, opts ...map[string]any) (T, error) {
	var zero T
	if len(opts) == 0 {
		return zero, OptsNIlErr
	}
	if opts[0] == nil {
		return zero, fmt.Errorf("%w: %s", OptsInvalidKeyErr, key)
	}
	raw, ok := opts[0][key]
	if !ok {
		return zero, fmt.Errorf("%w: %s", OptsInvalidKeyErr, key)
	}
	val, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s (%T)", OptsAssertTypeErr, key, raw)
	}
	return val, nil
}

// ExtractOptsValueWithDefault reads a typed value from the first opts map,
// falling back to def on any failure.
func ExtractOptsValueWithDefault[T any](key string, def T, opts ...map[string]any) T {
	val, err := ExtractOptsValue[T](key, opts...)
	if err != nil {
		return def
	}
	return val
}

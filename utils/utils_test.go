// Copyright (c) 2025 DifyForge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package utils

import (
	"os"
	"testing"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "DIFYKB_UTILS_TEST_KEY"

	tests := []struct {
		name      string
		envValue  string
		fallbacks []string
		expected  string
	}{
		{
			name:      "env set wins over fallbacks",
			envValue:  "from-env",
			fallbacks: []string{"fb1", "fb2"},
			expected:  "from-env",
		},
		{
			name:      "env unset uses first non-empty fallback",
			envValue:  "",
			fallbacks: []string{"", "fb2"},
			expected:  "fb2",
		},
		{
			name:      "whitespace env treated as unset",
			envValue:  "   ",
			fallbacks: []string{"fb1"},
			expected:  "fb1",
		},
		{
			name:      "no fallbacks yields empty",
			envValue:  "",
			fallbacks: nil,
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				_ = os.Setenv(key, tt.envValue)
			} else {
				_ = os.Unsetenv(key)
			}
			defer func() {
				_ = os.Unsetenv(key)
			}()

			if got := GetEnvWithDefault(key, tt.fallbacks...); got != tt.expected {
				t.Fatalf("got=%q want=%q", got, tt.expected)
			}
		})
	}
}

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

package knowledgebase

type Option func(*KnowledgeBase)

func WithName(name string) Option {
	return func(kb *KnowledgeBase) {
		kb.Name = name
	}
}

func WithDescription(description string) Option {
	return func(kb *KnowledgeBase) {
		kb.Description = description
	}
}

func WithBackendConfig(config any) Option {
	return func(kb *KnowledgeBase) {
		kb.BackendConfig = config
	}
}

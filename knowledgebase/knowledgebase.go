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

import (
	"errors"
	"fmt"

	"github.com/difyforge/difykb-go/knowledgebase/backend/dify_knowledge_backend"
	_interface "github.com/difyforge/difykb-go/knowledgebase/interface"
	"github.com/difyforge/difykb-go/knowledgebase/ktypes"
)

var (
	InvalidKnowledgeBackendErr       = errors.New("invalid knowledge backend type")
	InvalidKnowledgeBackendConfigErr = errors.New("invalid knowledge backend config type")
)

const (
	DefaultName        = "knowledge_base"
	DefaultDescription = `This is a knowledge base. You can use it to answer questions. If any questions need you to look up the knowledge base, you should call knowledge_base function with a query.`
)

type KnowledgeBase struct {
	Name          string
	Description   string
	Backend       _interface.KnowledgeBackend
	BackendConfig any
}

func getKnowledgeBackend(backend string, backendConfig any) (_interface.KnowledgeBackend, error) {
	switch backend {
	case ktypes.DifyBackend:
		switch cfg := backendConfig.(type) {
		case *dify_knowledge_backend.Config:
			return dify_knowledge_backend.NewDifyKnowledgeBackend(cfg)
		default:
			return nil, InvalidKnowledgeBackendConfigErr
		}
	case ktypes.LocalBackend:
		return nil, fmt.Errorf("%w: %s", InvalidKnowledgeBackendErr, backend)
	default:
		return nil, fmt.Errorf("%w: %s", InvalidKnowledgeBackendErr, backend)
	}
}

// NewKnowledgeBase accepts either a ready KnowledgeBackend instance or a
// backend name string paired with WithBackendConfig.
func NewKnowledgeBase(backend any, opts ...Option) (*KnowledgeBase, error) {
	var err error

	knowledge := &KnowledgeBase{}
	for _, o := range opts {
		o(knowledge)
	}
	if knowledge.Name == "" {
		knowledge.Name = DefaultName
	}
	if knowledge.Description == "" {
		knowledge.Description = DefaultDescription
	}
	switch b := backend.(type) {
	case _interface.KnowledgeBackend:
		knowledge.Backend = b
	case string:
		knowledge.Backend, err = getKnowledgeBackend(b, knowledge.BackendConfig)
		if err != nil {
			return nil, err
		}
	default:
		return nil, InvalidKnowledgeBackendErr
	}
	return knowledge, nil
}

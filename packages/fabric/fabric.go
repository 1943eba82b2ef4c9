// Copyright 2026 Google LLC

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     https://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fabric binds the fabric-cicd publishing engine, which deploys
// Microsoft Fabric items from a source repository into a workspace.
package fabric

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// WorkspaceConfig configures the workspace a publish operation targets.
type WorkspaceConfig struct {
	// Identifier of the target Fabric workspace.
	WorkspaceID string `json:"workspace_id"`
	// Path to the directory containing the item definitions and parameter.yml.
	// The engine validates it, not this package.
	RepositoryDirectory string `json:"repository_directory"`
	// Environment tag used by the engine to select parameter.yml replacements.
	Environment string `json:"environment"`
	// Item types that the engine is allowed to publish, in order.
	ItemTypeInScope []string `json:"item_type_in_scope"`
}

// Workspace is a handle on a configured workspace. It is created through an
// Engine and only meaningful to the Engine that created it.
type Workspace struct {
	cfg WorkspaceConfig
}

// Config returns a copy of the configuration the workspace was created with.
func (w *Workspace) Config() WorkspaceConfig {
	c := w.cfg
	c.ItemTypeInScope = slices.Clone(w.cfg.ItemTypeInScope)
	return c
}

// Engine is the publishing engine.
type Engine interface {
	// NewWorkspace returns a workspace handle for the provided configuration.
	NewWorkspace(cfg *WorkspaceConfig) (*Workspace, error)
	// PublishAllItems publishes every in-scope item found in the workspace's
	// repository directory, blocking until the engine finishes.
	PublishAllItems(ctx context.Context, ws *Workspace) error
}

// NewWorkspace checks the fields every engine requires and returns a handle
// holding its own copy of cfg. Engines that keep no per-workspace state use it
// to implement Engine.NewWorkspace.
func NewWorkspace(cfg *WorkspaceConfig) (*Workspace, error) {
	if cfg == nil {
		return nil, errors.New("workspace config is required")
	}
	if len(cfg.WorkspaceID) == 0 {
		return nil, errors.New("workspace id is required")
	}
	if len(cfg.Environment) == 0 {
		return nil, errors.New("environment is required")
	}
	if len(cfg.ItemTypeInScope) == 0 {
		return nil, fmt.Errorf("no item types in scope for workspace %s", cfg.WorkspaceID)
	}
	ws := &Workspace{cfg: *cfg}
	ws.cfg.ItemTypeInScope = slices.Clone(cfg.ItemTypeInScope)
	return ws, nil
}

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

package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/analytics-platform/fabric-deploy/packages/fabric"
	"github.com/charmbracelet/lipgloss"
)

// itemTypesInScope are the only item types this deployer publishes. Anything
// else in the repository is left alone by fabric-cicd.
var itemTypesInScope = [...]string{"Lakehouse", "Notebook"}

// deploymentRequest is built once per invocation from the command line.
type deploymentRequest struct {
	workspaceID      string
	environment      environment
	repositoryPath   string
	itemTypesInScope []string
}

func newDeploymentRequest(p *params) *deploymentRequest {
	return &deploymentRequest{
		workspaceID:      string(p.workspaceID),
		environment:      p.environment,
		repositoryPath:   p.repoPath,
		itemTypesInScope: slices.Clone(itemTypesInScope[:]),
	}
}

// workspaceConfig returns the engine configuration for the request.
func (r *deploymentRequest) workspaceConfig() *fabric.WorkspaceConfig {
	return &fabric.WorkspaceConfig{
		WorkspaceID:         r.workspaceID,
		RepositoryDirectory: r.repositoryPath,
		Environment:         string(r.environment),
		ItemTypeInScope:     slices.Clone(r.itemTypesInScope),
	}
}

// publishError wraps a failure returned by the publishing engine so it can be
// told apart from a usage error.
type publishError struct {
	err error
}

func (e *publishError) Error() string { return e.err.Error() }

func (e *publishError) Unwrap() error { return e.err }

// deployer publishes a deployment request through the engine.
type deployer struct {
	req    *deploymentRequest
	engine fabric.Engine
	out    io.Writer
}

// process prints the deployment summary, publishes the in-scope items and
// prints the success banner. Engine errors are returned as a *publishError
// and are not retried.
func (d *deployer) process(ctx context.Context) error {
	title := lipgloss.NewRenderer(d.out).NewStyle().Bold(true)
	fmt.Fprintf(d.out, "\n%s\n", title.Render("=== Fabric CI/CD Deployment ==="))
	fmt.Fprintf(d.out, "Target:      %s\n", d.req.workspaceID)
	fmt.Fprintf(d.out, "Environment: %s\n", d.req.environment)
	fmt.Fprintf(d.out, "Scope:       %s\n", strings.Join(d.req.itemTypesInScope, ", "))

	ws, err := d.engine.NewWorkspace(d.req.workspaceConfig())
	if err != nil {
		return &publishError{err: fmt.Errorf("unable to initialize workspace %s: %w", d.req.workspaceID, err)}
	}
	if err := d.engine.PublishAllItems(ctx, ws); err != nil {
		return &publishError{err: err}
	}

	fmt.Fprintf(d.out, "\n%s\n", title.Render("=== Deployment Successful ==="))
	return nil
}

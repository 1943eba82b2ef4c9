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
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/analytics-platform/fabric-deploy/packages/fabric"
	"github.com/google/go-cmp/cmp"
)

func TestNewDeploymentRequest(t *testing.T) {
	p := &params{workspaceID: "W", environment: environmentPPE, repoPath: defaultRepoPath}
	got := newDeploymentRequest(p)
	want := &deploymentRequest{
		workspaceID:      "W",
		environment:      environmentPPE,
		repositoryPath:   "./src",
		itemTypesInScope: []string{"Lakehouse", "Notebook"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(deploymentRequest{})); diff != "" {
		t.Errorf("newDeploymentRequest() mismatch (-want +got):\n%s", diff)
	}

	// Requests must not share the scope list.
	got.itemTypesInScope[0] = "Report"
	if diff := cmp.Diff([]string{"Lakehouse", "Notebook"}, newDeploymentRequest(p).itemTypesInScope); diff != "" {
		t.Errorf("newDeploymentRequest() scope was modified by a previous request (-want +got):\n%s", diff)
	}
}

func TestDeployerProcessWrapsEngineErrors(t *testing.T) {
	engineErr := errors.New("remote API returned 500")
	var out bytes.Buffer
	d := &deployer{
		req:    newDeploymentRequest(&params{workspaceID: "W", environment: environmentPROD, repoPath: defaultRepoPath}),
		engine: &fakeEngine{publishErr: engineErr},
		out:    &out,
	}
	err := d.process(context.Background())
	var pErr *publishError
	if !errors.As(err, &pErr) {
		t.Fatalf("process() error = %v, want *publishError", err)
	}
	if !errors.Is(err, engineErr) {
		t.Errorf("process() error = %v, want it to wrap %v", err, engineErr)
	}
}

func TestWorkspaceConfig(t *testing.T) {
	r := newDeploymentRequest(&params{workspaceID: "W", environment: environmentPROD, repoPath: "repo"})
	want := &fabric.WorkspaceConfig{
		WorkspaceID:         "W",
		RepositoryDirectory: "repo",
		Environment:         "PROD",
		ItemTypeInScope:     []string{"Lakehouse", "Notebook"},
	}
	if diff := cmp.Diff(want, r.workspaceConfig()); diff != "" {
		t.Errorf("workspaceConfig() mismatch (-want +got):\n%s", diff)
	}
}

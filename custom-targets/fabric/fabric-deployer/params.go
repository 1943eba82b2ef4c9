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
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Command line flags accepted by the Fabric deployer.
const (
	workspaceIDFlag = "workspace_id"
	environmentFlag = "environment"
	repoPathFlag    = "repo_path"

	defaultRepoPath = "./src"
)

// environment is the deployment context passed to fabric-cicd. It selects
// which parameter.yml replacements are applied.
type environment string

const (
	environmentPPE  environment = "PPE"
	environmentPROD environment = "PROD"
)

var environments = []environment{environmentPPE, environmentPROD}

// Set implements pflag.Value. Values are matched exactly, PPE and ppe are
// not the same environment.
func (e *environment) Set(s string) error {
	if !slices.Contains(environments, environment(s)) {
		return fmt.Errorf("must be one of %s", environmentNames())
	}
	*e = environment(s)
	return nil
}

func (e *environment) String() string { return string(*e) }

func (e *environment) Type() string { return "PPE|PROD" }

func environmentNames() string {
	names := make([]string, 0, len(environments))
	for _, e := range environments {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}

// nonEmptyString is a string flag that rejects an explicitly empty value.
type nonEmptyString string

func (s *nonEmptyString) Set(v string) error {
	if len(v) == 0 {
		return fmt.Errorf("must not be empty")
	}
	*s = nonEmptyString(v)
	return nil
}

func (s *nonEmptyString) String() string { return string(*s) }

func (s *nonEmptyString) Type() string { return "string" }

// params contains the values provided on the command line.
type params struct {
	// Identifier of the target Fabric workspace.
	workspaceID nonEmptyString
	// Environment context, PPE or PROD.
	environment environment
	// Path to the source repository read by fabric-cicd. Not checked here.
	repoPath string
}

// addFlags registers the deployer flags on fs, binding them to p.
func addFlags(fs *pflag.FlagSet, p *params) {
	fs.Var(&p.workspaceID, workspaceIDFlag, "Target Workspace ID")
	fs.Var(&p.environment, environmentFlag, fmt.Sprintf("Environment Context (%s)", environmentNames()))
	fs.StringVar(&p.repoPath, repoPathFlag, defaultRepoPath, "Path to the source repository")
}

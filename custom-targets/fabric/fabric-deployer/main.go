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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/analytics-platform/fabric-deploy/packages/fabric"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Exit codes returned by the deployer.
const (
	exitOK           = 0
	exitPublishError = 1
	exitUsageError   = 2
)

func main() {
	engine := &fabric.CICDEngine{Stdout: os.Stdout, Stderr: os.Stderr}
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, engine))
}

// run executes the deployer with the provided arguments and returns the
// process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, engine fabric.Engine) int {
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "fabric-deployer"})

	cmd := newRootCmd(engine)
	// cobra falls back to os.Args when given nil.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var pErr *publishError
		if errors.As(err, &pErr) {
			logger.Error("Deployment failed", "err", pErr.err)
			return exitPublishError
		}
		logger.Error("Invalid arguments", "err", err)
		fmt.Fprintln(stderr, cmd.UsageString())
		return exitUsageError
	}
	return exitOK
}

// newRootCmd returns the deployer command. Flags are bound to a fresh params
// value so every invocation starts from the defaults.
func newRootCmd(engine fabric.Engine) *cobra.Command {
	p := &params{}
	cmd := &cobra.Command{
		Use:   "fabric-deployer --workspace_id <id> --environment <PPE|PROD> [--repo_path <path>]",
		Short: "Deploy Fabric Items (Lakehouse, Notebook, Semantic Model)",
		Long: heredoc.Doc(`
			Deploy Fabric Items (Lakehouse, Notebook, Semantic Model).

			Publishes the Lakehouse and Notebook definitions found in the source
			repository to the target workspace using fabric-cicd. The Lakehouse is
			deployed first; the Notebook's default lakehouse is then rewritten for
			the selected environment using the repository's parameter.yml.
		`),
		Example: heredoc.Doc(`
			fabric-deployer --workspace_id 00000000-0000-0000-0000-000000000000 --environment PPE
			fabric-deployer --workspace_id 00000000-0000-0000-0000-000000000000 --environment PROD --repo_path ./workspace
		`),
		Args: cobra.NoArgs,
		// Errors and usage are reported by run.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := &deployer{
				req:    newDeploymentRequest(p),
				engine: engine,
				out:    cmd.OutOrStdout(),
			}
			return d.process(cmd.Context())
		},
	}
	addFlags(cmd.Flags(), p)
	cobra.CheckErr(cmd.MarkFlagRequired(workspaceIDFlag))
	cobra.CheckErr(cmd.MarkFlagRequired(environmentFlag))
	return cmd
}

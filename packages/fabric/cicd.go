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

package fabric

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	pythonBin = "python3"
)

// publishScript is the driver handed to the interpreter. It reads a
// WorkspaceConfig as JSON on stdin and calls fabric_cicd.publish_all_items.
//
//go:embed publish.py
var publishScript string

// CICDEngine runs the fabric-cicd Python library out of process. The
// library must be installed for the interpreter, e.g. `pip install fabric-cicd`.
type CICDEngine struct {
	// Interpreter to run the engine with. Defaults to python3 found on PATH.
	PythonBin string
	// Receives the engine's stdout. Discarded when nil.
	Stdout io.Writer
	// Receives the engine's stderr in addition to the returned error. Discarded
	// when nil.
	Stderr io.Writer
	// Defaults to log.Default().
	Logger *log.Logger
}

// NewWorkspace implements Engine. The repository directory is passed through
// untouched; fabric-cicd reports a missing or malformed repository itself.
func (e *CICDEngine) NewWorkspace(cfg *WorkspaceConfig) (*Workspace, error) {
	return NewWorkspace(cfg)
}

// PublishAllItems implements Engine.
func (e *CICDEngine) PublishAllItems(ctx context.Context, ws *Workspace) error {
	if ws == nil {
		return errors.New("workspace is required")
	}
	in, err := json.Marshal(ws.cfg)
	if err != nil {
		return fmt.Errorf("unable to marshal workspace config: %v", err)
	}
	e.logger().Info("Publishing items with fabric-cicd",
		"workspace", ws.cfg.WorkspaceID,
		"environment", ws.cfg.Environment,
		"repository", ws.cfg.RepositoryDirectory,
		"scope", strings.Join(ws.cfg.ItemTypeInScope, ","))
	if err := e.runCmd(ctx, e.pythonBin(), []string{"-c", publishScript}, in); err != nil {
		return fmt.Errorf("fabric-cicd publish failed: %w", err)
	}
	return nil
}

func (e *CICDEngine) pythonBin() string {
	if len(e.PythonBin) != 0 {
		return e.PythonBin
	}
	return pythonBin
}

func (e *CICDEngine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

// runCmd starts and waits for the provided command with args to complete,
// writing stdin to the process. The engine's output is streamed to the
// configured writers and its stderr is included in the error on failure.
func (e *CICDEngine) runCmd(ctx context.Context, binPath string, args []string, stdin []byte) error {
	e.logger().Debug("Running the following command", "bin", binPath, "argc", len(args))
	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	// Unbuffered so the engine's progress reaches the operator as it happens.
	cmd.Env = append(os.Environ(), "PYTHONUNBUFFERED=1")

	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(&stderr, orDiscard(e.Stderr))
	cmd.Stdout = orDiscard(e.Stdout)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %v", err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("error running command: %v\n%s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

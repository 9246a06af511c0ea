// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes hook scripts with the embedded shell.
type Runner struct {
	// Dir is the working directory for hook scripts.
	Dir string
	// Stdout and Stderr receive hook output. Nil writers discard it.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a Runner rooted at dir.
func NewRunner(dir string, stdout, stderr io.Writer) *Runner {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Runner{Dir: dir, Stdout: stdout, Stderr: stderr}
}

// Check parses the script without running it, so manifest mistakes surface
// before any packaging work starts.
func Check(script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}
	_, err := syntax.NewParser().Parse(strings.NewReader(script), "hook")
	if err != nil {
		return fmt.Errorf("hook syntax error: %w", err)
	}
	return nil
}

// Run executes the script. The env map is appended to the process
// environment; a non-zero exit status is returned as an error carrying the
// status code.
func (r *Runner) Run(ctx context.Context, script string, env map[string]string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "hook")
	if err != nil {
		return fmt.Errorf("failed to parse hook: %w", err)
	}

	runner, err := interp.New(
		interp.Dir(r.Dir),
		interp.Env(expand.ListEnviron(buildEnv(env)...)),
		interp.StdIO(nil, r.Stdout, r.Stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return fmt.Errorf("hook exited with status %d", int(exitStatus))
		}
		return fmt.Errorf("hook execution failed: %w", err)
	}
	return nil
}

// buildEnv merges the current process environment with the hook variables.
// Keys are emitted in sorted order so runs are reproducible.
func buildEnv(env map[string]string) []string {
	merged := os.Environ()

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, k+"="+env[k])
	}
	return merged
}

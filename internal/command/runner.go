package command

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultTimeout bounds every subprocess call. The hook has to answer in
// well under a second, so a stuck git process must not hang the decision.
const DefaultTimeout = 5 * time.Second

//go:generate mockgen -source=runner.go -destination=mock_runner.go -package=command

// Runner abstracts subprocess execution
type Runner interface {
	// RunInDir runs a command in the given directory and returns its
	// stdout and stderr output
	RunInDir(ctx context.Context, dir string, name string, args ...string) (string, string, error)
}

type execRunner struct {
	timeout time.Duration
}

// NewRunner creates a Runner that executes real subprocesses with
// DefaultTimeout applied to each call.
func NewRunner() Runner {
	return &execRunner{timeout: DefaultTimeout}
}

// RunInDir runs a command in the given directory
func (r *execRunner) RunInDir(ctx context.Context, dir string, name string, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

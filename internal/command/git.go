package command

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=git.go -destination=mock_command.go -package=command

// GitRunner answers the narrow repository-state questions policy rules
// depend on
type GitRunner interface {
	// IsInsideWorkTree reports whether dir is inside a git working tree
	IsInsideWorkTree(ctx context.Context, dir string) (bool, error)
	// IsHeadDetached reports whether HEAD does not point at a branch
	IsHeadDetached(ctx context.Context, dir string) (bool, error)
	// ResolveRef resolves a ref to its commit id
	ResolveRef(ctx context.Context, dir string, ref string) (string, error)
}

type gitRunner struct {
	runner Runner
}

// NewGitRunner creates a new GitRunner instance
func NewGitRunner(runner Runner) GitRunner {
	return &gitRunner{
		runner: runner,
	}
}

// IsInsideWorkTree reports whether dir is inside a git working tree
func (g *gitRunner) IsInsideWorkTree(ctx context.Context, dir string) (bool, error) {
	stdout, stderr, err := g.runner.RunInDir(ctx, dir, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false, fmt.Errorf("failed to check work tree: %w (stderr: %s)", err, stderr)
	}

	return strings.TrimSpace(stdout) == "true", nil
}

// IsHeadDetached reports whether HEAD does not point at a branch
func (g *gitRunner) IsHeadDetached(ctx context.Context, dir string) (bool, error) {
	stdout, stderr, err := g.runner.RunInDir(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return false, fmt.Errorf("failed to get current branch: %w (stderr: %s)", err, stderr)
	}

	// rev-parse prints the literal string HEAD when detached
	return strings.TrimSpace(stdout) == "HEAD", nil
}

// ResolveRef resolves a ref to its commit id
func (g *gitRunner) ResolveRef(ctx context.Context, dir string, ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("ref cannot be empty")
	}

	stdout, stderr, err := g.runner.RunInDir(ctx, dir, "git", "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve ref %s: %w (stderr: %s)", ref, err, stderr)
	}

	commit := strings.TrimSpace(stdout)
	if commit == "" {
		return "", fmt.Errorf("ref %s did not resolve to a commit", ref)
	}

	return commit, nil
}

package hooks

import (
	"context"

	"github.com/toolgate/toolgate/internal/command"
	"github.com/toolgate/toolgate/internal/logger"
)

// GitProbe answers repository-state questions for rules. When an answer
// is unknown (git missing, not a repository, subprocess failure) the ok
// result is false and the dependent rule must not apply.
type GitProbe interface {
	// IsInsideWorkTree reports whether cwd is inside a git working tree.
	IsInsideWorkTree(cwd string) (inside bool, ok bool)
	// IsHeadDetached reports whether HEAD in cwd does not point at a branch.
	IsHeadDetached(cwd string) (detached bool, ok bool)
	// ResolveRef resolves a ref in cwd to its commit id.
	ResolveRef(cwd string, ref string) (commit string, ok bool)
}

type boolAnswer struct {
	value bool
	ok    bool
}

type refAnswer struct {
	commit string
	ok     bool
}

// cachingGitProbe memoizes answers for the lifetime of one hook
// invocation. Evaluation is sequential, so no locking is needed.
type cachingGitProbe struct {
	runner   command.GitRunner
	inside   map[string]boolAnswer
	detached map[string]boolAnswer
	refs     map[string]refAnswer
}

// NewGitProbe creates a GitProbe backed by the git CLI.
func NewGitProbe() GitProbe {
	return NewGitProbeWithRunner(command.NewGitRunner(command.NewRunner()))
}

// NewGitProbeWithRunner creates a caching GitProbe over the given runner.
func NewGitProbeWithRunner(runner command.GitRunner) GitProbe {
	return &cachingGitProbe{
		runner:   runner,
		inside:   map[string]boolAnswer{},
		detached: map[string]boolAnswer{},
		refs:     map[string]refAnswer{},
	}
}

func (p *cachingGitProbe) IsInsideWorkTree(cwd string) (bool, bool) {
	if answer, cached := p.inside[cwd]; cached {
		return answer.value, answer.ok
	}

	value, err := p.runner.IsInsideWorkTree(context.Background(), cwd)
	if err != nil {
		logger.Debug("git probe failed", "question", "is-inside-work-tree", "cwd", cwd, "error", err)
	}
	answer := boolAnswer{value: value, ok: err == nil}
	p.inside[cwd] = answer
	return answer.value, answer.ok
}

func (p *cachingGitProbe) IsHeadDetached(cwd string) (bool, bool) {
	if answer, cached := p.detached[cwd]; cached {
		return answer.value, answer.ok
	}

	value, err := p.runner.IsHeadDetached(context.Background(), cwd)
	if err != nil {
		logger.Debug("git probe failed", "question", "is-head-detached", "cwd", cwd, "error", err)
	}
	answer := boolAnswer{value: value, ok: err == nil}
	p.detached[cwd] = answer
	return answer.value, answer.ok
}

func (p *cachingGitProbe) ResolveRef(cwd string, ref string) (string, bool) {
	key := cwd + "\x00" + ref
	if answer, cached := p.refs[key]; cached {
		return answer.commit, answer.ok
	}

	commit, err := p.runner.ResolveRef(context.Background(), cwd, ref)
	if err != nil {
		logger.Debug("git probe failed", "question", "resolve-ref", "cwd", cwd, "ref", ref, "error", err)
	}
	answer := refAnswer{commit: commit, ok: err == nil}
	p.refs[key] = answer
	return answer.commit, answer.ok
}

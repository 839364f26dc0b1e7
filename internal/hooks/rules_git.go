package hooks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toolgate/toolgate/internal/shell"
)

func evaluateGitChangeDir(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	path, found := shell.GitChangeDirPath(command)
	if !found {
		return nil
	}

	if path != "" && samePath(rctx.Cwd, path) {
		return &Violation{
			Message: fmt.Sprintf("git -C %s is not needed: %s is already the current working directory. Run the command without -C.", path, path),
		}
	}

	return &Violation{
		Message: "git -C is not allowed. Run git from the working directory instead.",
	}
}

func evaluateGitCheckoutRedundantStartPoint(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	for _, invocation := range shell.GitInvocations(command) {
		if invocation.Subcommand != "checkout" {
			continue
		}

		branch, startPoint, ok := checkoutBranchArgs(invocation)
		if !ok {
			continue
		}

		detached, known := rctx.Git.IsHeadDetached(rctx.Cwd)
		if !known || !detached {
			continue
		}

		startCommit, ok := rctx.Git.ResolveRef(rctx.Cwd, startPoint)
		if !ok {
			continue
		}
		headCommit, ok := rctx.Git.ResolveRef(rctx.Cwd, "HEAD")
		if !ok {
			continue
		}

		if startCommit != headCommit {
			continue
		}

		return &Violation{
			Message: fmt.Sprintf("Unnecessary start-point %s: it resolves to the same commit as HEAD. Use git checkout -b %s instead.", startPoint, branch),
		}
	}

	return nil
}

// checkoutBranchArgs extracts the branch name and start-point from a
// `git checkout -b <name> <start>` invocation.
func checkoutBranchArgs(invocation shell.GitInvocation) (string, string, bool) {
	for i, arg := range invocation.Args {
		if arg != "-b" {
			continue
		}
		if i+2 >= len(invocation.Args) {
			return "", "", false
		}
		branch := invocation.Args[i+1]
		startPoint := invocation.Args[i+2]
		if branch == "" || startPoint == "" || strings.HasPrefix(startPoint, "-") {
			return "", "", false
		}
		return branch, startPoint, true
	}
	return "", "", false
}

func evaluateGitAddAll(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	for _, invocation := range shell.GitInvocations(command) {
		if invocation.Subcommand != "add" {
			continue
		}
		if invocation.HasArg("-A") || invocation.HasArg("--all") {
			return &Violation{
				Message: "git add -A stages everything, including files you did not touch. Stage the specific paths you changed instead.",
			}
		}
	}

	return nil
}

func evaluateGitCommitAmend(rctx *RuleContext) *Violation {
	return evaluateGitCommitFlag(rctx, "--amend", "git commit --amend is not allowed. Create a new commit instead.")
}

func evaluateGitCommitNoVerify(rctx *RuleContext) *Violation {
	return evaluateGitCommitFlag(rctx, "--no-verify", "git commit --no-verify is not allowed. Let the commit hooks run.")
}

func evaluateGitCommitFlag(rctx *RuleContext, flag string, message string) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	for _, invocation := range shell.GitInvocations(command) {
		if invocation.Subcommand != "commit" {
			continue
		}
		if invocation.HasArg(flag) {
			return &Violation{Message: message}
		}
	}

	return nil
}

// samePath reports whether path names the same directory as cwd. Relative
// paths are resolved against cwd. Unresolvable paths never match.
func samePath(cwd string, path string) bool {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	resolvedCwd, err := filepath.EvalSymlinks(cwd)
	if err != nil {
		return false
	}
	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}

	return filepath.Clean(resolvedCwd) == filepath.Clean(resolvedPath)
}

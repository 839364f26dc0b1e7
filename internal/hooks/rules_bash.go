package hooks

import (
	"fmt"
	"strings"

	"github.com/toolgate/toolgate/internal/shell"
)

func evaluateCargoManifestPath(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	if !shell.HasCargoManifestPath(command) {
		return nil
	}

	return &Violation{
		Message: "cargo --manifest-path is not allowed. Run cargo from the package directory instead.",
	}
}

func evaluateBackgroundBash(rctx *RuleContext) *Violation {
	background, ok := rctx.Event.GetBoolArg("run_in_background")
	if !ok || !background {
		return nil
	}

	return &Violation{
		Message: "Running Bash commands in the background is not allowed. Run the command in the foreground and wait for it to finish.",
	}
}

func evaluateCommandChaining(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	if !shell.HasChainOperators(command) {
		return nil
	}

	if target, ok := shell.LeadingCdTarget(command); ok && samePath(rctx.Cwd, target) {
		return &Violation{
			Message: fmt.Sprintf("cd %s is not needed: %s is already the current working directory. Run the command without the leading cd.", target, target),
		}
	}

	return &Violation{
		Message: "Chaining commands with && or ; makes failures hard to attribute. Run one command at a time.",
	}
}

func evaluateFileOperationCommands(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	offenders := shell.FileOpOffenders(command)
	if len(offenders) == 0 {
		return nil
	}

	return &Violation{
		Message: fmt.Sprintf("Reading or editing files with %s is not allowed. Use the dedicated file tools instead.", strings.Join(offenders, ", ")),
	}
}

func evaluatePipeToFilter(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	filter, found := shell.PipedFilterCommand(command)
	if !found {
		return nil
	}

	return &Violation{
		Message: fmt.Sprintf("Piping output to %s hides the full output. Run the command directly and inspect the complete result.", filter),
	}
}

func evaluateFindExec(rctx *RuleContext) *Violation {
	command, ok := rctx.Event.GetStringArg("command")
	if !ok {
		return nil
	}

	executed, found := shell.FindExecCommand(command)
	if !found {
		return nil
	}

	if executed == "grep" {
		return &Violation{
			Message: "find -exec grep is not allowed. Use rg instead, which searches recursively on its own.",
		}
	}

	return &Violation{
		Message: "find -exec is not allowed. Run find first and operate on the results explicitly.",
	}
}

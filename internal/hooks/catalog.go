package hooks

import (
	"github.com/toolgate/toolgate/internal/audit"
	"github.com/toolgate/toolgate/internal/logger"
)

// Catalog returns the ordered rule table. The order is the precedence:
// when several rules would trigger on one event, the first one in this
// list wins.
func Catalog() []Rule {
	return []Rule{
		{
			Flag:        FlagBanGitC,
			Tool:        ToolBash,
			Description: "Block git -C; commands run from the working directory",
			Evaluate:    evaluateGitChangeDir,
		},
		{
			Flag:        FlagBanGitCheckoutRedundantStartPoint,
			Tool:        ToolBash,
			Description: "Block git checkout -b with a start-point that already equals HEAD",
			Evaluate:    evaluateGitCheckoutRedundantStartPoint,
		},
		{
			Flag:        FlagBanCargoManifestPath,
			Tool:        ToolBash,
			Description: "Block cargo --manifest-path; cargo runs from the package directory",
			Evaluate:    evaluateCargoManifestPath,
		},
		{
			Flag:        FlagBanGitAddAll,
			Tool:        ToolBash,
			Description: "Block git add -A and git add --all",
			Evaluate:    evaluateGitAddAll,
		},
		{
			Flag:        FlagBanGitCommitAmend,
			Tool:        ToolBash,
			Description: "Block git commit --amend",
			Evaluate:    evaluateGitCommitAmend,
		},
		{
			Flag:        FlagBanGitCommitNoVerify,
			Tool:        ToolBash,
			Description: "Block git commit --no-verify",
			Evaluate:    evaluateGitCommitNoVerify,
		},
		{
			Flag:        FlagBanBackgroundBash,
			Tool:        ToolBash,
			Description: "Block Bash commands requested with run_in_background",
			Evaluate:    evaluateBackgroundBash,
		},
		{
			Flag:        FlagBanCommandChaining,
			Tool:        ToolBash,
			Description: "Block chaining multiple commands with &&, ; or control flow",
			Evaluate:    evaluateCommandChaining,
		},
		{
			Flag:        FlagBanFileOperationCommands,
			Tool:        ToolBash,
			Description: "Block cat, sed, head, tail and awk; the file tools replace them",
			Evaluate:    evaluateFileOperationCommands,
		},
		{
			Flag:        FlagBanOutdatedYearInSearch,
			Tool:        ToolWebSearch,
			Description: "Block web searches pinned to a stale recent year",
			Evaluate:    evaluateOutdatedYearInSearch,
		},
		{
			Flag:        FlagBanPipeToFilter,
			Tool:        ToolBash,
			Description: "Block piping command output into grep, head and other filters",
			Evaluate:    evaluatePipeToFilter,
		},
		{
			Flag:        FlagBanFindExec,
			Tool:        ToolBash,
			Description: "Block find -exec and find -execdir",
			Evaluate:    evaluateFindExec,
		},
		{
			Flag:        FlagLogToolUse,
			Tool:        ToolAny,
			Description: "Record every allowed tool call to the tool-use log",
			Evaluate:    evaluateLogToolUse,
		},
	}
}

// evaluateLogToolUse records the call and never blocks. It runs last, so
// calls blocked by an earlier rule are not recorded.
func evaluateLogToolUse(rctx *RuleContext) *Violation {
	if rctx.ToolUseLog == nil {
		return nil
	}

	command, _ := rctx.Event.GetStringArg("command")
	query, _ := rctx.Event.GetStringArg("query")

	entry := audit.Entry{
		SessionID: rctx.Event.SessionID,
		ToolName:  rctx.Event.ToolName,
		Command:   command,
		Query:     query,
		Cwd:       rctx.Cwd,
		Allowed:   true,
	}
	if !rctx.Start.IsZero() {
		entry.DurationMs = float64(rctx.Now().Sub(rctx.Start).Microseconds()) / 1000
	}

	// Recording failures never block the tool call.
	if err := rctx.ToolUseLog.Record(entry); err != nil {
		logger.Warn("failed to record tool use", "error", err)
	}

	return nil
}

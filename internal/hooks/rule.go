package hooks

import (
	"time"

	"github.com/toolgate/toolgate/internal/audit"
)

// Tool names a rule can be scoped to. ToolAny matches every tool.
const (
	ToolBash      = "Bash"
	ToolWebSearch = "WebSearch"
	ToolAny       = "*"
)

// Flags identifying each rule in the catalog. A rule only runs when its
// flag is enabled in the configuration.
const (
	FlagBanGitC                           = "banGitC"
	FlagBanGitCheckoutRedundantStartPoint = "banGitCheckoutRedundantStartPoint"
	FlagBanCargoManifestPath              = "banCargoManifestPath"
	FlagBanGitAddAll                      = "banGitAddAll"
	FlagBanGitCommitAmend                 = "banGitCommitAmend"
	FlagBanGitCommitNoVerify              = "banGitCommitNoVerify"
	FlagBanBackgroundBash                 = "banBackgroundBash"
	FlagBanCommandChaining                = "banCommandChaining"
	FlagBanFileOperationCommands          = "banFileOperationCommands"
	FlagBanOutdatedYearInSearch           = "banOutdatedYearInSearch"
	FlagBanPipeToFilter                   = "banPipeToFilter"
	FlagBanFindExec                       = "banFindExec"
	FlagLogToolUse                        = "logToolUse"
)

// Violation is a blocking outcome of rule evaluation. A nil Violation
// means the rule does not apply to the event.
type Violation struct {
	Message string
}

// Rule is one policy in the catalog: the flag that gates it, the tool it
// applies to, and the evaluation function.
type Rule struct {
	// Flag is the configuration key that enables this rule.
	Flag string

	// Tool is the tool name this rule applies to, or ToolAny.
	Tool string

	// Description is a human-readable summary of what this rule blocks.
	Description string

	// Evaluate inspects the event and returns a violation, or nil to allow.
	Evaluate func(rctx *RuleContext) *Violation
}

// RuleContext carries everything a rule may consult while evaluating one
// tool event.
type RuleContext struct {
	Event *ToolEvent

	// Cwd is the working directory of the session that issued the event.
	Cwd string

	// Git answers repository-state questions. Rules that depend on it do
	// not apply when an answer is unknown.
	Git GitProbe

	// ToolUseLog receives records from the logToolUse rule. A nil log
	// disables recording.
	ToolUseLog *audit.Log

	// Start is when routing of this event began, used for the recorded
	// evaluation duration.
	Start time.Time

	// Now supplies the current time for rules that depend on it.
	Now func() time.Time
}

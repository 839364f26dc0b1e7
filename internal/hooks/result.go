package hooks

// BlockExitCode is the process exit code Claude Code interprets as a
// blocked tool call. The stderr message accompanies it.
const BlockExitCode = 2

// Decision represents the outcome of routing one tool event.
type Decision struct {
	// Allowed indicates whether the tool usage should be allowed.
	Allowed bool

	// Message provides additional context about the decision.
	// For blocked decisions, this explains why the tool was blocked.
	Message string

	// RuleName identifies which rule produced this decision.
	RuleName string
}

// NewAllowedDecision creates a decision that allows the tool usage.
func NewAllowedDecision() *Decision {
	return &Decision{
		Allowed:  true,
		Message:  "",
		RuleName: "",
	}
}

// NewBlockedDecision creates a decision that blocks the tool usage.
func NewBlockedDecision(ruleName, message string) *Decision {
	return &Decision{
		Allowed:  false,
		Message:  message,
		RuleName: ruleName,
	}
}

// ExitCode returns the process exit code for this decision.
func (d *Decision) ExitCode() int {
	if d.Allowed {
		return 0
	}
	return BlockExitCode
}

package hooks

import (
	"fmt"
	"time"

	"github.com/toolgate/toolgate/internal/audit"
	"github.com/toolgate/toolgate/internal/config"
)

// Router validates tool events and runs them through the rule catalog.
type Router struct {
	engine     *ruleEngine
	git        GitProbe
	toolUseLog *audit.Log
	now        func() time.Time
}

// NewRouter creates a Router over the full rule catalog.
func NewRouter(git GitProbe, toolUseLog *audit.Log) *Router {
	return &Router{
		engine:     NewRuleEngine(Catalog()...),
		git:        git,
		toolUseLog: toolUseLog,
		now:        time.Now,
	}
}

// Route validates the event against the tool schemas and evaluates the
// enabled rules. A recognized tool with a malformed tool_input is an
// error; the caller reports it with an exit code distinct from a block.
// Unknown tools are always allowed.
func (r *Router) Route(event *ToolEvent, hooks config.Hooks, cwd string) (*Decision, error) {
	if event == nil {
		return nil, fmt.Errorf("event cannot be nil")
	}

	if _, err := ValidateToolInput(event.ToolName, event.ToolInput); err != nil {
		return nil, fmt.Errorf("invalid tool event: %w", err)
	}

	if event.Cwd != "" {
		cwd = event.Cwd
	}

	rctx := &RuleContext{
		Event:      event,
		Cwd:        cwd,
		Git:        r.git,
		ToolUseLog: r.toolUseLog,
		Start:      r.now(),
		Now:        r.now,
	}
	return r.engine.Evaluate(rctx, hooks)
}

package hooks

import (
	"fmt"
	"time"

	"github.com/toolgate/toolgate/internal/config"
)

// ruleEngine implements the rule evaluation engine.
type ruleEngine struct {
	rules []Rule
}

// NewRuleEngine creates a new rule engine with the given rules. Rule order
// is precedence: evaluation stops at the first violation.
func NewRuleEngine(rules ...Rule) *ruleEngine {
	return &ruleEngine{
		rules: rules,
	}
}

// Evaluate runs the enabled, applicable rules against the event in order.
// Returns the first blocking decision, or an allowed decision if no rules
// block.
func (e *ruleEngine) Evaluate(rctx *RuleContext, hooks config.Hooks) (*Decision, error) {
	if rctx == nil || rctx.Event == nil {
		return nil, fmt.Errorf("rule context requires an event")
	}
	if rctx.Now == nil {
		rctx.Now = time.Now
	}

	for _, rule := range e.rules {
		if !hooks.Enabled(rule.Flag) {
			continue
		}
		if rule.Tool != ToolAny && rule.Tool != rctx.Event.ToolName {
			continue
		}

		if violation := rule.Evaluate(rctx); violation != nil {
			return NewBlockedDecision(rule.Flag, violation.Message), nil
		}
	}

	return NewAllowedDecision(), nil
}

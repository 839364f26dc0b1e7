package hooks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateOutdatedYearInSearch(t *testing.T) {
	// Fixed clock so the window boundaries are stable.
	now := func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name        string
		query       string
		wantBlocked bool
		wantYear    string
	}{
		{name: "recent past year", query: "python tutorial 2023", wantBlocked: true, wantYear: "2023"},
		{name: "last year", query: "best laptops 2024", wantBlocked: true, wantYear: "2024"},
		{name: "oldest year inside the window", query: "framework comparison 2015", wantBlocked: true, wantYear: "2015"},
		{name: "current year", query: "go releases 2025"},
		{name: "future year", query: "conference schedule 2026"},
		{name: "historical year", query: "history of computing 1995"},
		{name: "year just outside the window", query: "retrospective 2014"},
		{name: "no year", query: "golang error handling"},
		{name: "digits inside a longer number", query: "rfc 92023 details"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event := newToolEvent(t, ToolWebSearch, map[string]interface{}{"query": tc.query})
			rctx := newRuleContext(event, "/work")
			rctx.Now = now

			violation := evaluateOutdatedYearInSearch(rctx)
			if !tc.wantBlocked {
				assert.Nil(t, violation)
			} else {
				require.NotNil(t, violation)
				assert.Contains(t, violation.Message, tc.wantYear)
			}
		})
	}
}

package hooks

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newToolEvent(t *testing.T, toolName string, toolInput map[string]interface{}) *ToolEvent {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"session_id": "test-session",
		"tool_name":  toolName,
		"tool_input": toolInput,
	})
	require.NoError(t, err)

	event, err := ParseToolEvent(bytes.NewReader(payload))
	require.NoError(t, err)
	return event
}

func newBashEvent(t *testing.T, command string) *ToolEvent {
	t.Helper()
	return newToolEvent(t, ToolBash, map[string]interface{}{"command": command})
}

func newRuleContext(event *ToolEvent, cwd string) *RuleContext {
	return &RuleContext{
		Event: event,
		Cwd:   cwd,
		Now:   time.Now,
	}
}

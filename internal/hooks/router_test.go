package hooks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolgate/toolgate/internal/config"
)

func TestRouter_Route(t *testing.T) {
	tests := []struct {
		name         string
		event        func(t *testing.T) *ToolEvent
		hooks        config.Hooks
		wantErr      bool
		wantExitCode int
		wantContains []string
	}{
		{
			name:         "clean bash command allowed",
			event:        func(t *testing.T) *ToolEvent { return newBashEvent(t, "go version") },
			hooks:        config.AllHooks(),
			wantExitCode: 0,
		},
		{
			name:         "git -C blocked",
			event:        func(t *testing.T) *ToolEvent { return newBashEvent(t, "git -C /tmp status") },
			hooks:        config.HooksFromFlags(map[string]bool{FlagBanGitC: true}),
			wantExitCode: 2,
			wantContains: []string{"git -C is not allowed"},
		},
		{
			name:         "chained command blocked",
			event:        func(t *testing.T) *ToolEvent { return newBashEvent(t, "npm install && npm test") },
			hooks:        config.HooksFromFlags(map[string]bool{FlagBanCommandChaining: true}),
			wantExitCode: 2,
			wantContains: []string{"Chaining"},
		},
		{
			name: "recognized tool with no applicable rules allowed",
			event: func(t *testing.T) *ToolEvent {
				return newToolEvent(t, "Read", map[string]interface{}{"file_path": "/tmp/a.go"})
			},
			hooks:        config.AllHooks(),
			wantExitCode: 0,
		},
		{
			name: "unknown tool always allowed",
			event: func(t *testing.T) *ToolEvent {
				event, err := ParseToolEvent(strings.NewReader(`{"tool_name":"Mystery","tool_input":[1,2]}`))
				require.NoError(t, err)
				return event
			},
			hooks:        config.AllHooks(),
			wantExitCode: 0,
		},
		{
			name: "recognized tool with malformed input is an error",
			event: func(t *testing.T) *ToolEvent {
				event, err := ParseToolEvent(strings.NewReader(`{"tool_name":"Bash","tool_input":{"command":42}}`))
				require.NoError(t, err)
				return event
			},
			hooks:   config.AllHooks(),
			wantErr: true,
		},
		{
			name:         "empty hooks config allows everything",
			event:        func(t *testing.T) *ToolEvent { return newBashEvent(t, "git -C /tmp status && cat x | grep y") },
			hooks:        config.HooksFromFlags(map[string]bool{}),
			wantExitCode: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := NewRouter(new(MockGitProbe), nil)

			decision, err := router.Route(tc.event(t), tc.hooks, "/work")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExitCode, decision.ExitCode())
			for _, want := range tc.wantContains {
				assert.Contains(t, decision.Message, want)
			}
		})
	}
}

func TestRouter_Route_EventCwdWins(t *testing.T) {
	cwd := t.TempDir()
	event := newBashEvent(t, "git -C "+cwd+" status")
	event.Cwd = cwd

	router := NewRouter(new(MockGitProbe), nil)

	decision, err := router.Route(event, config.HooksFromFlags(map[string]bool{FlagBanGitC: true}), "/work")
	require.NoError(t, err)
	assert.Equal(t, 2, decision.ExitCode())
	assert.Contains(t, decision.Message, "already the current working directory")
}

func TestRouter_Route_NilEvent(t *testing.T) {
	router := NewRouter(new(MockGitProbe), nil)

	_, err := router.Route(nil, config.AllHooks(), "/work")
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "toolgate", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	commandNames := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		commandNames = append(commandNames, c.Name())
	}
	assert.ElementsMatch(t, []string{"pre-tool-use", "list-flags"}, commandNames)
}

func TestNewPreToolUseCmd(t *testing.T) {
	cmd := newPreToolUseCmd(&rootFlags{})

	assert.Equal(t, "pre-tool-use", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.RunE)

	err := cmd.Args(cmd, []string{})
	assert.NoError(t, err)

	err = cmd.Args(cmd, []string{"extra"})
	assert.Error(t, err)
}

func TestPreToolUseCmd_Execute(t *testing.T) {
	missingConfig := filepath.Join(t.TempDir(), "config.toml")

	tests := []struct {
		name    string
		config  string
		input   string
		wantErr bool
	}{
		{
			name:  "valid event with no rules enabled allows",
			input: `{"tool_name": "Bash", "tool_input": {"command": "git -C /tmp status"}}`,
		},
		{
			name:   "valid event passing the enabled rules allows",
			config: "[hooks]\nbanGitC = true\n",
			input:  `{"tool_name": "Bash", "tool_input": {"command": "git status"}}`,
		},
		{
			name:    "invalid JSON returns error",
			input:   `{invalid json}`,
			wantErr: true,
		},
		{
			name:    "missing tool_name returns error",
			input:   `{"tool_input": {"command": "ls"}}`,
			wantErr: true,
		},
		{
			name:    "recognized tool with malformed input returns error",
			config:  "hooks = true\n",
			input:   `{"tool_name": "Bash", "tool_input": {"command": 42}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := missingConfig
			if tt.config != "" {
				configPath = filepath.Join(t.TempDir(), "config.toml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.config), 0o644))
			}

			cmd := newRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetIn(strings.NewReader(tt.input))
			cmd.SetArgs([]string{"pre-tool-use", "--config", configPath})

			err := cmd.Execute()

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestListFlagsCmd_Execute(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"list-flags"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "banGitC")
	assert.Contains(t, output, "banCommandChaining")
	assert.Contains(t, output, "logToolUse")
	assert.Contains(t, output, "WebSearch")

	// Evaluation order is part of the surface; banGitC is evaluated first.
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Greater(t, len(lines), 2)
	assert.Contains(t, lines[1], "banGitC")
}

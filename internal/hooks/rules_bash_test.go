package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCargoManifestPath(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		wantBlocked bool
	}{
		{name: "separate form", command: "cargo build --manifest-path crates/core/Cargo.toml", wantBlocked: true},
		{name: "equals form", command: "cargo test --manifest-path=Cargo.toml", wantBlocked: true},
		{name: "plain cargo", command: "cargo build"},
		{name: "flag on another command", command: "mytool --manifest-path x"},
		{name: "flag in single quotes", command: "echo 'cargo build --manifest-path x'"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violation := evaluateCargoManifestPath(newRuleContext(newBashEvent(t, tc.command), "/work"))
			if !tc.wantBlocked {
				assert.Nil(t, violation)
			} else {
				require.NotNil(t, violation)
				assert.Contains(t, violation.Message, "cargo --manifest-path is not allowed")
			}
		})
	}
}

func TestEvaluateBackgroundBash(t *testing.T) {
	tests := []struct {
		name        string
		toolInput   map[string]interface{}
		wantBlocked bool
	}{
		{
			name:        "background requested",
			toolInput:   map[string]interface{}{"command": "sleep 100", "run_in_background": true},
			wantBlocked: true,
		},
		{
			name:      "background explicitly false",
			toolInput: map[string]interface{}{"command": "sleep 100", "run_in_background": false},
		},
		{
			name:      "background absent",
			toolInput: map[string]interface{}{"command": "sleep 100"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event := newToolEvent(t, ToolBash, tc.toolInput)
			violation := evaluateBackgroundBash(newRuleContext(event, "/work"))
			if !tc.wantBlocked {
				assert.Nil(t, violation)
			} else {
				require.NotNil(t, violation)
				assert.Contains(t, violation.Message, "background")
			}
		})
	}
}

func TestEvaluateCommandChaining(t *testing.T) {
	cwd := t.TempDir()

	tests := []struct {
		name         string
		command      string
		wantBlocked  bool
		wantContains []string
	}{
		{
			name:         "and chain",
			command:      "npm install && npm test",
			wantBlocked:  true,
			wantContains: []string{"Chaining"},
		},
		{
			name:         "semicolon chain",
			command:      "make; make install",
			wantBlocked:  true,
			wantContains: []string{"Chaining"},
		},
		{
			name:         "leading cd into current directory",
			command:      "cd " + cwd + " && make",
			wantBlocked:  true,
			wantContains: []string{"not needed", "already the current working directory"},
		},
		{
			name:         "leading cd into another directory",
			command:      "cd /tmp && make",
			wantBlocked:  true,
			wantContains: []string{"Chaining"},
		},
		{
			name:    "single command",
			command: "npm test",
		},
		{
			name:    "pipeline is not a chain",
			command: "ls | wc -l",
		},
		{
			name:    "background separator is not a chain",
			command: "sleep 10 & wait",
		},
		{
			name:    "chain inside command substitution",
			command: "echo $(a && b)",
		},
		{
			name:    "chain inside single quotes",
			command: "echo 'a && b'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violation := evaluateCommandChaining(newRuleContext(newBashEvent(t, tc.command), cwd))
			if !tc.wantBlocked {
				assert.Nil(t, violation)
				return
			}
			require.NotNil(t, violation)
			for _, want := range tc.wantContains {
				assert.Contains(t, violation.Message, want)
			}
		})
	}
}

func TestEvaluateFileOperationCommands(t *testing.T) {
	tests := []struct {
		name         string
		command      string
		wantBlocked  bool
		wantContains []string
	}{
		{
			name:         "cat a file",
			command:      "cat main.go",
			wantBlocked:  true,
			wantContains: []string{"cat"},
		},
		{
			name:         "sed in place",
			command:      "sed -i s/a/b/ main.go",
			wantBlocked:  true,
			wantContains: []string{"sed"},
		},
		{
			name:    "tail with numeric offset only",
			command: "tail -100 /var/log/syslog",
		},
		{
			name:         "tail with follow flag",
			command:      "tail -f -100 log.txt",
			wantBlocked:  true,
			wantContains: []string{"tail"},
		},
		{
			name:    "cat producing a heredoc",
			command: "cat <<EOF\nhello\nEOF",
		},
		{
			name:         "awk inside substitution",
			command:      "echo $(awk '{print $1}' data.txt)",
			wantBlocked:  true,
			wantContains: []string{"awk"},
		},
		{
			name:    "clean command",
			command: "go version",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violation := evaluateFileOperationCommands(newRuleContext(newBashEvent(t, tc.command), "/work"))
			if !tc.wantBlocked {
				assert.Nil(t, violation)
				return
			}
			require.NotNil(t, violation)
			for _, want := range tc.wantContains {
				assert.Contains(t, violation.Message, want)
			}
		})
	}
}

func TestEvaluatePipeToFilter(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		wantBlocked bool
		wantFilter  string
	}{
		{name: "pipe to grep", command: "ps aux | grep node", wantBlocked: true, wantFilter: "grep"},
		{name: "pipe to head", command: "ls -la | head -5", wantBlocked: true, wantFilter: "head"},
		{name: "pipe to non-filter", command: "ls | xargs rm"},
		{name: "no pipe", command: "grep -r pattern ."},
		{name: "pipe inside substitution", command: "echo $(ls | wc -l)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violation := evaluatePipeToFilter(newRuleContext(newBashEvent(t, tc.command), "/work"))
			if !tc.wantBlocked {
				assert.Nil(t, violation)
			} else {
				require.NotNil(t, violation)
				assert.Contains(t, violation.Message, "Piping output to "+tc.wantFilter)
			}
		})
	}
}

func TestEvaluateFindExec(t *testing.T) {
	tests := []struct {
		name         string
		command      string
		wantBlocked  bool
		wantContains []string
	}{
		{
			name:         "find exec grep",
			command:      `find . -name "*.go" -exec grep -l pattern {} \;`,
			wantBlocked:  true,
			wantContains: []string{"find -exec grep", "rg"},
		},
		{
			name:         "find exec other command",
			command:      `find . -name "*.tmp" -exec chmod 644 {} \;`,
			wantBlocked:  true,
			wantContains: []string{"find -exec is not allowed"},
		},
		{
			name:         "find execdir",
			command:      `find . -type f -execdir stat {} \;`,
			wantBlocked:  true,
			wantContains: []string{"find -exec is not allowed"},
		},
		{
			name:    "plain find",
			command: `find . -name "*.go"`,
		},
		{
			name:    "exec on another command",
			command: "mytool -exec something",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violation := evaluateFindExec(newRuleContext(newBashEvent(t, tc.command), "/work"))
			if !tc.wantBlocked {
				assert.Nil(t, violation)
				return
			}
			require.NotNil(t, violation)
			for _, want := range tc.wantContains {
				assert.Contains(t, violation.Message, want)
			}
		})
	}
}

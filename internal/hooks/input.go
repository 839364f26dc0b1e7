package hooks

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToolEvent represents one tool invocation reported by Claude Code.
type ToolEvent struct {
	SessionID      string          `json:"session_id"`
	TranscriptPath string          `json:"transcript_path"`
	Cwd            string          `json:"cwd"`
	HookEventName  string          `json:"hook_event_name"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	parsed         map[string]interface{}
}

// ParseToolEvent reads and parses a tool event JSON from a reader.
// A tool_input payload that is not a JSON object is kept raw: argument
// lookups on it report not-found, and schema validation rejects it for
// recognized tools.
func ParseToolEvent(reader io.Reader) (*ToolEvent, error) {
	var event ToolEvent
	if err := json.NewDecoder(reader).Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if event.ToolName == "" {
		return nil, fmt.Errorf("tool_name is required")
	}

	if len(event.ToolInput) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(event.ToolInput, &parsed); err == nil {
			event.parsed = parsed
		}
	}

	return &event, nil
}

// GetStringArg retrieves a string argument from the tool input.
// Returns the value and true if found, empty string and false if not found.
func (t *ToolEvent) GetStringArg(name string) (string, bool) {
	if t.parsed == nil {
		return "", false
	}

	value, ok := t.parsed[name]
	if !ok {
		return "", false
	}

	strValue, ok := value.(string)
	if !ok {
		return "", false
	}

	return strValue, true
}

// GetBoolArg retrieves a boolean argument from the tool input.
// Returns the value and true if found, false and false if not found.
func (t *ToolEvent) GetBoolArg(name string) (bool, bool) {
	if t.parsed == nil {
		return false, false
	}

	value, ok := t.parsed[name]
	if !ok {
		return false, false
	}

	boolValue, ok := value.(bool)
	if !ok {
		return false, false
	}

	return boolValue, true
}

package hooks

import (
	"encoding/json"
	"fmt"
)

type fieldKind int

const (
	stringField fieldKind = iota
	boolField
	numberField
	arrayField
)

type schemaField struct {
	name string
	kind fieldKind
}

// toolSchema describes the accepted tool_input shape for one tool.
// Unknown fields are ignored so that new optional fields in the agent
// payload do not break validation.
type toolSchema struct {
	required []schemaField
	optional []schemaField
}

// toolSchemas is the closed set of recognized tools. Events for tools
// outside this set are allowed without validation.
var toolSchemas = map[string]toolSchema{
	ToolBash: {
		required: []schemaField{{"command", stringField}},
		optional: []schemaField{
			{"description", stringField},
			{"timeout", numberField},
			{"run_in_background", boolField},
		},
	},
	"Edit": {
		required: []schemaField{
			{"file_path", stringField},
			{"old_string", stringField},
			{"new_string", stringField},
		},
		optional: []schemaField{{"replace_all", boolField}},
	},
	"MultiEdit": {
		required: []schemaField{
			{"file_path", stringField},
			{"edits", arrayField},
		},
	},
	"Write": {
		required: []schemaField{
			{"file_path", stringField},
			{"content", stringField},
		},
	},
	"Read": {
		required: []schemaField{{"file_path", stringField}},
		optional: []schemaField{
			{"offset", numberField},
			{"limit", numberField},
		},
	},
	"Grep": {
		required: []schemaField{{"pattern", stringField}},
		optional: []schemaField{
			{"path", stringField},
			{"glob", stringField},
			{"type", stringField},
			{"output_mode", stringField},
			{"multiline", boolField},
		},
	},
	"Glob": {
		required: []schemaField{{"pattern", stringField}},
		optional: []schemaField{{"path", stringField}},
	},
	"LS": {
		required: []schemaField{{"path", stringField}},
		optional: []schemaField{{"ignore", arrayField}},
	},
	ToolWebSearch: {
		required: []schemaField{{"query", stringField}},
		optional: []schemaField{
			{"allowed_domains", arrayField},
			{"blocked_domains", arrayField},
		},
	},
	"WebFetch": {
		required: []schemaField{
			{"url", stringField},
			{"prompt", stringField},
		},
	},
	"NotebookRead": {
		required: []schemaField{{"notebook_path", stringField}},
		optional: []schemaField{{"cell_id", stringField}},
	},
	"NotebookEdit": {
		required: []schemaField{
			{"notebook_path", stringField},
			{"new_source", stringField},
		},
		optional: []schemaField{
			{"cell_id", stringField},
			{"cell_type", stringField},
			{"edit_mode", stringField},
		},
	},
	"BashOutput": {
		required: []schemaField{{"bash_id", stringField}},
		optional: []schemaField{{"filter", stringField}},
	},
	"KillBash": {
		required: []schemaField{{"shell_id", stringField}},
	},
	"ExitPlanMode": {
		optional: []schemaField{{"plan", stringField}},
	},
}

// ValidateToolInput checks a tool_input payload against the schema for the
// named tool. Returns whether the tool is recognized, and a non-nil error
// when a recognized tool's payload does not match its schema.
func ValidateToolInput(toolName string, raw json.RawMessage) (bool, error) {
	schema, ok := toolSchemas[toolName]
	if !ok {
		return false, nil
	}

	var fields map[string]json.RawMessage
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return true, fmt.Errorf("%s tool_input is not an object: %w", toolName, err)
		}
	}

	for _, field := range schema.required {
		value, ok := fields[field.name]
		if !ok {
			return true, fmt.Errorf("%s tool_input requires %s", toolName, field.name)
		}
		if err := checkFieldKind(value, field.kind); err != nil {
			return true, fmt.Errorf("%s tool_input field %s: %w", toolName, field.name, err)
		}
	}
	for _, field := range schema.optional {
		value, ok := fields[field.name]
		if !ok {
			continue
		}
		if err := checkFieldKind(value, field.kind); err != nil {
			return true, fmt.Errorf("%s tool_input field %s: %w", toolName, field.name, err)
		}
	}

	return true, nil
}

func checkFieldKind(raw json.RawMessage, kind fieldKind) error {
	switch kind {
	case stringField:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("expected a string")
		}
	case boolField:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("expected a boolean")
		}
	case numberField:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("expected a number")
		}
	case arrayField:
		var v []json.RawMessage
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("expected an array")
		}
	}
	return nil
}

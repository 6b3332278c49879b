package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/bridge"
)

// parseFieldValues turns repeated name=value flags into a typed result,
// coercing each value to the type its field declares. Unknown field
// names and values that don't parse are rejected up front so the server
// never sees a malformed completion.
func parseFieldValues(fields []bridge.UserTaskField, raw []string) (bridge.UserTaskResult, error) {
	byName := make(map[string]bridge.UserTaskField, len(fields))
	for _, field := range fields {
		byName[field.Name] = field
	}

	results := make(bridge.UserTaskResult, len(raw))
	for _, entry := range raw {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid field %q, expected name=value", entry)
		}

		field, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown field %q for this task", name)
		}

		coerced, err := coerceFieldValue(field.Type, value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}

		results[name] = bridge.FieldValue{Type: field.Type, Value: coerced}
	}

	return results, nil
}

// coerceFieldValue parses a raw string into the declared field type.
func coerceFieldValue(fieldType bridge.FieldType, value string) (any, error) {
	switch fieldType {
	case bridge.FieldTypeBoolean:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("expected a boolean, got %q", value)
		}
		return parsed, nil
	case bridge.FieldTypeInteger:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected an integer, got %q", value)
		}
		return parsed, nil
	case bridge.FieldTypeDouble:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("expected a number, got %q", value)
		}
		return parsed, nil
	case bridge.FieldTypeString, bridge.FieldTypeUnrecognized:
		return value, nil
	default:
		return value, nil
	}
}

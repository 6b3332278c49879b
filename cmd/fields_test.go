package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/bridge"
)

func TestParseFieldValues(t *testing.T) {
	fields := []bridge.UserTaskField{
		{Name: "approved", Type: bridge.FieldTypeBoolean, Required: true},
		{Name: "amount", Type: bridge.FieldTypeDouble},
		{Name: "count", Type: bridge.FieldTypeInteger},
		{Name: "comment", Type: bridge.FieldTypeString},
	}

	t.Run("coerces values to declared types", func(t *testing.T) {
		results, err := parseFieldValues(fields, []string{
			"approved=true",
			"amount=12.5",
			"count=3",
			"comment=fine by me",
		})
		require.NoError(t, err)

		assert.Equal(t, bridge.FieldValue{Type: bridge.FieldTypeBoolean, Value: true}, results["approved"])
		assert.Equal(t, bridge.FieldValue{Type: bridge.FieldTypeDouble, Value: 12.5}, results["amount"])
		assert.Equal(t, bridge.FieldValue{Type: bridge.FieldTypeInteger, Value: int64(3)}, results["count"])
		assert.Equal(t, bridge.FieldValue{Type: bridge.FieldTypeString, Value: "fine by me"}, results["comment"])
	})

	t.Run("value may contain equals signs", func(t *testing.T) {
		results, err := parseFieldValues(fields, []string{"comment=a=b=c"})
		require.NoError(t, err)
		assert.Equal(t, "a=b=c", results["comment"].Value)
	})

	tests := []struct {
		name string
		raw  []string
	}{
		{"missing separator", []string{"approved"}},
		{"empty name", []string{"=true"}},
		{"unknown field", []string{"nope=1"}},
		{"bad boolean", []string{"approved=maybe"}},
		{"bad integer", []string{"count=three"}},
		{"bad double", []string{"amount=lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFieldValues(fields, tt.raw)
			require.Error(t, err)
		})
	}
}

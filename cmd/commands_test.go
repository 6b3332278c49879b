package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	tests := []struct {
		name    string
		path    []string
		wantUse string
	}{
		{"comment add", []string{"comment", "add"}, "add <wf-run-id> <task-id> <text>"},
		{"comment edit", []string{"comment", "edit"}, "edit <wf-run-id> <task-id> <comment-id> <text>"},
		{"comment delete", []string{"comment", "delete"}, "delete <wf-run-id> <task-id> <comment-id>"},
		{"admin cancel", []string{"admin", "cancel"}, "cancel <wf-run-id> <task-id>"},
		{"admin complete", []string{"admin", "complete"}, "complete <wf-run-id> <task-id>"},
		{"admin assign", []string{"admin", "assign"}, "assign <wf-run-id> <task-id>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUse, cmd.Use)
		})
	}
}

func TestAdminCompleteHasFieldFlag(t *testing.T) {
	flag := adminCompleteCmd.Flags().Lookup("field")
	require.NotNil(t, flag)
	assert.Equal(t, "stringArray", flag.Value.Type())
}

package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlehorse-enterprises/lh-user-tasks-bridge-sub000/bridge"
)

func TestCompile(t *testing.T) {
	t.Run("valid expression", func(t *testing.T) {
		f, err := Compile(`status == "ASSIGNED"`)
		require.NoError(t, err)
		assert.Equal(t, `status == "ASSIGNED"`, f.String())
	})

	t.Run("empty expression", func(t *testing.T) {
		_, err := Compile("   ")
		require.Error(t, err)

		var compErr *CompilationError
		require.ErrorAs(t, err, &compErr)
		assert.Equal(t, "empty expression", compErr.Reason)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := Compile(`status == `)
		require.Error(t, err)

		var compErr *CompilationError
		require.ErrorAs(t, err, &compErr)
	})
}

func TestMatches(t *testing.T) {
	scheduled := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	task := bridge.UserTask{
		ID:              "t1",
		WfRunID:         "w1",
		UserTaskDefName: "approve-invoice",
		Status:          bridge.StatusAssigned,
		User:            &bridge.User{ID: "u-1", Username: "ada", Valid: true},
		Notes:           "urgent",
		ScheduledTime:   scheduled,
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"match on status", `status == "ASSIGNED"`, true},
		{"no match on status", `status == "DONE"`, false},
		{"match on type", `type == "approve-invoice"`, true},
		{"match on user", `user == "ada"`, true},
		{"match on assigned", `assigned`, true},
		{"match on notes substring", `notes contains "urg"`, true},
		{"match on scheduled date", `scheduled < date("2024-04-01")`, true},
		{"combined", `status == "ASSIGNED" and user == "ada"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Matches(task)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unassigned task has empty user and group", func(t *testing.T) {
		f, err := Compile(`user == "" and group == "" and not assigned`)
		require.NoError(t, err)

		got, err := f.Matches(bridge.UserTask{ID: "t2", Status: bridge.StatusUnassigned})
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestApply(t *testing.T) {
	tasks := []bridge.UserTask{
		{ID: "t1", Status: bridge.StatusAssigned},
		{ID: "t2", Status: bridge.StatusUnassigned},
		{ID: "t3", Status: bridge.StatusAssigned},
	}

	f, err := Compile(`status == "ASSIGNED"`)
	require.NoError(t, err)

	matched, err := f.Apply(tasks)
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "t1", matched[0].ID)
	assert.Equal(t, "t3", matched[1].ID)
}

package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAssignees(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/tenant/admin/users/u-1":
			json.NewEncoder(w).Encode(User{ID: "u-1", Username: "ada", Valid: true})
		case r.URL.Path == "/tenant/admin/groups/g-1":
			json.NewEncoder(w).Encode(UserGroup{ID: "g-1", Name: "finance", Valid: true})
		case strings.HasPrefix(r.URL.Path, "/tenant/admin/users/"):
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "no such user"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "no such group"})
		}
	})
	defer server.Close()

	client := newTestClient(t, server)

	tasks := []UserTask{
		{ID: "t1", WfRunID: "w1", User: &User{ID: "u-1", Valid: true}},
		{ID: "t2", WfRunID: "w1", User: &User{ID: "u-gone", Valid: true}},
		{ID: "t3", WfRunID: "w2", UserGroup: &UserGroup{ID: "g-1", Valid: true}},
		{ID: "t4", WfRunID: "w2"},
	}

	require.NoError(t, client.ResolveAssignees(context.Background(), tasks))

	assert.True(t, tasks[0].User.Valid)
	assert.Equal(t, "ada", tasks[0].User.Username)

	assert.False(t, tasks[1].User.Valid)

	assert.True(t, tasks[2].UserGroup.Valid)
	assert.Equal(t, "finance", tasks[2].UserGroup.Name)

	assert.Nil(t, tasks[3].User)
	assert.Nil(t, tasks[3].UserGroup)
}

func TestResolveAssigneesEmpty(t *testing.T) {
	server := newTestServer(t, nil)
	defer server.Close()

	client := newTestClient(t, server)
	assert.NoError(t, client.ResolveAssignees(context.Background(), nil))
}

package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder(t *testing.T) {
	t.Run("unset values are dropped", func(t *testing.T) {
		q := &query{}
		q.addInt("limit", 0)
		q.addString("status", "")
		q.addString("bookmark", "")
		q.addTime("earliest_start_date", nil)
		assert.Equal(t, "", q.encode())
	})

	t.Run("zero time is dropped", func(t *testing.T) {
		q := &query{}
		zero := time.Time{}
		q.addTime("earliest_start_date", &zero)
		assert.Equal(t, "", q.encode())
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		q := &query{}
		q.addString("status", "ASSIGNED")
		q.addInt("limit", 10)
		q.addString("type", "approve-invoice")
		assert.Equal(t, "status=ASSIGNED&limit=10&type=approve-invoice", q.encode())
	})

	t.Run("values are percent-encoded", func(t *testing.T) {
		q := &query{}
		q.addString("bookmark", "a b/c&d")
		assert.Equal(t, "bookmark=a+b%2Fc%26d", q.encode())
	})

	t.Run("times are RFC 3339", func(t *testing.T) {
		q := &query{}
		ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		q.addTime("latest_start_date", &ts)
		assert.Equal(t, "latest_start_date=2024-05-01T12%3A30%3A00Z", q.encode())
	})
}

func TestListUserTasksRequestEncode(t *testing.T) {
	tests := []struct {
		name string
		req  ListUserTasksRequest
		want string
	}{
		{
			name: "empty request",
			req:  ListUserTasksRequest{},
			want: "",
		},
		{
			name: "limit and status",
			req:  ListUserTasksRequest{Limit: 10, Status: StatusAssigned},
			want: "limit=10&status=ASSIGNED",
		},
		{
			name: "all fields",
			req: ListUserTasksRequest{
				Limit:    25,
				Bookmark: "abc123",
				Status:   StatusUnassigned,
				Type:     "approve-invoice",
			},
			want: "limit=25&status=UNASSIGNED&type=approve-invoice&bookmark=abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.encode())
		})
	}
}

func TestAdminListUserTasksRequestEncode(t *testing.T) {
	earliest := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	latest := time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC)

	req := AdminListUserTasksRequest{
		Limit:             50,
		Status:            StatusDone,
		Type:              "approve-invoice",
		UserID:            "u-1",
		UserGroupID:       "g-1",
		EarliestStartDate: &earliest,
		LatestStartDate:   &latest,
		Bookmark:          "next",
	}

	want := "limit=50&status=DONE&type=approve-invoice&user_id=u-1&user_group_id=g-1" +
		"&earliest_start_date=2024-01-01T00%3A00%3A00Z" +
		"&latest_start_date=2024-06-30T23%3A00%3A00Z" +
		"&bookmark=next"
	assert.Equal(t, want, req.encode())
}

package bridge

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// query builds a URL query string preserving the order in which keys are
// added. Unset values (empty strings, zero ints, nil times) are dropped
// rather than sent as empty parameters. url.Values is not used because
// its Encode sorts keys.
type query struct {
	pairs []string
}

// addString appends key=value, skipping empty values.
func (q *query) addString(key, value string) {
	if value == "" {
		return
	}
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

// addInt appends key=value, skipping non-positive values.
func (q *query) addInt(key string, value int) {
	if value <= 0 {
		return
	}
	q.pairs = append(q.pairs, url.QueryEscape(key)+"="+strconv.Itoa(value))
}

// addTime appends key=value in RFC 3339, skipping nil and zero times.
func (q *query) addTime(key string, value *time.Time) {
	if value == nil || value.IsZero() {
		return
	}
	q.addString(key, value.Format(time.RFC3339))
}

// encode returns the query string without a leading "?". Empty when no
// parameters were added.
func (q *query) encode() string {
	return strings.Join(q.pairs, "&")
}

// ListUserTasksRequest filters the caller's own task list.
type ListUserTasksRequest struct {
	Limit    int
	Bookmark string
	Status   UserTaskStatus
	Type     string
}

func (r *ListUserTasksRequest) encode() string {
	q := &query{}
	q.addInt("limit", r.Limit)
	q.addString("status", string(r.Status))
	q.addString("type", r.Type)
	q.addString("bookmark", r.Bookmark)
	return q.encode()
}

// AdminListUserTasksRequest filters the tenant-wide task list. Admin only.
type AdminListUserTasksRequest struct {
	Limit             int
	Bookmark          string
	Status            UserTaskStatus
	Type              string
	UserID            string
	UserGroupID       string
	EarliestStartDate *time.Time
	LatestStartDate   *time.Time
}

func (r *AdminListUserTasksRequest) encode() string {
	q := &query{}
	q.addInt("limit", r.Limit)
	q.addString("status", string(r.Status))
	q.addString("type", r.Type)
	q.addString("user_id", r.UserID)
	q.addString("user_group_id", r.UserGroupID)
	q.addTime("earliest_start_date", r.EarliestStartDate)
	q.addTime("latest_start_date", r.LatestStartDate)
	q.addString("bookmark", r.Bookmark)
	return q.encode()
}

// ListUserTaskDefsRequest pages through task definition names. Admin only.
type ListUserTaskDefsRequest struct {
	Limit    int
	Bookmark string
}

func (r *ListUserTaskDefsRequest) encode() string {
	q := &query{}
	q.addInt("limit", r.Limit)
	q.addString("bookmark", r.Bookmark)
	return q.encode()
}

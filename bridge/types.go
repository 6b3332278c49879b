package bridge

import (
	"fmt"
	"time"
)

// UserTaskStatus represents the lifecycle state of a user task.
type UserTaskStatus string

const (
	// StatusUnassigned indicates the task has no assignee yet.
	StatusUnassigned UserTaskStatus = "UNASSIGNED"
	// StatusAssigned indicates the task is assigned to a user or group.
	StatusAssigned UserTaskStatus = "ASSIGNED"
	// StatusDone indicates the task was completed. Terminal.
	StatusDone UserTaskStatus = "DONE"
	// StatusCancelled indicates the task was cancelled. Terminal.
	StatusCancelled UserTaskStatus = "CANCELLED"
)

// IsTerminal reports whether the status is DONE or CANCELLED.
// Terminal tasks are immutable; the server rejects further modifications.
func (s UserTaskStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// FieldType tags the value type of a task definition field.
type FieldType string

const (
	// FieldTypeDouble represents a floating point field
	FieldTypeDouble FieldType = "DOUBLE"
	// FieldTypeBoolean represents a boolean field
	FieldTypeBoolean FieldType = "BOOLEAN"
	// FieldTypeString represents a string field
	FieldTypeString FieldType = "STRING"
	// FieldTypeInteger represents an integer field
	FieldTypeInteger FieldType = "INTEGER"
	// FieldTypeUnrecognized represents a field type unknown to this client
	FieldTypeUnrecognized FieldType = "UNRECOGNIZED"
)

// User is an identity-provider user record as the bridge reports it.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	// Valid is false when a task still references this user but the
	// identity provider can no longer resolve it.
	Valid bool `json:"valid"`
}

// DisplayName returns the best available human-readable name for the user.
func (u *User) DisplayName() string {
	if u.FirstName != "" || u.LastName != "" {
		if u.FirstName != "" && u.LastName != "" {
			return u.FirstName + " " + u.LastName
		}
		return u.FirstName + u.LastName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// UserGroup is an identity-provider group record.
type UserGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Valid bool   `json:"valid"`
}

// UserTask is a unit of human work surfaced by the workflow engine.
// The pair (WfRunID, ID) is the only valid addressing key for task
// operations; ID alone is ambiguous across workflow runs.
type UserTask struct {
	ID              string         `json:"id"`
	WfRunID         string         `json:"wfRunId"`
	UserTaskDefName string         `json:"userTaskDefName"`
	Status          UserTaskStatus `json:"status"`
	User            *User          `json:"user,omitempty"`
	UserGroup       *UserGroup     `json:"userGroup,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	ScheduledTime   time.Time      `json:"scheduledTime"`
}

// TypeName returns the task definition name (the task's "type").
func (t *UserTask) TypeName() string {
	return t.UserTaskDefName
}

// UserTaskField describes one input field of a task definition.
type UserTaskField struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName,omitempty"`
	Description string    `json:"description,omitempty"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
}

// UserTaskDef is a task definition: a named set of typed fields.
type UserTaskDef struct {
	Name   string          `json:"name"`
	Fields []UserTaskField `json:"fields,omitempty"`
}

// ValidateResult checks a completion result against the definition,
// returning an error naming the first required field that is missing.
func (d *UserTaskDef) ValidateResult(result map[string]FieldValue) error {
	for _, field := range d.Fields {
		if !field.Required {
			continue
		}
		if _, ok := result[field.Name]; !ok {
			return fmt.Errorf("required field %q is missing from result", field.Name)
		}
	}
	return nil
}

// FieldValue is one submitted value in a task completion, tagged with its
// declared type so the server can coerce it.
type FieldValue struct {
	Type  FieldType `json:"type"`
	Value any       `json:"value"`
}

// UserTaskResult maps field names to submitted values.
type UserTaskResult map[string]FieldValue

// AuditEvent is one entry in a task's admin-visible history. Exactly one
// of the detail pointers is set, matching the event type.
type AuditEvent struct {
	Time          time.Time           `json:"time"`
	Executed      *TaskExecutedEvent  `json:"executed,omitempty"`
	Assigned      *TaskAssignedEvent  `json:"assigned,omitempty"`
	Cancelled     *TaskCancelledEvent `json:"cancelled,omitempty"`
	Commented     *TaskCommentedEvent `json:"commented,omitempty"`
	CommentEdited *CommentEditedEvent `json:"commentEdited,omitempty"`
}

// TaskExecutedEvent records a task completion.
type TaskExecutedEvent struct {
	UserID string `json:"userId,omitempty"`
}

// TaskAssignedEvent records an assignment change.
type TaskAssignedEvent struct {
	OldUserID      string `json:"oldUserId,omitempty"`
	OldUserGroupID string `json:"oldUserGroupId,omitempty"`
	NewUserID      string `json:"newUserId,omitempty"`
	NewUserGroupID string `json:"newUserGroupId,omitempty"`
}

// TaskCancelledEvent records a cancellation.
type TaskCancelledEvent struct {
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message,omitempty"`
}

// TaskCommentedEvent records a new comment on the task.
type TaskCommentedEvent struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId,omitempty"`
	Comment   string `json:"comment"`
}

// CommentEditedEvent records an edit to an existing comment.
type CommentEditedEvent struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId,omitempty"`
	Comment   string `json:"comment"`
}

// UserTaskDetail is the admin view of a single task, including its
// field definitions, submitted results and audit history.
type UserTaskDetail struct {
	UserTask
	Fields  []UserTaskField `json:"fields,omitempty"`
	Results UserTaskResult  `json:"results,omitempty"`
	Events  []AuditEvent    `json:"events,omitempty"`
}

// ListUserTasksResponse is a bookmark-paginated page of tasks. A nil
// Bookmark means there are no further pages.
type ListUserTasksResponse struct {
	UserTasks []UserTask `json:"userTasks"`
	Bookmark  *string    `json:"bookmark,omitempty"`
}

// HasMorePages reports whether another page can be requested.
func (r *ListUserTasksResponse) HasMorePages() bool {
	return r.Bookmark != nil && *r.Bookmark != ""
}

// ListUserTaskDefsResponse is a bookmark-paginated page of task
// definition names.
type ListUserTaskDefsResponse struct {
	UserTaskDefNames []string `json:"userTaskDefNames"`
	Bookmark         *string  `json:"bookmark,omitempty"`
}

// HasMorePages reports whether another page can be requested.
func (r *ListUserTaskDefsResponse) HasMorePages() bool {
	return r.Bookmark != nil && *r.Bookmark != ""
}

// ListUsersResponse is the bridge's view of identity-provider users.
type ListUsersResponse struct {
	Users []User `json:"users"`
}

// ListUserGroupsResponse is the bridge's view of identity-provider groups.
type ListUserGroupsResponse struct {
	Groups []UserGroup `json:"groups"`
}

// InitResponse carries the public configuration discovery payload served
// by the tenant's /init endpoint. The console uses it to point users at
// the right identity-provider realm; the client only checks reachability.
type InitResponse struct {
	AuthServerURL string `json:"authServerUrl,omitempty"`
	Realm         string `json:"realm,omitempty"`
	ClientID      string `json:"clientId,omitempty"`
	VendorName    string `json:"vendor,omitempty"`
}

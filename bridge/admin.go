package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// adminTaskPath builds the admin-scoped address of one task.
func adminTaskPath(wfRunID, id string) string {
	return fmt.Sprintf("/admin/tasks/%s/%s", url.PathEscape(wfRunID), url.PathEscape(id))
}

// AdminListUserTasks lists tasks across the whole tenant regardless of
// assignment, with richer filters than the user-scoped listing.
func (c *Client) AdminListUserTasks(ctx context.Context, req AdminListUserTasksRequest) (*ListUserTasksResponse, error) {
	var page ListUserTasksResponse
	if err := c.doRequest(ctx, http.MethodGet, "/admin/tasks", req.encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	c.logger.Debug().
		Int("count", len(page.UserTasks)).
		Bool("more", page.HasMorePages()).
		Msg("Retrieved tenant tasks")

	return &page, nil
}

// AdminGetUserTask fetches any task in the tenant, including its field
// definitions, submitted results and full audit history.
func (c *Client) AdminGetUserTask(ctx context.Context, wfRunID, id string) (*UserTaskDetail, error) {
	var detail UserTaskDetail
	if err := c.doRequest(ctx, http.MethodGet, adminTaskPath(wfRunID, id), "", nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get task detail: %w", err)
	}
	return &detail, nil
}

// assignUserTaskRequest is the wire body of an assignment. Exactly one
// of the two fields should be set.
type assignUserTaskRequest struct {
	UserID      string `json:"userId,omitempty"`
	UserGroupID string `json:"userGroupId,omitempty"`
}

// AdminAssignUserTask assigns any task to a user or a group, overriding
// an existing assignment. Exactly one of userID and userGroupID must be
// non-empty.
func (c *Client) AdminAssignUserTask(ctx context.Context, wfRunID, id, userID, userGroupID string) error {
	if (userID == "") == (userGroupID == "") {
		return fmt.Errorf("exactly one of user ID and group ID must be set")
	}

	body := assignUserTaskRequest{UserID: userID, UserGroupID: userGroupID}
	if err := c.doRequest(ctx, http.MethodPost, adminTaskPath(wfRunID, id)+"/assign", "", body, nil); err != nil {
		return fmt.Errorf("failed to assign user task: %w", err)
	}
	return nil
}

// AdminCancelUserTask cancels any task in the tenant regardless of
// assignment.
func (c *Client) AdminCancelUserTask(ctx context.Context, wfRunID, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, adminTaskPath(wfRunID, id)+"/cancel", "", nil, nil); err != nil {
		return fmt.Errorf("failed to cancel user task: %w", err)
	}
	return nil
}

// AdminCompleteUserTask completes any task in the tenant on behalf of
// its assignee.
func (c *Client) AdminCompleteUserTask(ctx context.Context, wfRunID, id string, results UserTaskResult) error {
	body := completeUserTaskRequest{Results: results}
	if err := c.doRequest(ctx, http.MethodPost, adminTaskPath(wfRunID, id)+"/complete", "", body, nil); err != nil {
		return fmt.Errorf("failed to complete user task: %w", err)
	}
	return nil
}

// ListUserTaskDefs pages through the tenant's task definition names.
func (c *Client) ListUserTaskDefs(ctx context.Context, req ListUserTaskDefsRequest) (*ListUserTaskDefsResponse, error) {
	var page ListUserTaskDefsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/admin/userTaskDefs", req.encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list task definitions: %w", err)
	}
	return &page, nil
}

// GetUserTaskDef fetches one task definition with its field schema.
func (c *Client) GetUserTaskDef(ctx context.Context, name string) (*UserTaskDef, error) {
	var def UserTaskDef
	path := "/admin/userTaskDefs/" + url.PathEscape(name)
	if err := c.doRequest(ctx, http.MethodGet, path, "", nil, &def); err != nil {
		return nil, fmt.Errorf("failed to get task definition: %w", err)
	}
	return &def, nil
}

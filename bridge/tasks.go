package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// taskPath builds the canonical address of one task. Both identifiers
// are required: a task id alone is not unique across workflow runs.
func taskPath(wfRunID, id string) string {
	return fmt.Sprintf("/tasks/%s/%s", url.PathEscape(wfRunID), url.PathEscape(id))
}

// ListUserTasks lists tasks assigned to the calling user or their
// groups, one bookmark page at a time.
func (c *Client) ListUserTasks(ctx context.Context, req ListUserTasksRequest) (*ListUserTasksResponse, error) {
	var page ListUserTasksResponse
	if err := c.doRequest(ctx, http.MethodGet, "/tasks", req.encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list user tasks: %w", err)
	}

	c.logger.Debug().
		Int("count", len(page.UserTasks)).
		Bool("more", page.HasMorePages()).
		Msg("Retrieved user tasks")

	return &page, nil
}

// GetUserTask fetches one task visible to the calling user.
func (c *Client) GetUserTask(ctx context.Context, wfRunID, id string) (*UserTaskDetail, error) {
	var task UserTaskDetail
	if err := c.doRequest(ctx, http.MethodGet, taskPath(wfRunID, id), "", nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get user task: %w", err)
	}
	return &task, nil
}

// ClaimUserTask claims an unassigned task for the calling user. Two
// callers racing for the same task surface as an AssignmentError from
// the server; the client does no coordination of its own.
func (c *Client) ClaimUserTask(ctx context.Context, wfRunID, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, taskPath(wfRunID, id)+"/claim", "", nil, nil); err != nil {
		return fmt.Errorf("failed to claim user task: %w", err)
	}
	return nil
}

// CancelUserTask cancels a task assigned to the calling user. Cancelling
// a terminal task yields a TaskStateError.
func (c *Client) CancelUserTask(ctx context.Context, wfRunID, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, taskPath(wfRunID, id)+"/cancel", "", nil, nil); err != nil {
		return fmt.Errorf("failed to cancel user task: %w", err)
	}
	return nil
}

// completeUserTaskRequest is the wire body of a task completion.
type completeUserTaskRequest struct {
	Results UserTaskResult `json:"results"`
}

// CompleteUserTask submits the task's result fields and marks it DONE.
// Required fields the server finds missing come back as a
// ValidationError.
func (c *Client) CompleteUserTask(ctx context.Context, wfRunID, id string, results UserTaskResult) error {
	body := completeUserTaskRequest{Results: results}
	if err := c.doRequest(ctx, http.MethodPost, taskPath(wfRunID, id)+"/complete", "", body, nil); err != nil {
		return fmt.Errorf("failed to complete user task: %w", err)
	}
	return nil
}

// commentRequest is the wire body for posting or editing a comment.
type commentRequest struct {
	Comment string `json:"comment"`
}

// PostTaskComment attaches a comment to a task the caller can see. The
// comment shows up in the task's audit history.
func (c *Client) PostTaskComment(ctx context.Context, wfRunID, id, comment string) error {
	body := commentRequest{Comment: comment}
	if err := c.doRequest(ctx, http.MethodPost, taskPath(wfRunID, id)+"/comment", "", body, nil); err != nil {
		return fmt.Errorf("failed to post task comment: %w", err)
	}
	return nil
}

// EditTaskComment replaces the text of an existing comment.
func (c *Client) EditTaskComment(ctx context.Context, wfRunID, id, commentID, comment string) error {
	body := commentRequest{Comment: comment}
	path := taskPath(wfRunID, id) + "/comment/" + url.PathEscape(commentID)
	if err := c.doRequest(ctx, http.MethodPut, path, "", body, nil); err != nil {
		return fmt.Errorf("failed to edit task comment: %w", err)
	}
	return nil
}

// DeleteTaskComment removes a comment from a task.
func (c *Client) DeleteTaskComment(ctx context.Context, wfRunID, id, commentID string) error {
	path := taskPath(wfRunID, id) + "/comment/" + url.PathEscape(commentID)
	if err := c.doRequest(ctx, http.MethodDelete, path, "", nil, nil); err != nil {
		return fmt.Errorf("failed to delete task comment: %w", err)
	}
	return nil
}

package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// groupPath builds the admin-scoped address of one identity-provider group.
func groupPath(id string) string {
	return "/admin/groups/" + url.PathEscape(id)
}

// ListUserGroups lists the tenant's identity-provider groups.
func (c *Client) ListUserGroups(ctx context.Context) ([]UserGroup, error) {
	var resp ListUserGroupsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/admin/groups", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	c.logger.Debug().Int("count", len(resp.Groups)).Msg("Retrieved groups")
	return resp.Groups, nil
}

// GetUserGroup fetches one identity-provider group by id.
func (c *Client) GetUserGroup(ctx context.Context, id string) (*UserGroup, error) {
	var group UserGroup
	if err := c.doRequest(ctx, http.MethodGet, groupPath(id), "", nil, &group); err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &group, nil
}

// createUserGroupRequest is the wire body for group creation and rename.
type createUserGroupRequest struct {
	Name string `json:"name"`
}

// CreateUserGroup creates a new group and returns the server's record
// of it.
func (c *Client) CreateUserGroup(ctx context.Context, name string) (*UserGroup, error) {
	var group UserGroup
	body := createUserGroupRequest{Name: name}
	if err := c.doRequest(ctx, http.MethodPost, "/admin/groups", "", body, &group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// RenameUserGroup changes a group's display name.
func (c *Client) RenameUserGroup(ctx context.Context, id, name string) error {
	body := createUserGroupRequest{Name: name}
	if err := c.doRequest(ctx, http.MethodPut, groupPath(id), "", body, nil); err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}
	return nil
}

// DeleteUserGroup deletes a group. Tasks still referencing the group
// keep the reference with Valid reported false on later reads.
func (c *Client) DeleteUserGroup(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, groupPath(id), "", nil, nil); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// AddGroupMember adds a user to a group.
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID string) error {
	path := groupPath(groupID) + "/members/" + url.PathEscape(userID)
	if err := c.doRequest(ctx, http.MethodPut, path, "", nil, nil); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

// RemoveGroupMember removes a user from a group.
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	path := groupPath(groupID) + "/members/" + url.PathEscape(userID)
	if err := c.doRequest(ctx, http.MethodDelete, path, "", nil, nil); err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}
	return nil
}

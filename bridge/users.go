package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// userPath builds the admin-scoped address of one identity-provider user.
func userPath(id string) string {
	return "/admin/users/" + url.PathEscape(id)
}

// ListUsers lists the tenant's identity-provider users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp ListUsersResponse
	if err := c.doRequest(ctx, http.MethodGet, "/admin/users", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	c.logger.Debug().Int("count", len(resp.Users)).Msg("Retrieved users")
	return resp.Users, nil
}

// GetUser fetches one identity-provider user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, userPath(id), "", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GrantAdminRole grants the bridge admin role to a user.
func (c *Client) GrantAdminRole(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, userPath(id)+"/roles/admin", "", nil, nil); err != nil {
		return fmt.Errorf("failed to grant admin role: %w", err)
	}
	return nil
}

// RevokeAdminRole revokes the bridge admin role from a user.
func (c *Client) RevokeAdminRole(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, userPath(id)+"/roles/admin", "", nil, nil); err != nil {
		return fmt.Errorf("failed to revoke admin role: %w", err)
	}
	return nil
}

package bridge

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// resolveConcurrency bounds the number of in-flight identity lookups
// during assignee resolution.
const resolveConcurrency = 10

// ResolveAssignees refreshes the assigned user and group records on a
// page of tasks concurrently. Assignees the identity provider can no
// longer resolve are marked Valid=false instead of failing the whole
// page; each distinct user or group is fetched once.
func (c *Client) ResolveAssignees(ctx context.Context, tasks []UserTask) error {
	if len(tasks) == 0 {
		return nil
	}

	userIDs := make(map[string]struct{})
	groupIDs := make(map[string]struct{})
	for i := range tasks {
		if tasks[i].User != nil && tasks[i].User.ID != "" {
			userIDs[tasks[i].User.ID] = struct{}{}
		}
		if tasks[i].UserGroup != nil && tasks[i].UserGroup.ID != "" {
			groupIDs[tasks[i].UserGroup.ID] = struct{}{}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)

	var mu sync.Mutex
	users := make(map[string]*User, len(userIDs))
	groups := make(map[string]*UserGroup, len(groupIDs))

	for id := range userIDs {
		id := id
		g.Go(func() error {
			user, err := c.GetUser(ctx, id)
			if err != nil {
				var notFound *NotFoundError
				if errors.As(err, &notFound) {
					c.logger.Warn().
						Str("user_id", id).
						Msg("Assigned user no longer resolvable")
					return nil
				}
				return err
			}

			mu.Lock()
			users[id] = user
			mu.Unlock()
			return nil
		})
	}

	for id := range groupIDs {
		id := id
		g.Go(func() error {
			group, err := c.GetUserGroup(ctx, id)
			if err != nil {
				var notFound *NotFoundError
				if errors.As(err, &notFound) {
					c.logger.Warn().
						Str("user_group_id", id).
						Msg("Assigned group no longer resolvable")
					return nil
				}
				return err
			}

			mu.Lock()
			groups[id] = group
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].User != nil && tasks[i].User.ID != "" {
			if resolved, ok := users[tasks[i].User.ID]; ok {
				tasks[i].User = resolved
			} else {
				tasks[i].User.Valid = false
			}
		}
		if tasks[i].UserGroup != nil && tasks[i].UserGroup.ID != "" {
			if resolved, ok := groups[tasks[i].UserGroup.ID]; ok {
				tasks[i].UserGroup = resolved
			} else {
				tasks[i].UserGroup.Valid = false
			}
		}
	}

	return nil
}

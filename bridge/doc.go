// Package bridge provides a typed client for the User Tasks Bridge REST
// API, the human-task inbox layered on top of the workflow engine.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: authenticated transport scoped to one tenant, with an
//     eager connectivity check at construction
//   - Task, admin, user and group operations as method sets on Client
//   - Types: wire DTOs for tasks, task definitions, users, groups and
//     audit events
//   - Errors: a typed error taxonomy classified from HTTP responses
//
// # Usage
//
// Create a client with the bridge URL, tenant and an OIDC access token:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := bridge.NewClient(ctx,
//		"https://bridge.example.com",
//		"my-tenant",
//		accessToken,
//		logger,
//		bridge.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.ListUserTasks(ctx, bridge.ListUserTasksRequest{
//		Limit:  10,
//		Status: bridge.StatusAssigned,
//	})
//
// List operations use opaque bookmark pagination: pass the Bookmark from
// the previous page until HasMorePages reports false.
//
// # Error Handling
//
// Every non-2xx response is raised as one of the typed errors
// (UnauthorizedError, ForbiddenError, NotFoundError, ValidationError,
// PreconditionFailedError, TaskStateError, AssignmentError), all
// embedding APIError. Callers branch with errors.As:
//
//	var stateErr *bridge.TaskStateError
//	if errors.As(err, &stateErr) {
//		// task already DONE or CANCELLED
//	}
//
// The client never retries and holds no state besides its configuration;
// conflicting operations (such as two concurrent claims) race at the
// server and surface as AssignmentError.
package bridge

package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const unknownErrorMessage = "Unknown error"

// APIError is the base error for every non-2xx bridge response. The
// specific kinds below embed it, so callers can branch with errors.As
// on the kind and still read StatusCode/Message off the base type.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("bridge API error: status %d: %s", e.StatusCode, e.Message)
}

// UnauthorizedError indicates a missing, expired or invalid access token.
type UnauthorizedError struct{ APIError }

// ForbiddenError indicates the caller lacks permission for the operation.
type ForbiddenError struct{ APIError }

// NotFoundError indicates the addressed task, user or group does not exist.
type NotFoundError struct{ APIError }

// ValidationError indicates the server rejected the request payload.
type ValidationError struct{ APIError }

// PreconditionFailedError indicates the task was not in a state that
// permits the operation.
type PreconditionFailedError struct{ APIError }

// TaskStateError indicates an attempt to modify a task that is already
// DONE or CANCELLED. Terminal tasks are immutable.
type TaskStateError struct{ APIError }

// AssignmentError indicates an assignment or claim conflict, typically
// two callers racing for the same task.
type AssignmentError struct{ APIError }

// Unwrap exposes the embedded APIError so errors.As matches the base
// type regardless of kind.
func (e *UnauthorizedError) Unwrap() error       { return &e.APIError }
func (e *ForbiddenError) Unwrap() error          { return &e.APIError }
func (e *NotFoundError) Unwrap() error           { return &e.APIError }
func (e *ValidationError) Unwrap() error         { return &e.APIError }
func (e *PreconditionFailedError) Unwrap() error { return &e.APIError }
func (e *TaskStateError) Unwrap() error          { return &e.APIError }
func (e *AssignmentError) Unwrap() error         { return &e.APIError }

// errorBody is the shape of a JSON error response. Code is a
// machine-readable discriminator newer servers include; Message is
// free text.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// extractError pulls the error code and message out of a response body.
// A JSON body yields its message field (or "Unknown error" when absent);
// a plain-text body is used verbatim. This never fails: a JSON body
// that cannot be parsed degrades to "Unknown error" instead of raising
// a secondary error.
func extractError(contentType string, body []byte) (code, message string) {
	if len(body) == 0 {
		return "", unknownErrorMessage
	}

	if strings.Contains(contentType, "application/json") {
		var parsed errorBody
		if err := json.Unmarshal(body, &parsed); err != nil {
			// A malformed body may have been partially decoded;
			// don't let a half-read code steer classification.
			return "", unknownErrorMessage
		}
		if parsed.Message == "" {
			return parsed.Code, unknownErrorMessage
		}
		return parsed.Code, parsed.Message
	}

	// Some servers report JSON errors without a content type.
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Code, parsed.Message
	}

	return "", string(body)
}

// classify maps a non-2xx response to one typed error. Status code
// decides first; for 403 and 412 a machine-readable code field is
// honored when present, with case-insensitive substring inspection of
// the server message as the documented fallback. The substring match
// ties this function to the server's error wording, so it stays
// isolated here.
func classify(statusCode int, contentType string, body []byte) error {
	code, message := extractError(contentType, body)
	base := APIError{
		StatusCode: statusCode,
		Message:    message,
		Body:       string(body),
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &UnauthorizedError{base}
	case http.StatusForbidden:
		switch code {
		case "TASK_DONE", "TASK_CANCELLED":
			return &TaskStateError{base}
		}
		upper := strings.ToUpper(message)
		if strings.Contains(upper, "DONE") || strings.Contains(upper, "CANCELLED") {
			return &TaskStateError{base}
		}
		return &ForbiddenError{base}
	case http.StatusNotFound:
		return &NotFoundError{base}
	case http.StatusPreconditionFailed:
		if code == "ASSIGNMENT_CONFLICT" {
			return &AssignmentError{base}
		}
		lower := strings.ToLower(message)
		if strings.Contains(lower, "assign") || strings.Contains(lower, "claim") {
			return &AssignmentError{base}
		}
		return &PreconditionFailedError{base}
	case http.StatusBadRequest:
		return &ValidationError{base}
	default:
		return &base
	}
}

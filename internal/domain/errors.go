package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Inventory server errors
	ErrMsgAuthFailed = "authentication with inventory server failed"
	ErrMsgAPIFailed  = "inventory server request failed"

	// Refresh outcomes
	ErrMsgReauthRequired = "re-authentication required"
	ErrMsgUpdateFailed   = "error fetching data"

	// Lookup errors
	ErrMsgItemNotFound     = "item not found"
	ErrMsgLocationNotFound = "location not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Service call errors
	ErrMsgOperationFailed = "operation failed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrAuthFailed means the bridge could not obtain or keep a valid bearer token.
	// Not recoverable without re-authentication or a configuration change.
	ErrAuthFailed = errors.New(ErrMsgAuthFailed)

	// ErrAPIFailed means a transport or server-side failure. Potentially transient.
	ErrAPIFailed = errors.New(ErrMsgAPIFailed)

	// ErrReauthRequired is returned by a refresh pass that failed on credentials.
	ErrReauthRequired = errors.New(ErrMsgReauthRequired)

	// ErrUpdateFailed is returned by a refresh pass that failed fetching data.
	ErrUpdateFailed = errors.New(ErrMsgUpdateFailed)

	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrLocationNotFound = errors.New(ErrMsgLocationNotFound)
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrOperationFailed  = errors.New(ErrMsgOperationFailed)
)

// APIError describes a failed call to the inventory server.
// Status is zero for transport-level failures.
type APIError struct {
	Method   string
	Endpoint string
	Status   int
	Detail   string
	Err      error
}

func (e *APIError) Error() string {
	switch {
	case e.Status != 0 && e.Detail != "":
		return fmt.Sprintf("%s: %s %s returned %d: %s", ErrMsgAPIFailed, e.Method, e.Endpoint, e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s %s returned %d", ErrMsgAPIFailed, e.Method, e.Endpoint, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s %s: %v", ErrMsgAPIFailed, e.Method, e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("%s: %s %s", ErrMsgAPIFailed, e.Method, e.Endpoint)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is makes every APIError match ErrAPIFailed.
func (e *APIError) Is(target error) bool {
	return target == ErrAPIFailed
}

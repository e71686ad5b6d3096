package client

import (
	"errors"
	"fmt"
)

// ErrConfirmationRequired is returned by DeleteEvent when the caller did not
// set DeleteOptions.Confirm.
var ErrConfirmationRequired = errors.New("client: delete requires explicit confirmation")

// APIError is a non-2xx response from the server, carrying its error code
// and human-readable message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// TransientFetchError wraps a transport or server failure on a read. Callers
// may retry; the sidebar path swallows it entirely.
type TransientFetchError struct {
	Err error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("client: fetch failed: %v", e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// TransientMutationError reports a failed mutation whose optimistic local
// change has already been rolled back.
type TransientMutationError struct {
	Err error
}

func (e *TransientMutationError) Error() string {
	return fmt.Sprintf("client: mutation failed, local state rolled back: %v", e.Err)
}

func (e *TransientMutationError) Unwrap() error { return e.Err }

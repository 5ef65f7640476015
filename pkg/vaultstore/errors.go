package vaultstore

import (
	"errors"
	"fmt"
)

// ErrRequiredOptionsMissing indicates that required store configuration is
// absent. It is raised before any network activity and never retried.
var ErrRequiredOptionsMissing = errors.New("required vault options missing")

// AuthenticationError indicates that the login exchange with the store
// failed. It is fatal for Initialize and is never retried automatically;
// the hosting process decides whether to abort.
type AuthenticationError struct {
	Mode string
	Err  error
}

func (e AuthenticationError) Error() string {
	return fmt.Sprintf("vault authentication failed (%s): %v", e.Mode, e.Err)
}

func (e AuthenticationError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates that no secret exists for the requested entity.
type NotFoundError struct {
	EntityID string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("secret not found for entity %q: %v", e.EntityID, e.Err)
	}
	return fmt.Sprintf("secret not found for entity %q", e.EntityID)
}

func (e NotFoundError) Unwrap() error {
	return e.Err
}

// UnavailableError indicates that the store is unreachable or failing at the
// transport layer. The core never retries it; callers may at a higher level.
type UnavailableError struct {
	Err error
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("secret store unavailable: %v", e.Err)
}

func (e UnavailableError) Unwrap() error {
	return e.Err
}

package lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrArticleNotFound means the referenced article does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrConflict means the conditional status write lost to a concurrent
	// writer. Interactive callers may re-read and retry; the scheduler
	// treats it as a benign no-op.
	ErrConflict = errors.New("article was modified concurrently")

	// ErrMissingScheduleTime means a scheduled article was submitted
	// without a publish time.
	ErrMissingScheduleTime = errors.New("scheduled article requires a publish time")
)

// InvalidTransitionError is an adjacency violation: the requested status is
// not reachable from the current one for any role.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move article from %q to %q", e.From, e.To)
}

// InsufficientRoleError is an adjacency-legal transition that the actor's
// role is not allowed to perform. Kept distinct from InvalidTransitionError
// so the UI can tell "you lack permission" from "that change makes no sense".
type InsufficientRoleError struct {
	Role Role
	To   Status
}

func (e *InsufficientRoleError) Error() string {
	return fmt.Sprintf("role %q may not set article status to %q", e.Role, e.To)
}

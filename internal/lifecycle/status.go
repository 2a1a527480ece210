package lifecycle

import "fmt"

// Status is the lifecycle state of an article. Only these six values are
// ever persisted.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
	StatusFlagged   Status = "flagged"
	StatusScheduled Status = "scheduled"
)

// transitions maps each status to the states it may move to, independent of
// who asks. Self-transitions are always allowed and are not listed.
// Note that "scheduled" is never a transition target: it can only be an
// initial status, assigned at creation.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusPublished, StatusRejected, StatusFlagged},
	StatusPublished: {StatusFlagged, StatusDraft},
	StatusRejected:  {StatusDraft, StatusPending},
	StatusFlagged:   {StatusPending, StatusPublished, StatusRejected, StatusDraft},
	StatusScheduled: {StatusDraft, StatusPending},
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusRejected,
		StatusFlagged, StatusScheduled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether the adjacency table permits moving from s
// to next, ignoring roles.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown article status %q", raw)
	}
	return s, nil
}

// Role identifies the actor requesting a transition.
type Role string

const (
	RoleAdmin     Role = "admin"
	RolePublisher Role = "publisher"
	RoleReader    Role = "reader"

	// RoleScheduler is the implicit authority of the background scheduler.
	// It is admin-equivalent and must never be accepted from an external
	// request; only the scheduler itself submits it.
	RoleScheduler Role = "scheduler"
)

// ParseRole parses a role supplied by an external caller. RoleScheduler is
// deliberately not parseable here.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleAdmin, RolePublisher, RoleReader:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

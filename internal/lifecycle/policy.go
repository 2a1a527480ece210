package lifecycle

// Decide reports whether an actor with the given role may move an article
// from current to requested. It returns nil when the transition is allowed,
// *InvalidTransitionError when the adjacency table forbids the pair, and
// *InsufficientRoleError when the pair is adjacency-legal but the role is
// not permitted to perform it. Pure function, no I/O.
func Decide(current, requested Status, role Role) error {
	// Equal-status requests are idempotent no-ops for everyone.
	if current == requested {
		return nil
	}

	if !current.CanTransition(requested) {
		return &InvalidTransitionError{From: current, To: requested}
	}

	switch role {
	case RoleAdmin, RoleScheduler:
		return nil
	case RolePublisher:
		// Publishers may only land on draft or pending: publication and
		// moderation verdicts are admin territory.
		if requested != StatusDraft && requested != StatusPending {
			return &InsufficientRoleError{Role: role, To: requested}
		}
		return nil
	default:
		// Readers (and anything unrecognized) never initiate transitions.
		return &InsufficientRoleError{Role: role, To: requested}
	}
}

// ResolveCreateStatus picks the status a newly created article starts in.
// Publication never happens at creation, for any role: "published" always
// flows through the transition path.
func ResolveCreateStatus(requested Status, role Role) Status {
	if role == RoleAdmin {
		switch requested {
		case StatusDraft, StatusPending, StatusScheduled:
			return requested
		}
		return StatusDraft
	}

	if requested == StatusPending {
		return StatusPending
	}
	return StatusDraft
}

package appointment

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the actor is not a participant of the
	// appointment or their role is not allowed to perform the transition.
	ErrUnauthorized = errors.New("actor is not allowed to perform this action")

	// ErrInvalidTransition matches any InvalidTransitionError via errors.Is.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError reports a transition that is not in the lifecycle
// table, carrying the current status so callers can reconcile their view.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// transitions is the lifecycle table: for each current status, the statuses
// reachable from it and the roles allowed to request them. Cancelled and
// Completed have no entries; they are terminal.
var transitions = map[Status]map[Status]map[Role]bool{
	StatusPending: {
		StatusApproved:  {RoleDoctor: true},
		StatusCancelled: {RoleDoctor: true, RolePatient: true},
	},
	StatusApproved: {
		StatusCancelled: {RoleDoctor: true, RolePatient: true},
		StatusCompleted: {RoleDoctor: true},
	},
}

// CanTransition checks the lifecycle table for a requested status change.
// An unlisted transition (including anything out of a terminal status) is an
// InvalidTransitionError; a listed transition requested by the wrong role is
// ErrUnauthorized.
func CanTransition(from, to Status, role Role) error {
	allowed, ok := transitions[from][to]
	if !ok {
		return &InvalidTransitionError{From: from, To: to}
	}
	if !allowed[role] {
		return ErrUnauthorized
	}
	return nil
}

package appointment

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		role Role
		want error
	}{
		{"doctor approves pending", StatusPending, StatusApproved, RoleDoctor, nil},
		{"patient approves pending", StatusPending, StatusApproved, RolePatient, ErrUnauthorized},
		{"doctor cancels pending", StatusPending, StatusCancelled, RoleDoctor, nil},
		{"patient cancels pending", StatusPending, StatusCancelled, RolePatient, nil},
		{"doctor cancels approved", StatusApproved, StatusCancelled, RoleDoctor, nil},
		{"patient cancels approved", StatusApproved, StatusCancelled, RolePatient, nil},
		{"doctor completes approved", StatusApproved, StatusCompleted, RoleDoctor, nil},
		{"patient completes approved", StatusApproved, StatusCompleted, RolePatient, ErrUnauthorized},
		{"doctor completes pending", StatusPending, StatusCompleted, RoleDoctor, ErrInvalidTransition},
		{"doctor approves approved", StatusApproved, StatusApproved, RoleDoctor, ErrInvalidTransition},
		{"cancel out of completed", StatusCompleted, StatusCancelled, RoleDoctor, ErrInvalidTransition},
		{"approve out of cancelled", StatusCancelled, StatusApproved, RoleDoctor, ErrInvalidTransition},
		{"complete out of completed", StatusCompleted, StatusCompleted, RoleDoctor, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.role)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("CanTransition(%s, %s, %s) = %v, want nil", tc.from, tc.to, tc.role, err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("CanTransition(%s, %s, %s) = %v, want %v", tc.from, tc.to, tc.role, err, tc.want)
			}
		})
	}
}

func TestInvalidTransitionErrorCarriesCurrentState(t *testing.T) {
	err := CanTransition(StatusCompleted, StatusCancelled, RolePatient)

	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if invalid.From != StatusCompleted || invalid.To != StatusCancelled {
		t.Errorf("unexpected transition error contents: %+v", invalid)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusApproved.IsTerminal() {
		t.Error("pending and approved must not be terminal")
	}
	if !StatusCancelled.IsTerminal() || !StatusCompleted.IsTerminal() {
		t.Error("cancelled and completed must be terminal")
	}
}

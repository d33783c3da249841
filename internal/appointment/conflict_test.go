package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestOverlaps(t *testing.T) {
	mustTime := func(s string) TimeOfDay {
		tod, err := ParseTimeOfDay(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return tod
	}

	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"partial overlap", "10:00", "10:30", "10:15", "10:45", true},
		{"contained", "10:00", "11:00", "10:15", "10:30", true},
		{"containing", "10:15", "10:30", "10:00", "11:00", true},
		{"touching end to start", "10:00", "10:30", "10:30", "11:00", false},
		{"touching start to end", "10:30", "11:00", "10:00", "10:30", false},
		{"disjoint", "09:00", "09:30", "11:00", "11:30", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a1, a2 := mustTime(tc.aStart), mustTime(tc.aEnd)
			b1, b2 := mustTime(tc.bStart), mustTime(tc.bEnd)

			if got := Overlaps(a1, a2, b1, b2); got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(b1, b2, a1, a2); got != tc.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v (symmetry)",
					tc.bStart, tc.bEnd, tc.aStart, tc.aEnd, got, tc.want)
			}
		})
	}
}

func TestConflictChecker(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	checker := NewConflictChecker(repo)

	doctorID := uuid.New()
	otherDoctor := uuid.New()
	patientID := uuid.New()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	existing, err := repo.CreateAppointment(ctx, NewAppointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      day,
		Start:     10 * 60,
		End:       10*60 + 30,
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	cancelled, err := repo.CreateAppointment(ctx, NewAppointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      day,
		Start:     14 * 60,
		End:       15 * 60,
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if _, err := repo.UpdateAppointmentStatus(ctx, cancelled.ID, StatusPending, StatusCancelled); err != nil {
		t.Fatalf("cancel appointment: %v", err)
	}

	check := func(start, end TimeOfDay, exclude *uuid.UUID) bool {
		t.Helper()
		got, err := checker.HasConflict(ctx, doctorID, day, start, end, exclude)
		if err != nil {
			t.Fatalf("HasConflict: %v", err)
		}
		return got
	}

	if !check(10*60+15, 10*60+45, nil) {
		t.Error("overlapping range should conflict")
	}
	if check(10*60+30, 11*60, nil) {
		t.Error("touching range should not conflict")
	}
	if check(14*60+15, 14*60+30, nil) {
		t.Error("cancelled appointments should not conflict")
	}
	if check(10*60+15, 10*60+45, &existing.ID) {
		t.Error("excluded appointment should not conflict with itself")
	}

	got, err := checker.HasConflict(ctx, otherDoctor, day, 10*60, 11*60, nil)
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if got {
		t.Error("another doctor's calendar should not conflict")
	}
}

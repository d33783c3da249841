package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap, so a 10:00
// to 10:30 appointment does not conflict with 10:30 to 11:00.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// ConflictChecker decides whether a candidate time range collides with an
// existing non-cancelled appointment on a doctor's calendar.
type ConflictChecker struct {
	repo Repository
}

func NewConflictChecker(repo Repository) ConflictChecker {
	return ConflictChecker{repo: repo}
}

// HasConflict scans the doctor's non-cancelled appointments for the day.
// excludeID, when non-nil, removes that appointment from the overlap set;
// it exists for re-validating an appointment that is itself being changed.
func (c ConflictChecker) HasConflict(ctx context.Context, doctorID uuid.UUID, date time.Time, start, end TimeOfDay, excludeID *uuid.UUID) (bool, error) {
	existing, err := c.repo.ListActiveForDoctorDay(ctx, doctorID, DateOnly(date))
	if err != nil {
		return false, fmt.Errorf("list doctor calendar: %w", err)
	}

	for _, appt := range existing {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if Overlaps(appt.Start, appt.End, start, end) {
			return true, nil
		}
	}
	return false, nil
}

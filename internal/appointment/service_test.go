package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/medlyfe/scheduling-service/internal/redis"
)

var testToday = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *MemoryRepository
	svc     *Service
	doctor  Actor
	patient Actor
	day     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := NewMemoryRepository()
	svc := NewService(repo, redisclient.NewLocalLocker(), nil).
		WithClock(func() time.Time { return testToday })

	doctorID := uuid.New()
	patientID := uuid.New()
	repo.AddDoctor(Doctor{ID: doctorID, Name: "Dr. Reyes"})
	repo.AddPatient(Patient{ID: patientID, Name: "Sam Field"})

	return &fixture{
		repo:    repo,
		svc:     svc,
		doctor:  Actor{ID: doctorID, Role: RoleDoctor},
		patient: Actor{ID: patientID, Role: RolePatient},
		day:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) book(t *testing.T, start, end TimeOfDay) *Appointment {
	t.Helper()
	appt, err := f.svc.CreateAppointment(context.Background(), f.patient, f.doctor.ID, f.day, start, end, "checkup")
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	return appt
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	appt := f.book(t, 10*60, 10*60+30)

	if appt.Status != StatusPending {
		t.Errorf("new appointment status = %s, want pending", appt.Status)
	}
	if appt.DoctorID != f.doctor.ID || appt.PatientID != f.patient.ID {
		t.Error("appointment participants not recorded")
	}
	if !appt.Date.Equal(f.day) {
		t.Errorf("appointment date = %v, want %v", appt.Date, f.day)
	}
}

func TestCreateAppointmentInvalidTimeRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// End before start fails before any conflict check.
	_, err := f.svc.CreateAppointment(ctx, f.patient, f.doctor.ID, f.day, 10*60, 9*60, "")
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("end before start: got %v, want ErrInvalidTimeRange", err)
	}

	_, err = f.svc.CreateAppointment(ctx, f.patient, f.doctor.ID, f.day, 10*60, 10*60, "")
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("zero length: got %v, want ErrInvalidTimeRange", err)
	}
}

func TestCreateAppointmentDateInPast(t *testing.T) {
	f := newFixture(t)

	past := testToday.AddDate(0, 0, -1)
	_, err := f.svc.CreateAppointment(context.Background(), f.patient, f.doctor.ID, past, 10*60, 11*60, "")
	if !errors.Is(err, ErrDateInPast) {
		t.Errorf("got %v, want ErrDateInPast", err)
	}

	// Booking for today is allowed.
	if _, err := f.svc.CreateAppointment(context.Background(), f.patient, f.doctor.ID, testToday, 10*60, 11*60, ""); err != nil {
		t.Errorf("same-day booking failed: %v", err)
	}
}

func TestCreateAppointmentRequiresPatientRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateAppointment(context.Background(), f.doctor, f.doctor.ID, f.day, 10*60, 11*60, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestCreateAppointmentUnknownParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stranger := Actor{ID: uuid.New(), Role: RolePatient}
	_, err := f.svc.CreateAppointment(ctx, stranger, f.doctor.ID, f.day, 10*60, 11*60, "")
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("got %v, want ErrPatientNotFound", err)
	}

	_, err = f.svc.CreateAppointment(ctx, f.patient, uuid.New(), f.day, 10*60, 11*60, "")
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("got %v, want ErrDoctorNotFound", err)
	}
}

func TestCreateAppointmentConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Doctor has 10:00-10:30 booked.
	f.book(t, 10*60, 10*60+30)

	// 10:15-10:45 overlaps.
	_, err := f.svc.CreateAppointment(ctx, f.patient, f.doctor.ID, f.day, 10*60+15, 10*60+45, "")
	if !errors.Is(err, ErrSchedulingConflict) {
		t.Errorf("overlapping booking: got %v, want ErrSchedulingConflict", err)
	}

	// 10:30-11:00 touches the boundary and succeeds.
	if _, err := f.svc.CreateAppointment(ctx, f.patient, f.doctor.ID, f.day, 10*60+30, 11*60, ""); err != nil {
		t.Errorf("touching booking failed: %v", err)
	}
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, 10*60, 10*60+30)
	if _, err := f.svc.CancelAppointment(ctx, appt.ID, f.patient); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := f.svc.CreateAppointment(ctx, f.patient, f.doctor.ID, f.day, 10*60, 10*60+30, ""); err != nil {
		t.Errorf("rebooking a cancelled slot failed: %v", err)
	}
}

func TestLifecycleFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, 10*60, 10*60+30)

	approved, err := f.svc.ApproveAppointment(ctx, appt.ID, f.doctor)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("status after approve = %s", approved.Status)
	}

	completed, err := f.svc.CompleteAppointment(ctx, appt.ID, f.doctor)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != StatusCompleted {
		t.Fatalf("status after complete = %s", completed.Status)
	}

	// Completed is terminal: even the patient's own cancel is rejected.
	_, err = f.svc.CancelAppointment(ctx, appt.ID, f.patient)
	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("cancel after complete: got %v, want InvalidTransitionError", err)
	}
	if invalid.From != StatusCompleted {
		t.Errorf("error current state = %s, want completed", invalid.From)
	}
}

func TestTransitionRoleGating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, 10*60, 10*60+30)

	if _, err := f.svc.ApproveAppointment(ctx, appt.ID, f.patient); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("patient approve: got %v, want ErrUnauthorized", err)
	}

	if _, err := f.svc.ApproveAppointment(ctx, appt.ID, f.doctor); err != nil {
		t.Fatalf("doctor approve: %v", err)
	}

	if _, err := f.svc.CompleteAppointment(ctx, appt.ID, f.patient); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("patient complete: got %v, want ErrUnauthorized", err)
	}
}

func TestTransitionOutsiderRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, 10*60, 10*60+30)

	outsiderDoctor := Actor{ID: uuid.New(), Role: RoleDoctor}
	if _, err := f.svc.ApproveAppointment(ctx, appt.ID, outsiderDoctor); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("other doctor approve: got %v, want ErrUnauthorized", err)
	}

	outsiderPatient := Actor{ID: uuid.New(), Role: RolePatient}
	if _, err := f.svc.CancelAppointment(ctx, appt.ID, outsiderPatient); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("other patient cancel: got %v, want ErrUnauthorized", err)
	}
}

func TestTransitionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ApproveAppointment(context.Background(), uuid.New(), f.doctor)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("got %v, want ErrAppointmentNotFound", err)
	}
}

func TestGetAppointmentAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, 10*60, 10*60+30)

	if _, err := f.svc.GetAppointment(ctx, appt.ID, f.doctor); err != nil {
		t.Errorf("doctor read: %v", err)
	}
	if _, err := f.svc.GetAppointment(ctx, appt.ID, f.patient); err != nil {
		t.Errorf("patient read: %v", err)
	}

	outsider := Actor{ID: uuid.New(), Role: RolePatient}
	if _, err := f.svc.GetAppointment(ctx, appt.ID, outsider); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("outsider read: got %v, want ErrUnauthorized", err)
	}
}

func TestListAppointmentsOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	later := f.day.AddDate(0, 0, 1)
	f.book(t, 11*60, 11*60+30)
	f.book(t, 9*60, 9*60+30)
	if _, err := f.svc.CreateAppointment(ctx, f.patient, f.doctor.ID, later, 8*60, 8*60+30, ""); err != nil {
		t.Fatalf("book later day: %v", err)
	}

	asc, err := f.svc.ListAppointments(ctx, f.patient, OrderSoonestFirst)
	if err != nil {
		t.Fatalf("list asc: %v", err)
	}
	if len(asc) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(asc))
	}
	if asc[0].Start != 9*60 || asc[1].Start != 11*60 || !asc[2].Date.Equal(later) {
		t.Errorf("ascending order wrong: %v %v %v", asc[0].Start, asc[1].Start, asc[2].Date)
	}

	desc, err := f.svc.ListAppointments(ctx, f.doctor, OrderLatestFirst)
	if err != nil {
		t.Fatalf("list desc: %v", err)
	}
	if !desc[0].Date.Equal(later) || desc[2].Start != 9*60 {
		t.Errorf("descending order wrong: %v %v", desc[0].Date, desc[2].Start)
	}
}

// TestNoDoubleBookingUnderConcurrency is the core correctness property:
// N concurrent bookings for one doctor and one fully overlapping time range
// must produce exactly one success and N-1 scheduling conflicts.
func TestNoDoubleBookingUnderConcurrency(t *testing.T) {
	const workers = 16

	repo := NewMemoryRepository()
	svc := NewService(repo, redisclient.NewLocalLocker(), nil).
		WithClock(func() time.Time { return testToday })

	doctorID := uuid.New()
	repo.AddDoctor(Doctor{ID: doctorID, Name: "Dr. Chen"})

	patients := make([]Actor, workers)
	for i := range patients {
		patients[i] = Actor{ID: uuid.New(), Role: RolePatient}
		repo.AddPatient(Patient{ID: patients[i].ID})
	}

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(actor Actor) {
			defer wg.Done()
			_, err := svc.CreateAppointment(context.Background(), actor, doctorID, day, 10*60, 10*60+30, "race")
			results <- err
		}(patients[i])
	}

	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSchedulingConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != workers-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, workers-1)
	}
}

func TestEventsRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt := f.book(t, 10*60, 10*60+30)
	if _, err := f.svc.ApproveAppointment(ctx, appt.ID, f.doctor); err != nil {
		t.Fatalf("approve: %v", err)
	}

	events := f.repo.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventType != EventAppointmentCreated || events[1].EventType != EventAppointmentApproved {
		t.Errorf("unexpected event types: %s, %s", events[0].EventType, events[1].EventType)
	}
	if events[0].AppointmentID == nil || *events[0].AppointmentID != appt.ID {
		t.Error("event not linked to appointment")
	}
}

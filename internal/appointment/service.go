package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	redisclient "github.com/medlyfe/scheduling-service/internal/redis"
)

const (
	EventAppointmentCreated   = "APPOINTMENT_CREATED"
	EventAppointmentApproved  = "APPOINTMENT_APPROVED"
	EventAppointmentCancelled = "APPOINTMENT_CANCELLED"
	EventAppointmentCompleted = "APPOINTMENT_COMPLETED"
)

var (
	ErrInvalidTimeRange   = errors.New("start time must be before end time")
	ErrDateInPast         = errors.New("appointment date is in the past")
	ErrSchedulingConflict = errors.New("doctor already has an appointment in this time range")
	ErrCalendarBusy       = errors.New("doctor calendar is currently being booked, please retry")
)

// EventPublisher forwards lifecycle events to the notification pipeline.
// Publishing is best effort; the durable record is the event_logs table.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, appointmentID uuid.UUID, payload []byte) error
}

type Service struct {
	repo    Repository
	locker  redisclient.Locker
	checker ConflictChecker
	events  EventPublisher
	now     func() time.Time
}

func NewService(repo Repository, locker redisclient.Locker, events EventPublisher) *Service {
	return &Service{
		repo:    repo,
		locker:  locker,
		checker: NewConflictChecker(repo),
		events:  events,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Used by tests to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateAppointment books a pending appointment for the calling patient.
// The conflict check and the insert run inside a per doctor-day lock so
// that concurrent bookings for the same doctor cannot both pass the check.
func (s *Service) CreateAppointment(ctx context.Context, actor Actor, doctorID uuid.UUID, date time.Time, start, end TimeOfDay, reason string) (*Appointment, error) {
	if actor.Role != RolePatient {
		return nil, ErrUnauthorized
	}

	if !start.Valid() || !end.Valid() || start >= end {
		return nil, ErrInvalidTimeRange
	}

	day := DateOnly(date)
	if day.Before(DateOnly(s.now())) {
		return nil, ErrDateInPast
	}

	if _, err := s.repo.GetPatientByID(ctx, actor.ID); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if _, err := s.repo.GetDoctorByID(ctx, doctorID); err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	var created *Appointment

	err := s.locker.WithCalendarLock(ctx, doctorID, FormatDate(day), func(lockCtx context.Context) error {
		conflict, err := s.checker.HasConflict(lockCtx, doctorID, day, start, end, nil)
		if err != nil {
			return fmt.Errorf("check conflicts: %w", err)
		}
		if conflict {
			return ErrSchedulingConflict
		}

		appt, err := s.repo.CreateAppointment(lockCtx, NewAppointment{
			DoctorID:  doctorID,
			PatientID: actor.ID,
			Date:      day,
			Start:     start,
			End:       end,
			Reason:    reason,
		})
		if err != nil {
			return fmt.Errorf("create pending appointment: %w", err)
		}

		created = appt

		s.logEvent(lockCtx, appt.ID, EventAppointmentCreated, map[string]any{
			"doctor_id":  doctorID.String(),
			"patient_id": actor.ID.String(),
			"date":       FormatDate(day),
			"start":      start.String(),
			"end":        end.String(),
		})

		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrCalendarBusy
		}
		return nil, err
	}

	return created, nil
}

// Transition applies a lifecycle status change on behalf of an actor.
// The stored status is updated with a compare-and-set, so a concurrent
// transition loses cleanly instead of overwriting.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, target Status, actor Actor) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if !s.isParticipant(appt, actor) {
		return nil, ErrUnauthorized
	}

	if err := CanTransition(appt.Status, target, actor.Role); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateAppointmentStatus(ctx, appt.ID, appt.Status, target)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// Lost a race with another transition. Report against the
			// status that is actually stored now.
			current, curErr := s.repo.GetAppointmentByID(ctx, appt.ID)
			if curErr != nil {
				return nil, fmt.Errorf("reload appointment after contended update: %w", curErr)
			}
			return nil, &InvalidTransitionError{From: current.Status, To: target}
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.logEvent(ctx, updated.ID, eventTypeFor(target), map[string]any{
		"actor_id":   actor.ID.String(),
		"actor_role": string(actor.Role),
		"from":       string(appt.Status),
		"to":         string(target),
	})

	return updated, nil
}

// ApproveAppointment moves a pending appointment to approved (doctor only).
func (s *Service) ApproveAppointment(ctx context.Context, id uuid.UUID, actor Actor) (*Appointment, error) {
	return s.Transition(ctx, id, StatusApproved, actor)
}

// CancelAppointment cancels a pending or approved appointment.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, actor Actor) (*Appointment, error) {
	return s.Transition(ctx, id, StatusCancelled, actor)
}

// CompleteAppointment marks an approved appointment completed (doctor only).
func (s *Service) CompleteAppointment(ctx context.Context, id uuid.UUID, actor Actor) (*Appointment, error) {
	return s.Transition(ctx, id, StatusCompleted, actor)
}

// GetAppointment returns a single appointment to one of its participants.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID, actor Actor) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if !s.isParticipant(appt, actor) {
		return nil, ErrUnauthorized
	}
	return appt, nil
}

// ListAppointments returns the actor's appointments ordered by date and
// start time in the requested direction.
func (s *Service) ListAppointments(ctx context.Context, actor Actor, order Order) ([]Appointment, error) {
	if order != OrderSoonestFirst && order != OrderLatestFirst {
		order = OrderSoonestFirst
	}
	appts, err := s.repo.ListForActor(ctx, actor, order)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *Service) isParticipant(appt *Appointment, actor Actor) bool {
	switch actor.Role {
	case RoleDoctor:
		return appt.DoctorID == actor.ID
	case RolePatient:
		return appt.PatientID == actor.ID
	default:
		return false
	}
}

func eventTypeFor(target Status) string {
	switch target {
	case StatusApproved:
		return EventAppointmentApproved
	case StatusCancelled:
		return EventAppointmentCancelled
	case StatusCompleted:
		return EventAppointmentCompleted
	default:
		return EventAppointmentCreated
	}
}

func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal event payload for %s: %v", eventType, err)
		data = nil
	}

	apptID := appointmentID

	ev := EventLog{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     s.now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		log.Printf("failed to insert event log %s for appointment %s: %v", eventType, appointmentID, err)
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, eventType, appointmentID, data); err != nil {
			log.Printf("failed to publish event %s for appointment %s: %v", eventType, appointmentID, err)
		}
	}
}

package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// ListActiveForDoctorDay returns the doctor's non-cancelled appointments
	// on the given calendar day, for conflict checking.
	ListActiveForDoctorDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Appointment, error)

	// ListForActor returns the appointments the actor participates in,
	// ordered by (date, start time) in the requested direction.
	ListForActor(ctx context.Context, actor Actor, order Order) ([]Appointment, error)

	// CreateAppointment persists a new pending appointment.
	CreateAppointment(ctx context.Context, req NewAppointment) (*Appointment, error)

	// UpdateAppointmentStatus is a compare-and-set: it only applies when the
	// stored status still equals from, and returns ErrAppointmentNotFound
	// otherwise.
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)

	// Event logging
	InsertEvent(ctx context.Context, ev EventLog) error
}

package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Actor is the identity performing a call, resolved by the upstream
// identity collaborator and passed explicitly into every service method.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

type Doctor struct {
	ID        uuid.UUID
	Name      string
	Specialty *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appointment is a booked consultation between one doctor and one patient.
// Date is the calendar day (UTC midnight); Start/End bound the half-open
// interval [Start, End) within that day. Records are never deleted;
// cancellation is a status change.
type Appointment struct {
	ID        uuid.UUID
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      time.Time
	Start     TimeOfDay
	End       TimeOfDay
	Reason    string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAppointment carries the fields of a booking request.
type NewAppointment struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      time.Time
	Start     TimeOfDay
	End       TimeOfDay
	Reason    string
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}

// Order selects list ordering by (date, start time).
type Order string

const (
	OrderSoonestFirst Order = "asc"
	OrderLatestFirst  Order = "desc"
)

package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/medlyfe/scheduling-service/internal/appointment"
	"github.com/medlyfe/scheduling-service/internal/diagnosis"
	"github.com/medlyfe/scheduling-service/internal/healthlog"
	"github.com/medlyfe/scheduling-service/internal/medicine"
)

type CreateAppointmentRequest struct {
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		PatientID: a.PatientID,
		Date:      appointment.FormatDate(a.Date),
		StartTime: a.Start.String(),
		EndTime:   a.End.String(),
		Reason:    a.Reason,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type ErrorResponse struct {
	Error         string `json:"error"`
	Details       string `json:"details,omitempty"`
	CurrentStatus string `json:"current_status,omitempty"`
}

type MedicineResponse struct {
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	Composition  string  `json:"composition"`
	Price        float64 `json:"price"`
}

type SubstituteLookupResponse struct {
	Medicine    MedicineResponse   `json:"medicine"`
	Substitutes []MedicineResponse `json:"substitutes"`
}

func toSubstituteLookupResponse(l *medicine.Lookup) SubstituteLookupResponse {
	resp := SubstituteLookupResponse{
		Medicine: MedicineResponse{
			Name:         l.Medicine.Name,
			Manufacturer: l.Medicine.Manufacturer,
			Composition:  l.Medicine.Composition,
			Price:        l.Medicine.Price,
		},
		Substitutes: make([]MedicineResponse, 0, len(l.Substitutes)),
	}
	for _, s := range l.Substitutes {
		resp.Substitutes = append(resp.Substitutes, MedicineResponse{
			Name:         s.Name,
			Manufacturer: s.Manufacturer,
			Composition:  s.Composition,
			Price:        s.Price,
		})
	}
	return resp
}

type MatchRequest struct {
	Symptoms []string `json:"symptoms"`
}

type MatchResponse struct {
	Disease     string   `json:"disease"`
	Description string   `json:"description"`
	Precautions string   `json:"precautions"`
	Matched     []string `json:"matched_symptoms"`
	Score       int      `json:"score"`
}

func toMatchResponses(matches []diagnosis.Match) []MatchResponse {
	resp := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		resp = append(resp, MatchResponse{
			Disease:     m.Disease.Name,
			Description: m.Disease.Description,
			Precautions: m.Disease.Precautions,
			Matched:     m.Matched,
			Score:       m.Score,
		})
	}
	return resp
}

type HealthEntryRequest struct {
	Metric string   `json:"metric"`
	Value  float64  `json:"value"`
	Value2 *float64 `json:"value2,omitempty"`
	Date   string   `json:"date"`
}

type HealthEntryResponse struct {
	ID     int64    `json:"id"`
	Metric string   `json:"metric"`
	Value  float64  `json:"value"`
	Value2 *float64 `json:"value2,omitempty"`
	Date   string   `json:"date"`
}

func toHealthEntryResponse(e *healthlog.Entry) HealthEntryResponse {
	return HealthEntryResponse{
		ID:     e.ID,
		Metric: string(e.Metric),
		Value:  e.Value,
		Value2: e.Value2,
		Date:   e.Date.UTC().Format(time.DateOnly),
	}
}

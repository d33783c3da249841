package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medlyfe/scheduling-service/internal/appointment"
	"github.com/medlyfe/scheduling-service/internal/diagnosis"
	"github.com/medlyfe/scheduling-service/internal/healthlog"
	"github.com/medlyfe/scheduling-service/internal/medicine"
	redisclient "github.com/medlyfe/scheduling-service/internal/redis"
)

func createAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_actor", "actor identity is required")
			return
		}

		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
			return
		}

		date, err := appointment.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}

		start, err := appointment.ParseTimeOfDay(req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_time", err.Error())
			return
		}

		end, err := appointment.ParseTimeOfDay(req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end_time", err.Error())
			return
		}

		appt, err := svc.CreateAppointment(r.Context(), actor, doctorID, date, start, end, req.Reason)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func listAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_actor", "actor identity is required")
			return
		}

		order := appointment.OrderSoonestFirst
		if r.URL.Query().Get("order") == "desc" {
			order = appointment.OrderLatestFirst
		}

		appts, err := svc.ListAppointments(r.Context(), actor, order)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		resp := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, toAppointmentResponse(&appts[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_actor", "actor identity is required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.GetAppointment(r.Context(), id, actor)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

// transitionHandler serves approve, cancel, and complete; they differ only
// in the target status the service is asked for.
func transitionHandler(svc *appointment.Service, target appointment.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_actor", "actor identity is required")
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.Transition(r.Context(), id, target, actor)
		if err != nil {
			handleAppointmentError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func handleAppointmentError(w http.ResponseWriter, err error) {
	var invalid *appointment.InvalidTransitionError

	switch {
	case errors.Is(err, appointment.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, "invalid_time_range", err.Error())
	case errors.Is(err, appointment.ErrDateInPast):
		writeError(w, http.StatusBadRequest, "date_in_past", err.Error())
	case errors.Is(err, appointment.ErrDoctorNotFound),
		errors.Is(err, appointment.ErrPatientNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, appointment.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:         "invalid_transition",
			Details:       invalid.Error(),
			CurrentStatus: string(invalid.From),
		})
	case errors.Is(err, appointment.ErrSchedulingConflict):
		writeError(w, http.StatusConflict, "scheduling_conflict", err.Error())
	case errors.Is(err, appointment.ErrCalendarBusy),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "calendar_busy", "doctor calendar is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func substituteLookupHandler(svc *medicine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := chi.URLParam(r, "tag")

		lookup, err := svc.LookupSubstitutes(r.Context(), tag)
		if err != nil {
			if errors.Is(err, medicine.ErrMedicineNotFound) {
				writeError(w, http.StatusNotFound, "medicine_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toSubstituteLookupResponse(lookup))
	}
}

func matchDiagnosisHandler(svc *diagnosis.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		matches, err := svc.Match(r.Context(), req.Symptoms)
		if err != nil {
			if errors.Is(err, diagnosis.ErrNoSymptoms) {
				writeError(w, http.StatusBadRequest, "no_symptoms", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toMatchResponses(matches))
	}
}

func recordHealthEntryHandler(svc *healthlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_actor", "actor identity is required")
			return
		}

		var req HealthEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		date, err := appointment.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}

		entry, err := svc.Record(r.Context(), actor.ID, healthlog.Metric(req.Metric), req.Value, req.Value2, date)
		if err != nil {
			handleHealthlogError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toHealthEntryResponse(entry))
	}
}

func listHealthEntriesHandler(svc *healthlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_actor", "actor identity is required")
			return
		}

		metric := healthlog.Metric(r.URL.Query().Get("metric"))

		entries, err := svc.List(r.Context(), actor.ID, metric, 0)
		if err != nil {
			handleHealthlogError(w, err)
			return
		}

		resp := make([]HealthEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toHealthEntryResponse(&entries[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleHealthlogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, healthlog.ErrInvalidMetric):
		writeError(w, http.StatusBadRequest, "invalid_metric", err.Error())
	case errors.Is(err, healthlog.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, "invalid_value", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/smartward/hospital-backend/internal/visit"
)

func handleVisitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, visit.ErrVisitNotFound):
		writeError(w, http.StatusNotFound, "visit_not_found", err.Error())
	case errors.Is(err, visit.ErrPatientUnknown):
		writeError(w, http.StatusNotFound, "patient_unknown", err.Error())
	case errors.Is(err, visit.ErrDoctorUnknown):
		writeError(w, http.StatusNotFound, "doctor_unknown", err.Error())
	case errors.Is(err, visit.ErrBadTemperature),
		errors.Is(err, visit.ErrBadBloodPressure):
		writeError(w, http.StatusBadRequest, "invalid_vitals", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// createVisitHandler records a nurse intake for the patient in the URL. The
// nurse is the authenticated caller.
func createVisitHandler(svc *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nurseID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		patientID, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a positive integer")
			return
		}

		var req CreateVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		v, err := svc.CreateVisit(r.Context(), visit.CreateVisitParams{
			PatientID:     patientID,
			DoctorID:      req.DoctorID,
			NurseID:       nurseID,
			Weight:        req.Weight,
			Temperature:   req.Temperature,
			BloodPressure: req.BloodPressure,
		})
		if err != nil {
			handleVisitError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

func myVisitsHandler(svc *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		visits, suggestion, err := svc.VisitsForDoctor(r.Context(), doctorID, r.URL.Query().Get("q"))
		if err != nil {
			handleVisitError(w, err)
			return
		}

		resp := VisitListResponse{
			Visits:     make([]VisitResponse, 0, len(visits)),
			Suggestion: suggestion,
		}
		for i := range visits {
			vr := toVisitResponse(&visits[i].Visit)
			vr.PatientName = visits[i].PatientName
			vr.NurseName = visits[i].NurseName
			resp.Visits = append(resp.Visits, vr)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func attachNotesHandler(svc *visit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		visitID, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_visit_id", "id must be a positive integer")
			return
		}

		var req AttachNotesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if strings.TrimSpace(req.Notes) == "" {
			writeError(w, http.StatusBadRequest, "empty_notes", "notes cannot be empty")
			return
		}

		v, err := svc.AttachDoctorNotes(r.Context(), visitID, doctorID, req.Notes)
		if err != nil {
			handleVisitError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

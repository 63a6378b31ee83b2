package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/smartward/hospital-backend/internal/patient"
)

func decodePatientRequest(r *http.Request) (*patient.Patient, error) {
	var req PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("could not parse JSON")
	}

	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, errors.New("dob must be in YYYY-MM-DD format")
	}

	return &patient.Patient{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Address:           req.Address,
		PhoneContact:      req.PhoneContact,
		EmergencyContact:  req.EmergencyContact,
		DOB:               dob,
		Email:             req.Email,
		MedicalConditions: req.MedicalConditions,
	}, nil
}

func handlePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, patient.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, patient.ErrNameRequired),
		errors.Is(err, patient.ErrNameTooLong),
		errors.Is(err, patient.ErrBadPhone),
		errors.Is(err, patient.ErrDOBInFuture),
		errors.Is(err, patient.ErrDOBTooOld),
		errors.Is(err, patient.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func createPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodePatientRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}

		created, err := svc.CreatePatient(r.Context(), p)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(created))
	}
}

func updatePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a positive integer")
			return
		}

		p, err := decodePatientRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
			return
		}
		p.ID = id

		updated, err := svc.UpdatePatient(r.Context(), p)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(updated))
	}
}

func getPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a positive integer")
			return
		}

		p, err := svc.GetPatient(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func listPatientsHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		patients, suggestion, err := svc.SearchPatients(r.Context(), query)
		if err != nil {
			handlePatientError(w, err)
			return
		}

		resp := PatientListResponse{
			Patients:   make([]PatientResponse, 0, len(patients)),
			Suggestion: suggestion,
		}
		for i := range patients {
			resp.Patients = append(resp.Patients, toPatientResponse(&patients[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartward/hospital-backend/internal/identity"
)

func registerHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		user, err := svc.Register(r.Context(), identity.RegisterParams{
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			IDNumber:  req.IDNumber,
			Role:      req.Role,
			Password:  req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrDuplicateUser):
				writeError(w, http.StatusConflict, "duplicate_user", err.Error())
			default:
				writeError(w, http.StatusBadRequest, "invalid_registration", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

func loginHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		user, token, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:     token,
			Dashboard: user.Role.Dashboard(),
			User:      toUserResponse(user),
		})
	}
}

// listDoctorsHandler feeds the shift and slot forms with the doctors a
// booking can be made against.
func listDoctorsHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListDoctors(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]UserResponse, 0, len(doctors))
		for i := range doctors {
			resp = append(resp, toUserResponse(&doctors[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func getProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		user, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "user_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(user))
	}
}

func updateProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, identity.ProfileUpdate{
			FirstName:           req.FirstName,
			LastName:            req.LastName,
			Email:               req.Email,
			ProfilePicture:      req.ProfilePicture,
			ClearProfilePicture: req.ClearProfilePicture,
		})
		if err != nil {
			if errors.Is(err, identity.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "user_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(user))
	}
}

func changePasswordHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		err := svc.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrWrongPassword):
				writeError(w, http.StatusBadRequest, "wrong_password", err.Error())
			case errors.Is(err, identity.ErrWeakPassword):
				writeError(w, http.StatusBadRequest, "weak_password", err.Error())
			case errors.Is(err, identity.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "user_not_found", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartward/hospital-backend/internal/identity"
)

type stubVerifier struct {
	userID int64
	role   identity.Role
	err    error
}

func (s *stubVerifier) VerifyToken(raw string) (int64, identity.Role, error) {
	return s.userID, s.role, s.err
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := CurrentUserID(r.Context())
		role, _ := CurrentRole(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "role": role})
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		handler := AuthMiddleware(&stubVerifier{})(identityEcho())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		handler := AuthMiddleware(&stubVerifier{})(identityEcho())

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		verifier := &stubVerifier{err: errors.New("bad token")}
		handler := AuthMiddleware(verifier)(identityEcho())

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		verifier := &stubVerifier{userID: 42, role: identity.RoleDoctor}
		handler := AuthMiddleware(verifier)(identityEcho())

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":42`)
		assert.Contains(t, rec.Body.String(), `"role":"doctor"`)
	})
}

func TestRequireRoles(t *testing.T) {
	authed := func(role identity.Role, gate func(http.Handler) http.Handler) *httptest.ResponseRecorder {
		handler := AuthMiddleware(&stubVerifier{userID: 1, role: role})(gate(identityEcho()))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	gate := RequireRoles(identity.RoleReceptionist, identity.RoleAdmin)

	assert.Equal(t, http.StatusOK, authed(identity.RoleReceptionist, gate).Code)
	assert.Equal(t, http.StatusOK, authed(identity.RoleAdmin, gate).Code)
	assert.Equal(t, http.StatusForbidden, authed(identity.RoleDoctor, gate).Code)
	assert.Equal(t, http.StatusForbidden, authed(identity.RoleNurse, gate).Code)
}

func TestRequireRolesWithoutAuthContext(t *testing.T) {
	handler := RequireRoles(identity.RoleAdmin)(identityEcho())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

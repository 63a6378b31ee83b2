package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartward/hospital-backend/internal/visit"
)

func TestHandleVisitErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown patient", err: visit.ErrPatientUnknown, want: http.StatusNotFound},
		{name: "unknown doctor", err: visit.ErrDoctorUnknown, want: http.StatusNotFound},
		{name: "visit not found", err: visit.ErrVisitNotFound, want: http.StatusNotFound},
		{name: "bad temperature", err: visit.ErrBadTemperature, want: http.StatusBadRequest},
		{name: "bad blood pressure", err: visit.ErrBadBloodPressure, want: http.StatusBadRequest},
		{name: "unexpected fault", err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleVisitError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

package patient

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPatient() Patient {
	return Patient{
		FirstName:        "Josefa",
		LastName:         "Naulu",
		Address:          "12 Ratu Mara Rd",
		PhoneContact:     "7654321",
		EmergencyContact: "7123456",
		DOB:              time.Date(1996, 6, 15, 0, 0, 0, 0, time.UTC),
		Email:            "josefa@example.com",
	}
}

func TestPatientValidate(t *testing.T) {
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(*Patient)
		wantErr error
	}{
		{
			name:   "valid record",
			mutate: func(*Patient) {},
		},
		{
			name:    "missing first name",
			mutate:  func(p *Patient) { p.FirstName = "  " },
			wantErr: ErrNameRequired,
		},
		{
			name:    "first name over 25 characters",
			mutate:  func(p *Patient) { p.FirstName = strings.Repeat("a", 26) },
			wantErr: ErrNameTooLong,
		},
		{
			name:    "phone too short",
			mutate:  func(p *Patient) { p.PhoneContact = "123456" },
			wantErr: ErrBadPhone,
		},
		{
			name:    "phone with letters",
			mutate:  func(p *Patient) { p.EmergencyContact = "76a4321" },
			wantErr: ErrBadPhone,
		},
		{
			name:    "missing email",
			mutate:  func(p *Patient) { p.Email = "" },
			wantErr: ErrEmailRequired,
		},
		{
			name:    "born tomorrow",
			mutate:  func(p *Patient) { p.DOB = today.AddDate(0, 0, 1) },
			wantErr: ErrDOBInFuture,
		},
		{
			name:    "151 years old",
			mutate:  func(p *Patient) { p.DOB = today.AddDate(-151, 0, 0) },
			wantErr: ErrDOBTooOld,
		},
		{
			name:   "exactly 150 years old",
			mutate: func(p *Patient) { p.DOB = today.AddDate(-150, 0, 0) },
		},
		{
			name:   "born today",
			mutate: func(p *Patient) { p.DOB = today },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.mutate(&p)

			err := p.Validate(today)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDOBBirthdayNotYetReached(t *testing.T) {
	// 150 years minus one day: the birthday this year has not passed, so the
	// computed age is 149 and the record is accepted.
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dob := time.Date(1876, 3, 3, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateDOB(dob, today))
}

func TestPatientFullName(t *testing.T) {
	p := validPatient()
	assert.Equal(t, "Josefa Naulu", p.FullName())
}

package patient

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNameTooLong     = errors.New("name cannot exceed 25 characters")
	ErrNameRequired    = errors.New("first and last name are required")
	ErrBadPhone        = errors.New("contact number must be exactly 7 digits")
	ErrDOBInFuture     = errors.New("date of birth cannot be in the future")
	ErrDOBTooOld       = errors.New("age must be less than 150 years")
	ErrEmailRequired   = errors.New("email is required")
	ErrDuplicateEmail  = errors.New("a patient with this email already exists")
	ErrPatientNotFound = errors.New("patient not found")
)

var phonePattern = regexp.MustCompile(`^\d{7}$`)

type Patient struct {
	ID                int64
	FirstName         string
	LastName          string
	Address           string
	PhoneContact      string
	EmergencyContact  string
	DOB               time.Time
	Email             string
	MedicalConditions *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Validate applies the intake form rules. today is the current date in the
// hospital's time zone.
func (p *Patient) Validate(today time.Time) error {
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return ErrNameRequired
	}
	if len(p.FirstName) > 25 || len(p.LastName) > 25 {
		return ErrNameTooLong
	}
	if !phonePattern.MatchString(p.PhoneContact) || !phonePattern.MatchString(p.EmergencyContact) {
		return ErrBadPhone
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmailRequired
	}
	return validateDOB(p.DOB, today)
}

func validateDOB(dob, today time.Time) error {
	dy, dm, dd := dob.Date()
	ty, tm, td := today.Date()

	if dy > ty || (dy == ty && (dm > tm || (dm == tm && dd > td))) {
		return ErrDOBInFuture
	}

	age := ty - dy
	if tm < dm || (tm == dm && td < dd) {
		age--
	}
	if age > 150 {
		return ErrDOBTooOld
	}
	return nil
}

package visit

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrVisitNotFound    = errors.New("visit not found")
	ErrPatientUnknown   = errors.New("no patient found with the provided id")
	ErrDoctorUnknown    = errors.New("no doctor found with the provided id")
	ErrBadBloodPressure = errors.New("blood pressure must be in systolic/diastolic format")
	ErrBadTemperature   = errors.New("temperature is out of range")
)

// bloodPressurePattern accepts readings like 120/80.
var bloodPressurePattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)

const (
	DefaultTemperature   = 36.6
	DefaultBloodPressure = "120/80"
)

type Visit struct {
	ID            int64
	PatientID     int64
	DoctorID      int64
	NurseID       int64
	VisitTime     time.Time
	Weight        *float64 // kg
	Temperature   float64  // °C
	BloodPressure string
	DoctorNotes   *string
}

type VisitDetail struct {
	Visit
	PatientName string
	NurseName   string
}

func validateVitals(temperature float64, bloodPressure string) error {
	if temperature < 25 || temperature > 45 {
		return ErrBadTemperature
	}
	if !bloodPressurePattern.MatchString(bloodPressure) {
		return ErrBadBloodPressure
	}
	return nil
}

package api

import (
	"time"

	"github.com/smartward/hospital-backend/internal/appointment"
	"github.com/smartward/hospital-backend/internal/identity"
	"github.com/smartward/hospital-backend/internal/patient"
	"github.com/smartward/hospital-backend/internal/visit"
)

const dateLayout = "2006-01-02"

// Identity

type RegisterRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IDNumber  string `json:"id_number"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID             int64   `json:"id"`
	Username       string  `json:"username"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	IDNumber       string  `json:"id_number"`
	Role           string  `json:"role"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		IDNumber:       u.IDNumber,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
	}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	Dashboard string       `json:"dashboard"`
	User      UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	Email               string  `json:"email"`
	ProfilePicture      *string `json:"profile_picture,omitempty"`
	ClearProfilePicture bool    `json:"clear_profile_picture,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Shifts

type CreateShiftRequest struct {
	DoctorID  int64     `json:"doctor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ShiftResponse struct {
	ID         int64     `json:"id"`
	DoctorID   int64     `json:"doctor_id"`
	DoctorName string    `json:"doctor_name,omitempty"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// Slots

type CreateDoctorSlotRequest struct {
	DoctorID  int64  `json:"doctor_id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

type DoctorSlotResponse struct {
	ID         int64  `json:"id"`
	DoctorID   int64  `json:"doctor_id"`
	DoctorName string `json:"doctor_name,omitempty"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func toDoctorSlotResponse(s *appointment.DoctorSlot) DoctorSlotResponse {
	return DoctorSlotResponse{
		ID:        s.ID,
		DoctorID:  s.DoctorID,
		Date:      s.Date.Format(dateLayout),
		StartTime: s.Start.String(),
		EndTime:   s.End.String(),
	}
}

type SpecializedTypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateSpecializedSlotRequest struct {
	TypeID    int64  `json:"type_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SpecializedSlotResponse struct {
	ID        int64  `json:"id"`
	TypeID    int64  `json:"type_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toSpecializedSlotResponse(s *appointment.SpecializedSlot) SpecializedSlotResponse {
	return SpecializedSlotResponse{
		ID:        s.ID,
		TypeID:    s.TypeID,
		Date:      s.Date.Format(dateLayout),
		StartTime: s.Start.String(),
		EndTime:   s.End.String(),
	}
}

// Bookings

type BookAppointmentRequest struct {
	PatientID int64 `json:"patient_id"`
	SlotID    int64 `json:"slot_id"`
}

type DoctorBookingResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DoctorID    int64     `json:"doctor_id"`
	SlotID      int64     `json:"slot_id"`
	BookedAt    time.Time `json:"booked_at"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Date        string    `json:"date,omitempty"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
}

func toDoctorBookingDetailResponse(d *appointment.DoctorBookingDetail) DoctorBookingResponse {
	return DoctorBookingResponse{
		ID:          d.ID,
		PatientID:   d.PatientID,
		DoctorID:    d.DoctorID,
		SlotID:      d.SlotID,
		BookedAt:    d.BookedAt,
		PatientName: d.PatientName,
		DoctorName:  d.DoctorName,
		Date:        d.Slot.Date.Format(dateLayout),
		StartTime:   d.Slot.Start.String(),
		EndTime:     d.Slot.End.String(),
	}
}

type SpecializedBookingResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	SlotID      int64     `json:"slot_id"`
	BookedAt    time.Time `json:"booked_at"`
	PatientName string    `json:"patient_name,omitempty"`
	TypeName    string    `json:"type_name,omitempty"`
	Date        string    `json:"date,omitempty"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
}

func toSpecializedBookingDetailResponse(d *appointment.SpecializedBookingDetail) SpecializedBookingResponse {
	return SpecializedBookingResponse{
		ID:          d.ID,
		PatientID:   d.PatientID,
		SlotID:      d.SlotID,
		BookedAt:    d.BookedAt,
		PatientName: d.PatientName,
		TypeName:    d.TypeName,
		Date:        d.Slot.Date.Format(dateLayout),
		StartTime:   d.Slot.Start.String(),
		EndTime:     d.Slot.End.String(),
	}
}

// Patients

type PatientRequest struct {
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Address           string  `json:"address"`
	PhoneContact      string  `json:"phone_contact"`
	EmergencyContact  string  `json:"emergency_contact"`
	DOB               string  `json:"dob"` // YYYY-MM-DD
	Email             string  `json:"email"`
	MedicalConditions *string `json:"medical_conditions,omitempty"`
}

type PatientResponse struct {
	ID                int64   `json:"id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Address           string  `json:"address"`
	PhoneContact      string  `json:"phone_contact"`
	EmergencyContact  string  `json:"emergency_contact"`
	DOB               string  `json:"dob"`
	Email             string  `json:"email"`
	MedicalConditions *string `json:"medical_conditions,omitempty"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Address:           p.Address,
		PhoneContact:      p.PhoneContact,
		EmergencyContact:  p.EmergencyContact,
		DOB:               p.DOB.Format(dateLayout),
		Email:             p.Email,
		MedicalConditions: p.MedicalConditions,
	}
}

type PatientListResponse struct {
	Patients   []PatientResponse `json:"patients"`
	Suggestion string            `json:"suggestion,omitempty"`
}

// Visits

type CreateVisitRequest struct {
	DoctorID      int64    `json:"doctor_id"`
	Weight        *float64 `json:"weight,omitempty"`
	Temperature   float64  `json:"temperature,omitempty"`
	BloodPressure string   `json:"blood_pressure,omitempty"`
}

type VisitResponse struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patient_id"`
	DoctorID      int64     `json:"doctor_id"`
	NurseID       int64     `json:"nurse_id"`
	VisitTime     time.Time `json:"visit_time"`
	Weight        *float64  `json:"weight,omitempty"`
	Temperature   float64   `json:"temperature"`
	BloodPressure string    `json:"blood_pressure"`
	DoctorNotes   *string   `json:"doctor_notes,omitempty"`
	PatientName   string    `json:"patient_name,omitempty"`
	NurseName     string    `json:"nurse_name,omitempty"`
}

func toVisitResponse(v *visit.Visit) VisitResponse {
	return VisitResponse{
		ID:            v.ID,
		PatientID:     v.PatientID,
		DoctorID:      v.DoctorID,
		NurseID:       v.NurseID,
		VisitTime:     v.VisitTime,
		Weight:        v.Weight,
		Temperature:   v.Temperature,
		BloodPressure: v.BloodPressure,
		DoctorNotes:   v.DoctorNotes,
	}
}

type VisitListResponse struct {
	Visits     []VisitResponse `json:"visits"`
	Suggestion string          `json:"suggestion,omitempty"`
}

type AttachNotesRequest struct {
	Notes string `json:"notes"`
}

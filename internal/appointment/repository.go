package appointment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrShiftNotFound   = errors.New("shift not found")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrTypeNotFound    = errors.New("appointment type not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// Reference lookups
	GetDoctorByID(ctx context.Context, id int64) (*Doctor, error)
	PatientExists(ctx context.Context, id int64) (bool, error)

	// Shifts
	CreateShift(ctx context.Context, doctorID int64, start, end time.Time) (*Shift, error)
	ListShiftsByDoctor(ctx context.Context, doctorID int64) ([]Shift, error)
	ListUpcomingShiftsByDoctor(ctx context.Context, doctorID int64, now time.Time) ([]Shift, error)
	ListAllShifts(ctx context.Context) ([]ShiftDetail, error)

	// Doctor slots
	CreateDoctorSlot(ctx context.Context, doctorID int64, date time.Time, start, end TimeOfDay) (*DoctorSlot, error)
	GetDoctorSlotByID(ctx context.Context, id int64) (*DoctorSlot, error)
	DeleteDoctorSlot(ctx context.Context, id int64) error
	// ListOpenDoctorSlots returns slots dated from or after the given day
	// that have no booking attached.
	ListOpenDoctorSlots(ctx context.Context, from time.Time) ([]DoctorSlotDetail, error)

	// Specialized types and slots
	ListSpecializedTypes(ctx context.Context) ([]SpecializedType, error)
	GetSpecializedTypeByID(ctx context.Context, id int64) (*SpecializedType, error)
	CreateSpecializedSlot(ctx context.Context, typeID int64, date time.Time, start, end TimeOfDay) (*SpecializedSlot, error)
	GetSpecializedSlotByID(ctx context.Context, id int64) (*SpecializedSlot, error)
	ListOpenSpecializedSlots(ctx context.Context, typeID int64, from time.Time) ([]SpecializedSlot, error)

	// Doctor bookings; used for conflict checks and cancellation
	GetDoctorBookingForSlot(ctx context.Context, slotID int64) (*DoctorBooking, error)
	CreateDoctorBooking(ctx context.Context, patientID, doctorID, slotID int64) (*DoctorBooking, error)
	GetDoctorBookingDetail(ctx context.Context, id int64) (*DoctorBookingDetail, error)
	DeleteDoctorBooking(ctx context.Context, id int64) error
	ListUpcomingDoctorBookings(ctx context.Context, from time.Time) ([]DoctorBookingDetail, error)
	// ListDoctorBookingsForDoctor excludes bookings whose slot ended before
	// the cutoff instant.
	ListDoctorBookingsForDoctor(ctx context.Context, doctorID int64, cutoff time.Time) ([]DoctorBookingDetail, error)

	// Specialized bookings
	GetSpecializedBookingForSlot(ctx context.Context, slotID int64) (*SpecializedBooking, error)
	CreateSpecializedBooking(ctx context.Context, patientID, slotID int64) (*SpecializedBooking, error)
	GetSpecializedBookingDetail(ctx context.Context, id int64) (*SpecializedBookingDetail, error)
	DeleteSpecializedBooking(ctx context.Context, id int64) error
	// ListUpcomingSpecializedBookings excludes bookings whose slot ended
	// before the cutoff instant.
	ListUpcomingSpecializedBookings(ctx context.Context, cutoff time.Time) ([]SpecializedBookingDetail, error)

	// Expiry sweeper
	DeleteExpiredDoctorBookings(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteExpiredDoctorSlots(ctx context.Context, today time.Time, cutoff TimeOfDay) (int64, error)
}

package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/smartward/hospital-backend/internal/redis"
)

const (
	lockKindDoctor      = "doctor"
	lockKindSpecialized = "specialized"
)

var (
	ErrSlotAlreadyBooked = errors.New("slot already has a booking")
	ErrSlotBeingBooked   = errors.New("slot is currently being booked, please retry")
	ErrPatientUnknown    = errors.New("no patient found with the provided id")
)

type Service struct {
	repo        Repository
	locker      redisclient.Locker
	loc         *time.Location
	maxSlot     time.Duration
	gracePeriod time.Duration
	now         func() time.Time
}

func NewService(repo Repository, locker redisclient.Locker, loc *time.Location, maxSlot, gracePeriod time.Duration) *Service {
	return &Service{
		repo:        repo,
		locker:      locker,
		loc:         loc,
		maxSlot:     maxSlot,
		gracePeriod: gracePeriod,
		now:         time.Now,
	}
}

func (s *Service) localNow() time.Time {
	return s.now().In(s.loc)
}

// today returns midnight of the current day in the hospital time zone.
func (s *Service) today() time.Time {
	y, m, d := s.localNow().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// Shifts

func (s *Service) CreateShift(ctx context.Context, doctorID int64, start, end time.Time) (*Shift, error) {
	if !start.Before(end) {
		return nil, ErrEndNotAfterStart
	}
	if _, err := s.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.CreateShift(ctx, doctorID, start, end)
}

// UpcomingShifts feeds the doctor dashboard: shifts that have not started
// yet, soonest first.
func (s *Service) UpcomingShifts(ctx context.Context, doctorID int64) ([]Shift, error) {
	return s.repo.ListUpcomingShiftsByDoctor(ctx, doctorID, s.localNow())
}

func (s *Service) AllShifts(ctx context.Context) ([]ShiftDetail, error) {
	return s.repo.ListAllShifts(ctx)
}

// Doctor slots

func (s *Service) CreateDoctorSlot(ctx context.Context, doctorID int64, date time.Time, start, end TimeOfDay) (*DoctorSlot, error) {
	if _, err := s.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}

	shifts, err := s.repo.ListShiftsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}

	if err := validateDoctorSlot(shifts, date, start, end, s.localNow(), s.loc, s.maxSlot); err != nil {
		return nil, err
	}

	return s.repo.CreateDoctorSlot(ctx, doctorID, date, start, end)
}

func (s *Service) DeleteDoctorSlot(ctx context.Context, id int64) error {
	return s.repo.DeleteDoctorSlot(ctx, id)
}

// OpenDoctorSlots lists the bookable candidates: future-dated slots with no
// booking attached.
func (s *Service) OpenDoctorSlots(ctx context.Context) ([]DoctorSlotDetail, error) {
	return s.repo.ListOpenDoctorSlots(ctx, s.today())
}

// Specialized types and slots

func (s *Service) SpecializedTypes(ctx context.Context) ([]SpecializedType, error) {
	return s.repo.ListSpecializedTypes(ctx)
}

func (s *Service) CreateSpecializedSlot(ctx context.Context, typeID int64, date time.Time, start, end TimeOfDay) (*SpecializedSlot, error) {
	if start.Minutes() >= end.Minutes() {
		return nil, ErrEndNotAfterStart
	}
	if _, err := s.repo.GetSpecializedTypeByID(ctx, typeID); err != nil {
		return nil, err
	}
	return s.repo.CreateSpecializedSlot(ctx, typeID, date, start, end)
}

func (s *Service) OpenSpecializedSlots(ctx context.Context, typeID int64) ([]SpecializedSlot, error) {
	if _, err := s.repo.GetSpecializedTypeByID(ctx, typeID); err != nil {
		return nil, err
	}
	return s.repo.ListOpenSpecializedSlots(ctx, typeID, s.today())
}

// Bookings

// BookDoctorSlot reserves a slot for a patient. The check-and-insert runs
// under a per-slot lock so concurrent receptionists cannot both pass the
// conflict check; the unique index on slot_id backstops the race.
func (s *Service) BookDoctorSlot(ctx context.Context, patientID, slotID int64) (*DoctorBooking, error) {
	exists, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return nil, ErrPatientUnknown
	}

	slot, err := s.repo.GetDoctorSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Date.Format("2006-01-02") < s.today().Format("2006-01-02") {
		return nil, ErrSlotInPast
	}

	var created *DoctorBooking

	err = s.locker.WithSlotLock(ctx, lockKindDoctor, slotID, func(lockCtx context.Context) error {
		existing, err := s.repo.GetDoctorBookingForSlot(lockCtx, slotID)
		if err != nil && !errors.Is(err, ErrBookingNotFound) {
			return fmt.Errorf("check existing booking: %w", err)
		}
		if existing != nil {
			return ErrSlotAlreadyBooked
		}

		booking, err := s.repo.CreateDoctorBooking(lockCtx, patientID, slot.DoctorID, slotID)
		if err != nil {
			return err
		}
		created = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	return created, nil
}

func (s *Service) BookSpecializedSlot(ctx context.Context, patientID, slotID int64) (*SpecializedBooking, error) {
	exists, err := s.repo.PatientExists(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return nil, ErrPatientUnknown
	}

	slot, err := s.repo.GetSpecializedSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Date.Format("2006-01-02") < s.today().Format("2006-01-02") {
		return nil, ErrSlotInPast
	}

	var created *SpecializedBooking

	err = s.locker.WithSlotLock(ctx, lockKindSpecialized, slotID, func(lockCtx context.Context) error {
		existing, err := s.repo.GetSpecializedBookingForSlot(lockCtx, slotID)
		if err != nil && !errors.Is(err, ErrBookingNotFound) {
			return fmt.Errorf("check existing booking: %w", err)
		}
		if existing != nil {
			return ErrSlotAlreadyBooked
		}

		booking, err := s.repo.CreateSpecializedBooking(lockCtx, patientID, slotID)
		if err != nil {
			return err
		}
		created = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	return created, nil
}

func (s *Service) CancelDoctorBooking(ctx context.Context, id int64) error {
	return s.repo.DeleteDoctorBooking(ctx, id)
}

func (s *Service) CancelSpecializedBooking(ctx context.Context, id int64) error {
	return s.repo.DeleteSpecializedBooking(ctx, id)
}

func (s *Service) DoctorBookingDetail(ctx context.Context, id int64) (*DoctorBookingDetail, error) {
	return s.repo.GetDoctorBookingDetail(ctx, id)
}

func (s *Service) SpecializedBookingDetail(ctx context.Context, id int64) (*SpecializedBookingDetail, error) {
	return s.repo.GetSpecializedBookingDetail(ctx, id)
}

func (s *Service) UpcomingDoctorBookings(ctx context.Context) ([]DoctorBookingDetail, error) {
	return s.repo.ListUpcomingDoctorBookings(ctx, s.today())
}

// DoctorBookingsForDoctor lists a doctor's own bookings, hiding those whose
// slot ended more than the grace period ago.
func (s *Service) DoctorBookingsForDoctor(ctx context.Context, doctorID int64) ([]DoctorBookingDetail, error) {
	cutoff := s.localNow().Add(-s.gracePeriod)
	return s.repo.ListDoctorBookingsForDoctor(ctx, doctorID, cutoff)
}

// UpcomingSpecializedBookings hides bookings whose slot ended more than the
// grace period ago, matching the doctor's own listing.
func (s *Service) UpcomingSpecializedBookings(ctx context.Context) ([]SpecializedBookingDetail, error) {
	cutoff := s.localNow().Add(-s.gracePeriod)
	return s.repo.ListUpcomingSpecializedBookings(ctx, cutoff)
}

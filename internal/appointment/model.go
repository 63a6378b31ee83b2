package appointment

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date, as stored in the slot
// tables' time columns.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Sub returns the elapsed time from u to t as a true duration, not a
// component-wise hour/minute difference.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t.Minutes()-u.Minutes()) * time.Minute
}

// On anchors the time of day to a calendar date in the given location.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, loc)
}

// Doctor is the slice of the user record the scheduling side needs.
type Doctor struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

func (d *Doctor) DisplayName() string {
	if d.FirstName == "" && d.LastName == "" {
		return d.Username
	}
	return d.FirstName + " " + d.LastName
}

// Shift is a doctor's declared availability window. Slots must nest inside
// a single shift.
type Shift struct {
	ID        int64
	DoctorID  int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

func (s *Shift) Active(now time.Time) bool {
	return !now.Before(s.StartTime) && !now.After(s.EndTime)
}

type ShiftDetail struct {
	Shift
	DoctorName string
}

type DoctorSlot struct {
	ID        int64
	DoctorID  int64
	Date      time.Time // date only
	Start     TimeOfDay
	End       TimeOfDay
	CreatedAt time.Time
}

// StartAt and EndAt anchor the slot to instants in the hospital time zone.
func (s *DoctorSlot) StartAt(loc *time.Location) time.Time {
	return s.Start.On(s.Date, loc)
}

func (s *DoctorSlot) EndAt(loc *time.Location) time.Time {
	return s.End.On(s.Date, loc)
}

type DoctorSlotDetail struct {
	DoctorSlot
	DoctorName string
}

// SpecializedType is static reference data (X-ray, physiotherapy, ...).
type SpecializedType struct {
	ID          int64
	Name        string
	Description *string
}

type SpecializedSlot struct {
	ID        int64
	TypeID    int64
	Date      time.Time
	Start     TimeOfDay
	End       TimeOfDay
	CreatedAt time.Time
}

type SpecializedSlotDetail struct {
	SpecializedSlot
	TypeName string
}

// DoctorBooking links a patient to a doctor slot. At most one booking may
// reference a slot; the storage layer enforces this.
type DoctorBooking struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	SlotID    int64
	BookedAt  time.Time
}

type DoctorBookingDetail struct {
	DoctorBooking
	PatientName string
	DoctorName  string
	Slot        DoctorSlot
}

type SpecializedBooking struct {
	ID        int64
	PatientID int64
	SlotID    int64
	BookedAt  time.Time
}

type SpecializedBookingDetail struct {
	SpecializedBooking
	PatientName string
	TypeName    string
	Slot        SpecializedSlot
}

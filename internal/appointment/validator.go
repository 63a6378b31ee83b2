package appointment

import (
	"errors"
	"time"
)

var (
	ErrEndNotAfterStart = errors.New("end time must be after start time")
	ErrSlotInPast       = errors.New("the slot cannot be in the past")
	ErrSlotTooLong      = errors.New("the slot duration exceeds the maximum")
	ErrNoShifts         = errors.New("the doctor does not have any shifts defined")
	ErrOutsideShift     = errors.New("the slot must be within the doctor's shift time")
)

// validateDoctorSlot decides whether a candidate slot is acceptable:
//
//   - start must precede end, and the elapsed duration must not exceed
//     maxDuration (true wall-clock difference, not a component-wise
//     hour/minute subtraction);
//   - the slot's start instant must not be before now;
//   - one single shift of the doctor must contain the whole slot:
//     shift.start <= slotStart < shift.end and
//     shift.start <  slotEnd  <= shift.end.
//
// now must already be in the hospital's time zone; loc anchors the slot's
// date and times to instants.
func validateDoctorSlot(shifts []Shift, date time.Time, start, end TimeOfDay, now time.Time, loc *time.Location, maxDuration time.Duration) error {
	if start.Minutes() >= end.Minutes() {
		return ErrEndNotAfterStart
	}
	if end.Sub(start) > maxDuration {
		return ErrSlotTooLong
	}

	slotStart := start.On(date, loc)
	slotEnd := end.On(date, loc)

	if slotStart.Before(now) {
		return ErrSlotInPast
	}

	if len(shifts) == 0 {
		return ErrNoShifts
	}

	for _, shift := range shifts {
		startInside := !slotStart.Before(shift.StartTime) && slotStart.Before(shift.EndTime)
		endInside := shift.StartTime.Before(slotEnd) && !slotEnd.After(shift.EndTime)
		if startInside && endInside {
			return nil
		}
	}

	return ErrOutsideShift
}

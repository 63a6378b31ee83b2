package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestValidateDoctorSlot(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)

	shift := func(from, to int) Shift {
		return Shift{
			DoctorID:  1,
			StartTime: time.Date(2026, 3, 2, from, 0, 0, 0, loc),
			EndTime:   time.Date(2026, 3, 2, to, 0, 0, 0, loc),
		}
	}

	tests := []struct {
		name    string
		shifts  []Shift
		start   string
		end     string
		wantErr error
	}{
		{
			name:   "slot nested in shift",
			shifts: []Shift{shift(8, 12)},
			start:  "09:00",
			end:    "09:30",
		},
		{
			name:   "slot ending exactly at shift end",
			shifts: []Shift{shift(8, 12)},
			start:  "11:30",
			end:    "12:00",
		},
		{
			name:    "end not after start",
			shifts:  []Shift{shift(8, 12)},
			start:   "09:30",
			end:     "09:30",
			wantErr: ErrEndNotAfterStart,
		},
		{
			name:    "longer than thirty minutes",
			shifts:  []Shift{shift(8, 12)},
			start:   "09:00",
			end:     "09:45",
			wantErr: ErrSlotTooLong,
		},
		{
			name:    "start before now",
			shifts:  []Shift{shift(7, 12)},
			start:   "07:00",
			end:     "07:30",
			wantErr: ErrSlotInPast,
		},
		{
			name:    "no shifts defined",
			shifts:  nil,
			start:   "09:00",
			end:     "09:30",
			wantErr: ErrNoShifts,
		},
		{
			name:    "overhangs shift end",
			shifts:  []Shift{shift(8, 12)},
			start:   "11:45",
			end:     "12:15",
			wantErr: ErrOutsideShift,
		},
		{
			name:    "entirely outside shift",
			shifts:  []Shift{shift(8, 12)},
			start:   "13:00",
			end:     "13:30",
			wantErr: ErrOutsideShift,
		},
		{
			name:    "spans two back-to-back shifts",
			shifts:  []Shift{shift(8, 10), shift(10, 12)},
			start:   "09:45",
			end:     "10:15",
			wantErr: ErrOutsideShift,
		},
		{
			name:   "fits the second of two shifts",
			shifts: []Shift{shift(8, 10), shift(10, 12)},
			start:  "10:30",
			end:    "11:00",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateDoctorSlot(tc.shifts, date, mustTime(t, tc.start), mustTime(t, tc.end), now, loc, 30*time.Minute)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDoctorSlotCrossesMidnightBudget(t *testing.T) {
	// 23:50 to 00:10 reads as a negative elapsed duration, so it is rejected
	// as end-not-after-start rather than silently accepted.
	loc := time.UTC
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, loc)

	err := validateDoctorSlot(
		[]Shift{{StartTime: now, EndTime: now.Add(18 * time.Hour)}},
		date, TimeOfDay{Hour: 23, Minute: 50}, TimeOfDay{Hour: 0, Minute: 10},
		now, loc, 30*time.Minute,
	)
	assert.ErrorIs(t, err, ErrEndNotAfterStart)
}

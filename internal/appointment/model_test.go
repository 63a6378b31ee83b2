package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{in: "9:05", want: TimeOfDay{Hour: 9, Minute: 5}},
		{in: "14:00:00", want: TimeOfDay{Hour: 14, Minute: 0}},
		{in: "24:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "morning", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "23:59", TimeOfDay{Hour: 23, Minute: 59}.String())
}

func TestTimeOfDaySubIsElapsedTime(t *testing.T) {
	// 09:50 to 10:20 is 30 minutes even though the minute component of the
	// end is smaller than the start's.
	start := TimeOfDay{Hour: 9, Minute: 50}
	end := TimeOfDay{Hour: 10, Minute: 20}
	assert.Equal(t, 30*time.Minute, end.Sub(start))

	assert.Equal(t, 45*time.Minute, TimeOfDay{Hour: 9, Minute: 45}.Sub(TimeOfDay{Hour: 9, Minute: 0}))
}

func TestTimeOfDayOn(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Fiji")
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := TimeOfDay{Hour: 9, Minute: 30}.On(date, loc)

	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.March, at.Month())
	assert.Equal(t, 2, at.Day())
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, loc, at.Location())
}

func TestShiftActive(t *testing.T) {
	shift := Shift{
		StartTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}

	assert.True(t, shift.Active(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)))
	assert.True(t, shift.Active(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)))
	assert.False(t, shift.Active(time.Date(2026, 3, 2, 7, 59, 0, 0, time.UTC)))
	assert.False(t, shift.Active(time.Date(2026, 3, 2, 12, 1, 0, 0, time.UTC)))
}

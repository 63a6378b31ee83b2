package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConfirmation(t *testing.T) {
	data, err := RenderConfirmation(Confirmation{
		BookingID:   17,
		PatientName: "Josefa Naulu",
		Provider:    "Dr. Mere Vakatale",
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Start:       "09:00",
		End:         "09:30",
		BookedAt:    time.Date(2026, 2, 27, 14, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// A PDF file always opens with this magic marker.
	assert.Equal(t, "%PDF", string(data[:4]))
}

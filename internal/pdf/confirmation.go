package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Confirmation holds everything printed on a booking confirmation sheet.
// Provider is the doctor's name for doctor bookings and the appointment
// type name for specialized ones.
type Confirmation struct {
	BookingID   int64
	PatientName string
	Provider    string
	Date        time.Time
	Start       string
	End         string
	BookedAt    time.Time
}

// RenderConfirmation produces the downloadable confirmation document.
func RenderConfirmation(c Confirmation) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Appointment %d", c.BookingID), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 12, "Appointment Confirmation")
	doc.Ln(16)

	doc.SetFont("Helvetica", "", 11)
	doc.SetTextColor(90, 90, 90)
	doc.Cell(0, 6, fmt.Sprintf("Booking reference: %d", c.BookingID))
	doc.Ln(10)
	doc.SetTextColor(0, 0, 0)

	rows := [][2]string{
		{"Patient", c.PatientName},
		{"Appointment with", c.Provider},
		{"Date", c.Date.Format("02/01/2006")},
		{"Time", c.Start + " - " + c.End},
		{"Booked at", c.BookedAt.Format("02/01/2006 03:04 PM")},
	}

	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(45, 8, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(120, 120, 120)
	doc.MultiCell(0, 5, "Please arrive 10 minutes before your appointment. Bring this confirmation and a valid ID.", "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/smartward/hospital-backend/internal/appointment"
	"github.com/smartward/hospital-backend/internal/pdf"
)

func handleSlotError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, appointment.ErrTypeNotFound):
		writeError(w, http.StatusNotFound, "type_not_found", err.Error())
	case errors.Is(err, appointment.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, appointment.ErrEndNotAfterStart),
		errors.Is(err, appointment.ErrSlotInPast),
		errors.Is(err, appointment.ErrSlotTooLong),
		errors.Is(err, appointment.ErrNoShifts),
		errors.Is(err, appointment.ErrOutsideShift):
		writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrPatientUnknown):
		writeError(w, http.StatusBadRequest, "patient_unknown", err.Error())
	case errors.Is(err, appointment.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, appointment.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "booking_not_found", err.Error())
	case errors.Is(err, appointment.ErrSlotInPast):
		writeError(w, http.StatusBadRequest, "slot_in_past", err.Error())
	case errors.Is(err, appointment.ErrSlotAlreadyBooked):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	case errors.Is(err, appointment.ErrSlotBeingBooked):
		writeError(w, http.StatusConflict, "slot_being_booked", "slot is currently being booked, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// Shifts

func createShiftHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		shift, err := svc.CreateShift(r.Context(), req.DoctorID, req.StartTime, req.EndTime)
		if err != nil {
			handleSlotError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ShiftResponse{
			ID:        shift.ID,
			DoctorID:  shift.DoctorID,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
		})
	}
}

func listShiftsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shifts, err := svc.AllShifts(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ShiftResponse, 0, len(shifts))
		for _, s := range shifts {
			resp = append(resp, ShiftResponse{
				ID:         s.ID,
				DoctorID:   s.DoctorID,
				DoctorName: s.DoctorName,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func myShiftsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		shifts, err := svc.UpcomingShifts(r.Context(), doctorID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ShiftResponse, 0, len(shifts))
		for _, s := range shifts {
			resp = append(resp, ShiftResponse{
				ID:        s.ID,
				DoctorID:  s.DoctorID,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Doctor slots

func parseSlotTimes(dateStr, startStr, endStr string) (time.Time, appointment.TimeOfDay, appointment.TimeOfDay, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, appointment.TimeOfDay{}, appointment.TimeOfDay{}, errors.New("date must be in YYYY-MM-DD format")
	}
	start, err := appointment.ParseTimeOfDay(startStr)
	if err != nil {
		return time.Time{}, appointment.TimeOfDay{}, appointment.TimeOfDay{}, err
	}
	end, err := appointment.ParseTimeOfDay(endStr)
	if err != nil {
		return time.Time{}, appointment.TimeOfDay{}, appointment.TimeOfDay{}, err
	}
	return date, start, end, nil
}

func createDoctorSlotHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDoctorSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		date, start, end, err := parseSlotTimes(req.Date, req.StartTime, req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}

		slot, err := svc.CreateDoctorSlot(r.Context(), req.DoctorID, date, start, end)
		if err != nil {
			handleSlotError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDoctorSlotResponse(slot))
	}
}

func deleteDoctorSlotHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", "id must be a positive integer")
			return
		}

		if err := svc.DeleteDoctorSlot(r.Context(), id); err != nil {
			handleSlotError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listOpenSlotsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := svc.OpenDoctorSlots(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]DoctorSlotResponse, 0, len(slots))
		for i := range slots {
			sr := toDoctorSlotResponse(&slots[i].DoctorSlot)
			sr.DoctorName = slots[i].DoctorName
			resp = append(resp, sr)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Specialized types and slots

func listSpecializedTypesHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.SpecializedTypes(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]SpecializedTypeResponse, 0, len(types))
		for _, t := range types {
			resp = append(resp, SpecializedTypeResponse{ID: t.ID, Name: t.Name, Description: t.Description})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func createSpecializedSlotHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSpecializedSlotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		date, start, end, err := parseSlotTimes(req.Date, req.StartTime, req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}

		slot, err := svc.CreateSpecializedSlot(r.Context(), req.TypeID, date, start, end)
		if err != nil {
			handleSlotError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toSpecializedSlotResponse(slot))
	}
}

func listOpenSpecializedSlotsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_type_id", "id must be a positive integer")
			return
		}

		slots, err := svc.OpenSpecializedSlots(r.Context(), typeID)
		if err != nil {
			handleSlotError(w, err)
			return
		}

		resp := make([]SpecializedSlotResponse, 0, len(slots))
		for i := range slots {
			resp = append(resp, toSpecializedSlotResponse(&slots[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Bookings

func bookAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		booking, err := svc.BookDoctorSlot(r.Context(), req.PatientID, req.SlotID)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, DoctorBookingResponse{
			ID:        booking.ID,
			PatientID: booking.PatientID,
			DoctorID:  booking.DoctorID,
			SlotID:    booking.SlotID,
			BookedAt:  booking.BookedAt,
		})
	}
}

func listUpcomingBookingsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := svc.UpcomingDoctorBookings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]DoctorBookingResponse, 0, len(bookings))
		for i := range bookings {
			resp = append(resp, toDoctorBookingDetailResponse(&bookings[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func myAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := CurrentUserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", "authentication required")
			return
		}

		bookings, err := svc.DoctorBookingsForDoctor(r.Context(), doctorID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]DoctorBookingResponse, 0, len(bookings))
		for i := range bookings {
			resp = append(resp, toDoctorBookingDetailResponse(&bookings[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func cancelBookingHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a positive integer")
			return
		}

		if err := svc.CancelDoctorBooking(r.Context(), id); err != nil {
			handleBookingError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func bookSpecializedHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		booking, err := svc.BookSpecializedSlot(r.Context(), req.PatientID, req.SlotID)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, SpecializedBookingResponse{
			ID:        booking.ID,
			PatientID: booking.PatientID,
			SlotID:    booking.SlotID,
			BookedAt:  booking.BookedAt,
		})
	}
}

func listUpcomingSpecializedHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := svc.UpcomingSpecializedBookings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]SpecializedBookingResponse, 0, len(bookings))
		for i := range bookings {
			resp = append(resp, toSpecializedBookingDetailResponse(&bookings[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func cancelSpecializedHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a positive integer")
			return
		}

		if err := svc.CancelSpecializedBooking(r.Context(), id); err != nil {
			handleBookingError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PDF export

// servePDF writes the rendered confirmation as a download. Generation
// failure produces a plain-text error body instead of a PDF.
func servePDF(w http.ResponseWriter, bookingID int64, c pdf.Confirmation) {
	data, err := pdf.RenderConfirmation(c)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "Error generating PDF: %v", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="appointment_%d.pdf"`, bookingID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func bookingPDFHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a positive integer")
			return
		}

		detail, err := svc.DoctorBookingDetail(r.Context(), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		servePDF(w, detail.ID, pdf.Confirmation{
			BookingID:   detail.ID,
			PatientName: detail.PatientName,
			Provider:    "Dr. " + detail.DoctorName,
			Date:        detail.Slot.Date,
			Start:       detail.Slot.Start.String(),
			End:         detail.Slot.End.String(),
			BookedAt:    detail.BookedAt,
		})
	}
}

func specializedPDFHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a positive integer")
			return
		}

		detail, err := svc.SpecializedBookingDetail(r.Context(), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		servePDF(w, detail.ID, pdf.Confirmation{
			BookingID:   detail.ID,
			PatientName: detail.PatientName,
			Provider:    detail.TypeName,
			Date:        detail.Slot.Date,
			Start:       detail.Slot.Start.String(),
			End:         detail.Slot.End.String(),
			BookedAt:    detail.BookedAt,
		})
	}
}

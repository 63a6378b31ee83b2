package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

const dateFormat = "2006-01-02"
const naiveFormat = "2006-01-02 15:04:05"

func scanShift(row pgx.Row) (*Shift, error) {
	var s Shift
	err := row.Scan(&s.ID, &s.DoctorID, &s.StartTime, &s.EndTime, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return &s, nil
}

func scanTimes(startText, endText string) (TimeOfDay, TimeOfDay, error) {
	start, err := ParseTimeOfDay(startText)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	end, err := ParseTimeOfDay(endText)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	return start, end, nil
}

func scanDoctorSlot(row pgx.Row) (*DoctorSlot, error) {
	var s DoctorSlot
	var startText, endText string

	err := row.Scan(&s.ID, &s.DoctorID, &s.Date, &startText, &endText, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	s.Start, s.End, err = scanTimes(startText, endText)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSpecializedSlot(row pgx.Row) (*SpecializedSlot, error) {
	var s SpecializedSlot
	var startText, endText string

	err := row.Scan(&s.ID, &s.TypeID, &s.Date, &startText, &endText, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	s.Start, s.End, err = scanTimes(startText, endText)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Interface methods

func (r *PgRepository) GetDoctorByID(ctx context.Context, id int64) (*Doctor, error) {
	var d Doctor
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, first_name, last_name
		FROM users
		WHERE id = $1 AND role = 'doctor'
	`, id).Scan(&d.ID, &d.Username, &d.FirstName, &d.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *PgRepository) PatientExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PgRepository) CreateShift(ctx context.Context, doctorID int64, start, end time.Time) (*Shift, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO shifts (doctor_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, doctor_id, start_time, end_time, created_at
	`, doctorID, start, end)
	return scanShift(row)
}

func (r *PgRepository) ListShiftsByDoctor(ctx context.Context, doctorID int64) ([]Shift, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, start_time, end_time, created_at
		FROM shifts
		WHERE doctor_id = $1
		ORDER BY start_time
	`, doctorID)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func (r *PgRepository) ListUpcomingShiftsByDoctor(ctx context.Context, doctorID int64, now time.Time) ([]Shift, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, start_time, end_time, created_at
		FROM shifts
		WHERE doctor_id = $1 AND start_time > $2
		ORDER BY start_time
	`, doctorID, now)
	if err != nil {
		return nil, err
	}
	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]Shift, error) {
	defer rows.Close()

	var result []Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgRepository) ListAllShifts(ctx context.Context) ([]ShiftDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.doctor_id, s.start_time, s.end_time, s.created_at,
		       trim(u.first_name || ' ' || u.last_name)
		FROM shifts s
		JOIN users u ON u.id = s.doctor_id
		ORDER BY s.start_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShiftDetail
	for rows.Next() {
		var d ShiftDetail
		if err := rows.Scan(&d.ID, &d.DoctorID, &d.StartTime, &d.EndTime, &d.CreatedAt, &d.DoctorName); err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgRepository) CreateDoctorSlot(ctx context.Context, doctorID int64, date time.Time, start, end TimeOfDay) (*DoctorSlot, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctor_slots (doctor_id, slot_date, start_time, end_time, created_at)
		VALUES ($1, $2::date, $3::time, $4::time, now())
		RETURNING id, doctor_id, slot_date, start_time::text, end_time::text, created_at
	`, doctorID, date.Format(dateFormat), start.String(), end.String())
	return scanDoctorSlot(row)
}

func (r *PgRepository) GetDoctorSlotByID(ctx context.Context, id int64) (*DoctorSlot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, doctor_id, slot_date, start_time::text, end_time::text, created_at
		FROM doctor_slots
		WHERE id = $1
	`, id)
	return scanDoctorSlot(row)
}

func (r *PgRepository) DeleteDoctorSlot(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctor_slots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *PgRepository) ListOpenDoctorSlots(ctx context.Context, from time.Time) ([]DoctorSlotDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.doctor_id, s.slot_date, s.start_time::text, s.end_time::text, s.created_at,
		       trim(u.first_name || ' ' || u.last_name)
		FROM doctor_slots s
		JOIN users u ON u.id = s.doctor_id
		WHERE s.slot_date >= $1::date
		  AND NOT EXISTS (SELECT 1 FROM doctor_bookings b WHERE b.slot_id = s.id)
		ORDER BY s.slot_date, s.start_time
	`, from.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DoctorSlotDetail
	for rows.Next() {
		var d DoctorSlotDetail
		var startText, endText string
		if err := rows.Scan(&d.ID, &d.DoctorID, &d.Date, &startText, &endText, &d.CreatedAt, &d.DoctorName); err != nil {
			return nil, err
		}
		if d.Start, d.End, err = scanTimes(startText, endText); err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgRepository) ListSpecializedTypes(ctx context.Context) ([]SpecializedType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description FROM specialized_types ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SpecializedType
	for rows.Next() {
		var t SpecializedType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgRepository) GetSpecializedTypeByID(ctx context.Context, id int64) (*SpecializedType, error) {
	var t SpecializedType
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description FROM specialized_types WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PgRepository) CreateSpecializedSlot(ctx context.Context, typeID int64, date time.Time, start, end TimeOfDay) (*SpecializedSlot, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO specialized_slots (type_id, slot_date, start_time, end_time, created_at)
		VALUES ($1, $2::date, $3::time, $4::time, now())
		RETURNING id, type_id, slot_date, start_time::text, end_time::text, created_at
	`, typeID, date.Format(dateFormat), start.String(), end.String())
	return scanSpecializedSlot(row)
}

func (r *PgRepository) GetSpecializedSlotByID(ctx context.Context, id int64) (*SpecializedSlot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, type_id, slot_date, start_time::text, end_time::text, created_at
		FROM specialized_slots
		WHERE id = $1
	`, id)
	return scanSpecializedSlot(row)
}

func (r *PgRepository) ListOpenSpecializedSlots(ctx context.Context, typeID int64, from time.Time) ([]SpecializedSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type_id, slot_date, start_time::text, end_time::text, created_at
		FROM specialized_slots s
		WHERE s.type_id = $1
		  AND s.slot_date >= $2::date
		  AND NOT EXISTS (SELECT 1 FROM specialized_bookings b WHERE b.slot_id = s.id)
		ORDER BY s.slot_date, s.start_time
	`, typeID, from.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SpecializedSlot
	for rows.Next() {
		s, err := scanSpecializedSlot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanDoctorBooking(row pgx.Row) (*DoctorBooking, error) {
	var b DoctorBooking
	err := row.Scan(&b.ID, &b.PatientID, &b.DoctorID, &b.SlotID, &b.BookedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PgRepository) GetDoctorBookingForSlot(ctx context.Context, slotID int64) (*DoctorBooking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, doctor_id, slot_id, booked_at
		FROM doctor_bookings
		WHERE slot_id = $1
	`, slotID)
	return scanDoctorBooking(row)
}

func (r *PgRepository) CreateDoctorBooking(ctx context.Context, patientID, doctorID, slotID int64) (*DoctorBooking, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctor_bookings (patient_id, doctor_id, slot_id, booked_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, patient_id, doctor_id, slot_id, booked_at
	`, patientID, doctorID, slotID)

	b, err := scanDoctorBooking(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}
	return b, nil
}

func (r *PgRepository) GetDoctorBookingDetail(ctx context.Context, id int64) (*DoctorBookingDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT b.id, b.patient_id, b.doctor_id, b.slot_id, b.booked_at,
		       p.first_name || ' ' || p.last_name,
		       trim(u.first_name || ' ' || u.last_name),
		       s.id, s.doctor_id, s.slot_date, s.start_time::text, s.end_time::text, s.created_at
		FROM doctor_bookings b
		JOIN patients p ON p.id = b.patient_id
		JOIN users u ON u.id = b.doctor_id
		JOIN doctor_slots s ON s.id = b.slot_id
		WHERE b.id = $1
	`, id)
	return scanDoctorBookingDetail(row)
}

func scanDoctorBookingDetail(row pgx.Row) (*DoctorBookingDetail, error) {
	var d DoctorBookingDetail
	var startText, endText string

	err := row.Scan(
		&d.ID, &d.PatientID, &d.DoctorID, &d.SlotID, &d.BookedAt,
		&d.PatientName, &d.DoctorName,
		&d.Slot.ID, &d.Slot.DoctorID, &d.Slot.Date, &startText, &endText, &d.Slot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	d.Slot.Start, d.Slot.End, err = scanTimes(startText, endText)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgRepository) DeleteDoctorBooking(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM doctor_bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *PgRepository) ListUpcomingDoctorBookings(ctx context.Context, from time.Time) ([]DoctorBookingDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.patient_id, b.doctor_id, b.slot_id, b.booked_at,
		       p.first_name || ' ' || p.last_name,
		       trim(u.first_name || ' ' || u.last_name),
		       s.id, s.doctor_id, s.slot_date, s.start_time::text, s.end_time::text, s.created_at
		FROM doctor_bookings b
		JOIN patients p ON p.id = b.patient_id
		JOIN users u ON u.id = b.doctor_id
		JOIN doctor_slots s ON s.id = b.slot_id
		WHERE s.slot_date >= $1::date
		ORDER BY s.slot_date, s.start_time
	`, from.Format(dateFormat))
	if err != nil {
		return nil, err
	}
	return collectDoctorBookingDetails(rows)
}

func (r *PgRepository) ListDoctorBookingsForDoctor(ctx context.Context, doctorID int64, cutoff time.Time) ([]DoctorBookingDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.patient_id, b.doctor_id, b.slot_id, b.booked_at,
		       p.first_name || ' ' || p.last_name,
		       trim(u.first_name || ' ' || u.last_name),
		       s.id, s.doctor_id, s.slot_date, s.start_time::text, s.end_time::text, s.created_at
		FROM doctor_bookings b
		JOIN patients p ON p.id = b.patient_id
		JOIN users u ON u.id = b.doctor_id
		JOIN doctor_slots s ON s.id = b.slot_id
		WHERE b.doctor_id = $1
		  AND (s.slot_date + s.end_time) >= $2::timestamp
		ORDER BY s.slot_date, s.start_time
	`, doctorID, cutoff.Format(naiveFormat))
	if err != nil {
		return nil, err
	}
	return collectDoctorBookingDetails(rows)
}

func collectDoctorBookingDetails(rows pgx.Rows) ([]DoctorBookingDetail, error) {
	defer rows.Close()

	var result []DoctorBookingDetail
	for rows.Next() {
		d, err := scanDoctorBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanSpecializedBooking(row pgx.Row) (*SpecializedBooking, error) {
	var b SpecializedBooking
	err := row.Scan(&b.ID, &b.PatientID, &b.SlotID, &b.BookedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PgRepository) GetSpecializedBookingForSlot(ctx context.Context, slotID int64) (*SpecializedBooking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, slot_id, booked_at
		FROM specialized_bookings
		WHERE slot_id = $1
	`, slotID)
	return scanSpecializedBooking(row)
}

func (r *PgRepository) CreateSpecializedBooking(ctx context.Context, patientID, slotID int64) (*SpecializedBooking, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO specialized_bookings (patient_id, slot_id, booked_at)
		VALUES ($1, $2, now())
		RETURNING id, patient_id, slot_id, booked_at
	`, patientID, slotID)

	b, err := scanSpecializedBooking(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, err
	}
	return b, nil
}

func scanSpecializedBookingDetail(row pgx.Row) (*SpecializedBookingDetail, error) {
	var d SpecializedBookingDetail
	var startText, endText string

	err := row.Scan(
		&d.ID, &d.PatientID, &d.SlotID, &d.BookedAt,
		&d.PatientName, &d.TypeName,
		&d.Slot.ID, &d.Slot.TypeID, &d.Slot.Date, &startText, &endText, &d.Slot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	d.Slot.Start, d.Slot.End, err = scanTimes(startText, endText)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgRepository) GetSpecializedBookingDetail(ctx context.Context, id int64) (*SpecializedBookingDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT b.id, b.patient_id, b.slot_id, b.booked_at,
		       p.first_name || ' ' || p.last_name,
		       t.name,
		       s.id, s.type_id, s.slot_date, s.start_time::text, s.end_time::text, s.created_at
		FROM specialized_bookings b
		JOIN patients p ON p.id = b.patient_id
		JOIN specialized_slots s ON s.id = b.slot_id
		JOIN specialized_types t ON t.id = s.type_id
		WHERE b.id = $1
	`, id)
	return scanSpecializedBookingDetail(row)
}

func (r *PgRepository) DeleteSpecializedBooking(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM specialized_bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *PgRepository) ListUpcomingSpecializedBookings(ctx context.Context, cutoff time.Time) ([]SpecializedBookingDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.patient_id, b.slot_id, b.booked_at,
		       p.first_name || ' ' || p.last_name,
		       t.name,
		       s.id, s.type_id, s.slot_date, s.start_time::text, s.end_time::text, s.created_at
		FROM specialized_bookings b
		JOIN patients p ON p.id = b.patient_id
		JOIN specialized_slots s ON s.id = b.slot_id
		JOIN specialized_types t ON t.id = s.type_id
		WHERE (s.slot_date + s.end_time) >= $1::timestamp
		ORDER BY s.slot_date, s.start_time
	`, cutoff.Format(naiveFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SpecializedBookingDetail
	for rows.Next() {
		d, err := scanSpecializedBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgRepository) DeleteExpiredDoctorBookings(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM doctor_bookings b
		USING doctor_slots s
		WHERE s.id = b.slot_id
		  AND (s.slot_date + s.end_time) <= $1::timestamp
	`, cutoff.Format(naiveFormat))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgRepository) DeleteExpiredDoctorSlots(ctx context.Context, today time.Time, cutoff TimeOfDay) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM doctor_slots
		WHERE slot_date < $1::date
		   OR (slot_date = $1::date AND end_time <= $2::time)
	`, today.Format(dateFormat), cutoff.String())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

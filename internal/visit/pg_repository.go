package visit

import (
	"context"
	"errors"
	"strconv"
	"strings"

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

const visitColumns = `id, patient_id, doctor_id, nurse_id, visit_time, weight, temperature, blood_pressure, doctor_notes`

// likeEscaper neutralizes ILIKE metacharacters so a query of "%" matches a
// literal percent sign instead of every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit

	err := row.Scan(
		&v.ID,
		&v.PatientID,
		&v.DoctorID,
		&v.NurseID,
		&v.VisitTime,
		&v.Weight,
		&v.Temperature,
		&v.BloodPressure,
		&v.DoctorNotes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}

	return &v, nil
}

func (r *PgRepository) PatientExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PgRepository) DoctorExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND role = 'doctor')
	`, id).Scan(&exists)
	return exists, err
}

func (r *PgRepository) CreateVisit(ctx context.Context, v *Visit) (*Visit, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO visits (patient_id, doctor_id, nurse_id, visit_time, weight, temperature, blood_pressure, doctor_notes)
		VALUES ($1, $2, $3, now(), $4, $5, $6, $7)
		RETURNING `+visitColumns+`
	`, v.PatientID, v.DoctorID, v.NurseID, v.Weight, v.Temperature, v.BloodPressure, v.DoctorNotes)

	created, err := scanVisit(row)
	if err != nil {
		// Backstop for the race between the existence checks and the insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "patient"):
				return nil, ErrPatientUnknown
			case strings.Contains(pgErr.ConstraintName, "doctor"):
				return nil, ErrDoctorUnknown
			}
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) GetVisitForDoctor(ctx context.Context, id, doctorID int64) (*Visit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+visitColumns+`
		FROM visits
		WHERE id = $1 AND doctor_id = $2
	`, id, doctorID)
	return scanVisit(row)
}

func (r *PgRepository) UpdateDoctorNotes(ctx context.Context, id, doctorID int64, notes string) (*Visit, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE visits
		SET doctor_notes = $3
		WHERE id = $1 AND doctor_id = $2
		RETURNING `+visitColumns+`
	`, id, doctorID, notes)
	return scanVisit(row)
}

func scanVisitDetail(row pgx.Row) (*VisitDetail, error) {
	var d VisitDetail

	err := row.Scan(
		&d.ID,
		&d.PatientID,
		&d.DoctorID,
		&d.NurseID,
		&d.VisitTime,
		&d.Weight,
		&d.Temperature,
		&d.BloodPressure,
		&d.DoctorNotes,
		&d.PatientName,
		&d.NurseName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}

	return &d, nil
}

const visitDetailQuery = `
	SELECT v.id, v.patient_id, v.doctor_id, v.nurse_id, v.visit_time, v.weight, v.temperature, v.blood_pressure, v.doctor_notes,
	       p.first_name || ' ' || p.last_name,
	       trim(n.first_name || ' ' || n.last_name)
	FROM visits v
	JOIN patients p ON p.id = v.patient_id
	JOIN users n ON n.id = v.nurse_id
`

func (r *PgRepository) ListVisitsForDoctor(ctx context.Context, doctorID int64) ([]VisitDetail, error) {
	rows, err := r.pool.Query(ctx, visitDetailQuery+`
		WHERE v.doctor_id = $1
		ORDER BY v.visit_time DESC
	`, doctorID)
	if err != nil {
		return nil, err
	}
	return collectVisitDetails(rows)
}

func (r *PgRepository) SearchVisitsForDoctor(ctx context.Context, doctorID int64, query string) ([]VisitDetail, error) {
	// A numeric query is an exact patient id lookup, anything else matches
	// patient name or phone.
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		rows, qerr := r.pool.Query(ctx, visitDetailQuery+`
			WHERE v.doctor_id = $1 AND v.patient_id = $2
			ORDER BY v.visit_time DESC
		`, doctorID, id)
		if qerr != nil {
			return nil, qerr
		}
		return collectVisitDetails(rows)
	}

	rows, err := r.pool.Query(ctx, visitDetailQuery+`
		WHERE v.doctor_id = $1
		  AND (p.first_name ILIKE '%' || $2 || '%'
		    OR p.last_name ILIKE '%' || $2 || '%'
		    OR p.phone_contact ILIKE '%' || $2 || '%')
		ORDER BY v.visit_time DESC
	`, doctorID, likeEscaper.Replace(query))
	if err != nil {
		return nil, err
	}
	return collectVisitDetails(rows)
}

func collectVisitDetails(rows pgx.Rows) ([]VisitDetail, error) {
	defer rows.Close()

	var result []VisitDetail
	for rows.Next() {
		d, err := scanVisitDetail(rows)
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

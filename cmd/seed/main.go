package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartward/hospital-backend/internal/db"
	"github.com/smartward/hospital-backend/internal/identity"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.ApplySchema(context.Background(), pool); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	log.Println("schema applied")

	gofakeit.Seed(time.Now().UnixNano())

	doctorIDs, err := seedStaff(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed staff: %v", err)
	}
	if err := seedShiftsAndSlots(context.Background(), pool, doctorIDs); err != nil {
		log.Fatalf("seed shifts and slots: %v", err)
	}
	if err := seedSpecializedTypes(context.Background(), pool); err != nil {
		log.Fatalf("seed specialized types: %v", err)
	}
	if err := seedPatients(context.Background(), pool, 500); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

// seedStaff creates one account per role plus a pool of extra doctors. All
// accounts share the password "changeme123" so local logins are predictable.
func seedStaff(ctx context.Context, pool *pgxpool.Pool) ([]int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	insert := func(username string, role identity.Role) (int64, error) {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO users (username, first_name, last_name, email, id_number, role, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (username) DO UPDATE SET updated_at = now()
			RETURNING id
		`, username, gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Email(),
			fmt.Sprintf("ID%06d", gofakeit.Number(0, 999999)), string(role), string(hash)).Scan(&id)
		return id, err
	}

	for _, s := range []struct {
		username string
		role     identity.Role
	}{
		{"admin", identity.RoleAdmin},
		{"frontdesk", identity.RoleReceptionist},
		{"nurse.joan", identity.RoleNurse},
	} {
		if _, err := insert(s.username, s.role); err != nil {
			return nil, err
		}
	}

	var doctorIDs []int64
	for i := 0; i < 10; i++ {
		id, err := insert(fmt.Sprintf("dr.%s%d", gofakeit.LastName(), i), identity.RoleDoctor)
		if err != nil {
			return nil, err
		}
		doctorIDs = append(doctorIDs, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("staff seeded: %d doctors plus admin/receptionist/nurse", len(doctorIDs))
	return doctorIDs, nil
}

// seedShiftsAndSlots gives each doctor a morning shift for the next week and
// carves the first hour of each shift into two 30-minute slots.
func seedShiftsAndSlots(ctx context.Context, pool *pgxpool.Pool, doctorIDs []int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, doctorID := range doctorIDs {
		for day := 1; day <= 7; day++ {
			date := now.AddDate(0, 0, day)
			start := time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, date.Location())
			end := start.Add(4 * time.Hour)

			_, err := tx.Exec(ctx, `
				INSERT INTO shifts (doctor_id, start_time, end_time)
				VALUES ($1, $2, $3)
			`, doctorID, start, end)
			if err != nil {
				return err
			}

			for _, slot := range []struct{ from, to string }{
				{"09:00", "09:30"},
				{"09:30", "10:00"},
			} {
				_, err := tx.Exec(ctx, `
					INSERT INTO doctor_slots (doctor_id, slot_date, start_time, end_time)
					VALUES ($1, $2::date, $3::time, $4::time)
				`, doctorID, date.Format("2006-01-02"), slot.from, slot.to)
				if err != nil {
					return err
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("shifts and slots seeded")
	return nil
}

func seedSpecializedTypes(ctx context.Context, pool *pgxpool.Pool) error {
	types := []struct {
		name, description string
	}{
		{"X-Ray", "Radiographic imaging"},
		{"Ultrasound", "Diagnostic sonography"},
		{"Physiotherapy", "Physical rehabilitation session"},
		{"Blood Test", "Laboratory blood work"},
		{"ECG", "Electrocardiogram"},
	}

	for _, t := range types {
		_, err := pool.Exec(ctx, `
			INSERT INTO specialized_types (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, t.name, t.description)
		if err != nil {
			return err
		}
	}

	log.Println("specialized types seeded")
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	const batchSize = 100

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			dob := gofakeit.DateRange(
				time.Now().AddDate(-90, 0, 0),
				time.Now().AddDate(-1, 0, 0),
			)

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (first_name, last_name, address, phone_contact, emergency_contact, dob, email)
				VALUES ($1, $2, $3, $4, $5, $6::date, $7)
				ON CONFLICT (email) DO NOTHING
			`, gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Address().Address,
				fmt.Sprintf("%07d", gofakeit.Number(1000000, 9999999)),
				fmt.Sprintf("%07d", gofakeit.Number(1000000, 9999999)),
				dob.Format("2006-01-02"), fmt.Sprintf("%d.%s", i, gofakeit.Email()))
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return nil
}

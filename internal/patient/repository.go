package patient

import (
	"context"
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	CreatePatient(ctx context.Context, p *Patient) (*Patient, error)
	UpdatePatient(ctx context.Context, p *Patient) (*Patient, error)
	GetPatientByID(ctx context.Context, id int64) (*Patient, error)
	PatientExists(ctx context.Context, id int64) (bool, error)

	ListPatients(ctx context.Context) ([]Patient, error)
	// SearchPatients filters case-insensitively across id, names, email and
	// both contact numbers, OR-combined.
	SearchPatients(ctx context.Context, query string) ([]Patient, error)
	// AllNames returns every first and last name, used for the
	// "did you mean" fallback.
	AllNames(ctx context.Context) ([]string, error)
}

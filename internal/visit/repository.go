package visit

import (
	"context"
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	PatientExists(ctx context.Context, id int64) (bool, error)
	// DoctorExists reports whether a user with the doctor role exists.
	DoctorExists(ctx context.Context, id int64) (bool, error)

	CreateVisit(ctx context.Context, v *Visit) (*Visit, error)
	// GetVisitForDoctor returns the visit only when it belongs to the
	// given doctor.
	GetVisitForDoctor(ctx context.Context, id, doctorID int64) (*Visit, error)
	UpdateDoctorNotes(ctx context.Context, id, doctorID int64, notes string) (*Visit, error)

	ListVisitsForDoctor(ctx context.Context, doctorID int64) ([]VisitDetail, error)
	// SearchVisitsForDoctor filters the doctor's visits by exact patient id
	// (numeric query) or patient name/phone substring.
	SearchVisitsForDoctor(ctx context.Context, doctorID int64, query string) ([]VisitDetail, error)
}

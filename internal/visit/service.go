package visit

import (
	"context"
	"fmt"
	"strings"
)

// NameSuggester provides the "did you mean" fallback when a visit search
// matches nothing. The patient service implements it.
type NameSuggester interface {
	SuggestName(ctx context.Context, query string) (string, error)
}

type Service struct {
	repo      Repository
	suggester NameSuggester
}

func NewService(repo Repository, suggester NameSuggester) *Service {
	return &Service{
		repo:      repo,
		suggester: suggester,
	}
}

type CreateVisitParams struct {
	PatientID     int64
	DoctorID      int64
	NurseID       int64
	Weight        *float64
	Temperature   float64
	BloodPressure string
}

// CreateVisit records a nurse intake. Patient and doctor must both exist;
// temperature and blood pressure fall back to the standard defaults when
// omitted.
func (s *Service) CreateVisit(ctx context.Context, p CreateVisitParams) (*Visit, error) {
	exists, err := s.repo.PatientExists(ctx, p.PatientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !exists {
		return nil, ErrPatientUnknown
	}

	exists, err = s.repo.DoctorExists(ctx, p.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("check doctor: %w", err)
	}
	if !exists {
		return nil, ErrDoctorUnknown
	}

	if p.Temperature == 0 {
		p.Temperature = DefaultTemperature
	}
	if strings.TrimSpace(p.BloodPressure) == "" {
		p.BloodPressure = DefaultBloodPressure
	}
	if err := validateVitals(p.Temperature, p.BloodPressure); err != nil {
		return nil, err
	}

	v := &Visit{
		PatientID:     p.PatientID,
		DoctorID:      p.DoctorID,
		NurseID:       p.NurseID,
		Weight:        p.Weight,
		Temperature:   p.Temperature,
		BloodPressure: p.BloodPressure,
	}

	created, err := s.repo.CreateVisit(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("create visit: %w", err)
	}
	return created, nil
}

// VisitsForDoctor lists a doctor's visits newest first, optionally filtered
// by patient id, name or phone. An empty result carries at most one
// approximate name suggestion.
func (s *Service) VisitsForDoctor(ctx context.Context, doctorID int64, query string) ([]VisitDetail, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		visits, err := s.repo.ListVisitsForDoctor(ctx, doctorID)
		return visits, "", err
	}

	visits, err := s.repo.SearchVisitsForDoctor(ctx, doctorID, query)
	if err != nil {
		return nil, "", fmt.Errorf("search visits: %w", err)
	}
	if len(visits) > 0 {
		return visits, "", nil
	}

	suggestion, err := s.suggester.SuggestName(ctx, query)
	if err != nil {
		return nil, "", err
	}
	return nil, suggestion, nil
}

// AttachDoctorNotes lets the attending doctor append notes to their own
// visit; a visit belonging to another doctor reads as not found.
func (s *Service) AttachDoctorNotes(ctx context.Context, visitID, doctorID int64, notes string) (*Visit, error) {
	if _, err := s.repo.GetVisitForDoctor(ctx, visitID, doctorID); err != nil {
		return nil, err
	}
	return s.repo.UpdateDoctorNotes(ctx, visitID, doctorID, notes)
}

package patient

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) (*Patient, error) {
	if err := p.Validate(s.today()); err != nil {
		return nil, err
	}

	created, err := s.repo.CreatePatient(ctx, p)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) (*Patient, error) {
	if err := p.Validate(s.today()); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPatientByID(ctx, p.ID); err != nil {
		return nil, err
	}
	return s.repo.UpdatePatient(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetPatientByID(ctx, id)
}

// SearchPatients runs the substring filter and, when it comes back empty,
// offers at most one approximate name match. The suggestion is advisory
// only; it is never substituted into the filter.
func (s *Service) SearchPatients(ctx context.Context, query string) ([]Patient, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		patients, err := s.repo.ListPatients(ctx)
		return patients, "", err
	}

	patients, err := s.repo.SearchPatients(ctx, query)
	if err != nil {
		return nil, "", fmt.Errorf("search patients: %w", err)
	}
	if len(patients) > 0 {
		return patients, "", nil
	}

	suggestion, err := s.SuggestName(ctx, query)
	if err != nil {
		return nil, "", err
	}
	return nil, suggestion, nil
}

// SuggestName implements the shared "did you mean" fallback; the visit
// listing reuses it for its own patient search.
func (s *Service) SuggestName(ctx context.Context, query string) (string, error) {
	names, err := s.repo.AllNames(ctx)
	if err != nil {
		return "", fmt.Errorf("load patient names: %w", err)
	}
	return closestName(query, names), nil
}

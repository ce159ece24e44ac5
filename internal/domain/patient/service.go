package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/carebridge/carebridge/internal/platform/apperr"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperr.InvalidInput("name is required")
	}
	if p.Status == "" {
		p.Status = CaseActive
	}
	if !p.Status.Valid() {
		return apperr.InvalidInput("invalid status", goerr.V("status", p.Status))
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("patient not found", goerr.V("patient_id", id))
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Status != "" && !p.Status.Valid() {
		return apperr.InvalidInput("invalid status", goerr.V("status", p.Status))
	}
	if _, err := s.patients.GetByID(ctx, p.ID); err != nil {
		return apperr.NotFound("patient not found", goerr.V("patient_id", p.ID))
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return s.patients.ListByCaregiver(ctx, caregiverID, limit, offset)
}

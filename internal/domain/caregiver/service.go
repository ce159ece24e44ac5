package caregiver

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/carebridge/carebridge/internal/platform/apperr"
)

type Service struct {
	caregivers Repository
}

func NewService(caregivers Repository) *Service {
	return &Service{caregivers: caregivers}
}

func (s *Service) Create(ctx context.Context, cg *Caregiver) error {
	if cg.Name == "" {
		return apperr.InvalidInput("name is required")
	}
	if cg.Role == "" {
		cg.Role = RoleCaregiver
	}
	if !cg.Role.Valid() {
		return apperr.InvalidInput("invalid role", goerr.V("role", cg.Role))
	}
	if cg.WeeklyCapacity != nil && *cg.WeeklyCapacity < 0 {
		return apperr.InvalidInput("weekly_capacity must not be negative")
	}
	cg.Active = true
	return s.caregivers.Create(ctx, cg)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Caregiver, error) {
	cg, err := s.caregivers.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("caregiver not found", goerr.V("caregiver_id", id))
	}
	return cg, nil
}

func (s *Service) Update(ctx context.Context, cg *Caregiver) error {
	if cg.Role != "" && !cg.Role.Valid() {
		return apperr.InvalidInput("invalid role", goerr.V("role", cg.Role))
	}
	if _, err := s.caregivers.GetByID(ctx, cg.ID); err != nil {
		return apperr.NotFound("caregiver not found", goerr.V("caregiver_id", cg.ID))
	}
	return s.caregivers.Update(ctx, cg)
}

// Deactivate clears the active flag. Records are never deleted.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	cg, err := s.caregivers.GetByID(ctx, id)
	if err != nil {
		return apperr.NotFound("caregiver not found", goerr.V("caregiver_id", id))
	}
	cg.Active = false
	return s.caregivers.Update(ctx, cg)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Caregiver, int, error) {
	return s.caregivers.List(ctx, limit, offset)
}

func (s *Service) ListActiveCaregivers(ctx context.Context) ([]*Caregiver, error) {
	return s.caregivers.ListActiveByRole(ctx, RoleCaregiver)
}

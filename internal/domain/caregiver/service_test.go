package caregiver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/carebridge/carebridge/internal/platform/apperr"
)

var errNoRows = errors.New("no rows in result set")

type memRepo struct {
	items []*Caregiver
}

func (m *memRepo) Create(_ context.Context, cg *Caregiver) error {
	cg.ID = uuid.New()
	cp := *cg
	m.items = append(m.items, &cp)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Caregiver, error) {
	for _, cg := range m.items {
		if cg.ID == id {
			cp := *cg
			return &cp, nil
		}
	}
	return nil, errNoRows
}

func (m *memRepo) Update(_ context.Context, cg *Caregiver) error {
	for i, existing := range m.items {
		if existing.ID == cg.ID {
			cp := *cg
			m.items[i] = &cp
			return nil
		}
	}
	return errNoRows
}

func (m *memRepo) List(_ context.Context, _, _ int) ([]*Caregiver, int, error) {
	return m.items, len(m.items), nil
}

func (m *memRepo) ListActiveByRole(_ context.Context, role Role) ([]*Caregiver, error) {
	var out []*Caregiver
	for _, cg := range m.items {
		if cg.Active && cg.Role == role {
			cp := *cg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	cg := &Caregiver{Name: "Dana", Email: "dana@example.org"}
	if err := svc.Create(ctx, cg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cg.Role != RoleCaregiver {
		t.Errorf("role = %q, want caregiver default", cg.Role)
	}
	if !cg.Active {
		t.Error("new caregiver not active")
	}

	if err := svc.Create(ctx, &Caregiver{}); !apperr.IsKind(err, apperr.TagInvalidInput) {
		t.Errorf("missing name: err = %v, want invalid_input", err)
	}
	if err := svc.Create(ctx, &Caregiver{Name: "X", Role: Role("janitor")}); !apperr.IsKind(err, apperr.TagInvalidInput) {
		t.Errorf("bad role: err = %v, want invalid_input", err)
	}
	neg := -5
	if err := svc.Create(ctx, &Caregiver{Name: "X", WeeklyCapacity: &neg}); !apperr.IsKind(err, apperr.TagInvalidInput) {
		t.Errorf("negative capacity: err = %v, want invalid_input", err)
	}
}

func TestDeactivateRemovesFromCandidates(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	cg := &Caregiver{Name: "Dana"}
	if err := svc.Create(ctx, cg); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Deactivate(ctx, cg.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	active, err := svc.ListActiveCaregivers(ctx)
	if err != nil {
		t.Fatalf("ListActiveCaregivers: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("deactivated caregiver still a candidate: %v", active)
	}

	got, err := svc.Get(ctx, cg.ID)
	if err != nil {
		t.Fatalf("Get after deactivate: %v", err)
	}
	if got.Active {
		t.Error("active flag not cleared")
	}
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(&memRepo{})
	if _, err := svc.Get(context.Background(), uuid.New()); !apperr.IsKind(err, apperr.TagNotFound) {
		t.Errorf("err = %v, want not_found", err)
	}
}

func TestRoleCanAuthorize(t *testing.T) {
	if RoleCaregiver.CanAuthorize() {
		t.Error("caregiver role should not authorize")
	}
	if !RoleSupervisor.CanAuthorize() || !RoleAdmin.CanAuthorize() {
		t.Error("supervisor and admin roles must authorize")
	}
}

package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/carebridge/carebridge/internal/platform/apperr"
)

var errNoRows = errors.New("no rows in result set")

type memRepo struct {
	items map[uuid.UUID]*Patient
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uuid.UUID]*Patient{}}
}

func (m *memRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, errNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.items[p.ID]; !ok {
		return errNoRows
	}
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memRepo) List(_ context.Context, _, _ int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memRepo) ListByCaregiver(_ context.Context, caregiverID uuid.UUID, _, _ int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.items {
		if p.AssignedCaregiverID != nil && *p.AssignedCaregiverID == caregiverID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *memRepo) SetAssignment(_ context.Context, patientID uuid.UUID, caregiverID, supervisorID *uuid.UUID) error {
	p, ok := m.items[patientID]
	if !ok {
		return errNoRows
	}
	p.AssignedCaregiverID = caregiverID
	p.AssignedSupervisorID = supervisorID
	return nil
}

func (m *memRepo) CountActiveByCaregiver(_ context.Context, caregiverID uuid.UUID) (int, error) {
	count := 0
	for _, p := range m.items {
		if p.Status == CaseActive && p.AssignedCaregiverID != nil && *p.AssignedCaregiverID == caregiverID {
			count++
		}
	}
	return count, nil
}

func TestCreateDefaultsStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	p := &Patient{Name: "Jordan"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != CaseActive {
		t.Errorf("status = %q, want active default", p.Status)
	}

	if err := svc.Create(ctx, &Patient{}); !apperr.IsKind(err, apperr.TagInvalidInput) {
		t.Errorf("missing name: err = %v, want invalid_input", err)
	}
	if err := svc.Create(ctx, &Patient{Name: "X", Status: CaseStatus("archived")}); !apperr.IsKind(err, apperr.TagInvalidInput) {
		t.Errorf("bad status: err = %v, want invalid_input", err)
	}
}

func TestCountActiveByCaregiverSkipsInactiveCases(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	cg := uuid.New()

	active := &Patient{Name: "A", Status: CaseActive}
	paused := &Patient{Name: "B", Status: CasePaused}
	if err := svc.Create(ctx, active); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(ctx, paused); err != nil {
		t.Fatal(err)
	}
	sup := uuid.New()
	if err := repo.SetAssignment(ctx, active.ID, &cg, &sup); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetAssignment(ctx, paused.ID, &cg, &sup); err != nil {
		t.Fatal(err)
	}

	count, err := repo.CountActiveByCaregiver(ctx, cg)
	if err != nil {
		t.Fatalf("CountActiveByCaregiver: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (paused case excluded)", count)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newMemRepo())
	err := svc.Update(context.Background(), &Patient{ID: uuid.New(), Name: "X"})
	if !apperr.IsKind(err, apperr.TagNotFound) {
		t.Errorf("err = %v, want not_found", err)
	}
}

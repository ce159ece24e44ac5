package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/platform/apperr"
)

var errNoRows = errors.New("no rows in result set")

type memRepo struct {
	items      map[uuid.UUID]*Notification
	createErr  error
	lastCutoff time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uuid.UUID]*Notification{}}
}

func (m *memRepo) Create(_ context.Context, n *Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	cp := *n
	m.items[n.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	n, ok := m.items[id]
	if !ok {
		return nil, errNoRows
	}
	cp := *n
	return &cp, nil
}

func (m *memRepo) MarkRead(_ context.Context, id uuid.UUID, at time.Time) error {
	n, ok := m.items[id]
	if !ok {
		return errNoRows
	}
	n.Read = true
	n.ReadAt = &at
	return nil
}

func (m *memRepo) MarkAllRead(_ context.Context, recipientID uuid.UUID, at time.Time) (int, error) {
	count := 0
	for _, n := range m.items {
		if n.RecipientID == recipientID && !n.Read {
			n.Read = true
			n.ReadAt = &at
			count++
		}
	}
	return count, nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *memRepo) ListByRecipient(_ context.Context, recipientID uuid.UUID, unreadOnly bool, _, _ int) ([]*Notification, int, error) {
	var out []*Notification
	for _, n := range m.items {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memRepo) CountUnread(_ context.Context, recipientID uuid.UUID) (int, error) {
	count := 0
	for _, n := range m.items {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memRepo) DeleteStale(_ context.Context, cutoff, now time.Time) (int, error) {
	m.lastCutoff = cutoff
	removed := 0
	for id, n := range m.items {
		stale := n.Read && n.CreatedAt.Before(cutoff)
		expired := n.ExpiresAt != nil && n.ExpiresAt.Before(now)
		if stale || expired {
			delete(m.items, id)
			removed++
		}
	}
	return removed, nil
}

func TestDispatchStoresNotification(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())
	recipient := uuid.New()

	n := svc.Dispatch(context.Background(), recipient, nil, TypeSystemAlert, "Title", "Body", PriorityHigh, nil)
	if n == nil {
		t.Fatal("Dispatch returned nil on healthy store")
	}
	if len(repo.items) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(repo.items))
	}
	if n.Priority != PriorityHigh || n.Type != TypeSystemAlert {
		t.Errorf("stored notification wrong: %+v", n)
	}
}

func TestDispatchNeverSurfacesStoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.createErr = errors.New("store down")
	svc := NewService(repo, zerolog.Nop())

	if n := svc.Dispatch(context.Background(), uuid.New(), nil, TypeSystemAlert, "t", "m", PriorityLow, nil); n != nil {
		t.Errorf("Dispatch = %+v, want nil on store failure", n)
	}
	if n := svc.AssignmentChanged(context.Background(), uuid.New(), nil, "Jordan", uuid.New()); n != nil {
		t.Errorf("AssignmentChanged = %+v, want nil on store failure", n)
	}
}

func TestDispatchValidation(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())

	if n := svc.Dispatch(context.Background(), uuid.Nil, nil, TypeSystemAlert, "t", "m", PriorityLow, nil); n != nil {
		t.Error("dispatched with nil recipient")
	}
	if n := svc.Dispatch(context.Background(), uuid.New(), nil, Type("carrier_pigeon"), "t", "m", PriorityLow, nil); n != nil {
		t.Error("dispatched with unknown type")
	}
	if len(repo.items) != 0 {
		t.Errorf("stored %d notifications, want 0", len(repo.items))
	}

	// Unknown priority falls back to medium rather than failing.
	n := svc.Dispatch(context.Background(), uuid.New(), nil, TypeSystemAlert, "t", "m", Priority("shouting"), nil)
	if n == nil || n.Priority != PriorityMedium {
		t.Errorf("priority fallback = %+v, want medium", n)
	}
}

func TestTypedHelpersSetTypeAndPriority(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())
	ctx := context.Background()
	recipient := uuid.New()
	sender := uuid.New()
	entity := uuid.New()

	cases := []struct {
		got      *Notification
		wantType Type
		wantPrio Priority
	}{
		{svc.AssignmentChanged(ctx, recipient, &sender, "Jordan", entity), TypeAssignmentChanged, PriorityHigh},
		{svc.PlanSubmitted(ctx, recipient, &sender, "Jordan", entity), TypePlanSubmitted, PriorityMedium},
		{svc.PlanApproved(ctx, recipient, &sender, "Jordan", entity), TypePlanApproved, PriorityMedium},
		{svc.PlanNeedsRevision(ctx, recipient, &sender, "Jordan", entity), TypePlanNeedsRevision, PriorityHigh},
		{svc.ReportSubmitted(ctx, recipient, &sender, "Jordan", entity), TypeReportSubmitted, PriorityMedium},
		{svc.ReportDue(ctx, recipient, "Jordan"), TypeReportDue, PriorityHigh},
		{svc.RatingReceived(ctx, recipient, "Jordan"), TypeRatingReceived, PriorityLow},
		{svc.SystemAlert(ctx, recipient, "t", "m"), TypeSystemAlert, PriorityMedium},
	}
	for _, tc := range cases {
		if tc.got == nil {
			t.Fatal("helper returned nil on healthy store")
		}
		if tc.got.Type != tc.wantType || tc.got.Priority != tc.wantPrio {
			t.Errorf("helper produced %q/%q, want %q/%q", tc.got.Type, tc.got.Priority, tc.wantType, tc.wantPrio)
		}
	}
	if len(repo.items) != len(cases) {
		t.Errorf("stored %d notifications, want %d", len(repo.items), len(cases))
	}
}

func TestMarkReadOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())
	owner := uuid.New()
	ctx := context.Background()

	n := svc.Dispatch(ctx, owner, nil, TypeSystemAlert, "t", "m", PriorityLow, nil)
	if n == nil {
		t.Fatal("Dispatch failed")
	}

	if err := svc.MarkRead(ctx, n.ID, uuid.New()); !apperr.IsKind(err, apperr.TagUnauthorized) {
		t.Errorf("foreign MarkRead err = %v, want unauthorized", err)
	}
	if err := svc.MarkRead(ctx, n.ID, owner); err != nil {
		t.Fatalf("owner MarkRead: %v", err)
	}
	got, err := svc.Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Read || got.ReadAt == nil {
		t.Errorf("notification not marked read: %+v", got)
	}
}

func TestDeleteOwnership(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())
	owner := uuid.New()
	ctx := context.Background()

	n := svc.Dispatch(ctx, owner, nil, TypeSystemAlert, "t", "m", PriorityLow, nil)
	if err := svc.Delete(ctx, n.ID, uuid.New()); !apperr.IsKind(err, apperr.TagUnauthorized) {
		t.Errorf("foreign Delete err = %v, want unauthorized", err)
	}
	if err := svc.Delete(ctx, n.ID, owner); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("notification not deleted")
	}
}

func TestCleanupRemovesReadAndExpired(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, zerolog.Nop())
	ctx := context.Background()
	owner := uuid.New()

	old := svc.Dispatch(ctx, owner, nil, TypeSystemAlert, "old", "m", PriorityLow, nil)
	repo.items[old.ID].Read = true
	repo.items[old.ID].CreatedAt = time.Now().Add(-40 * 24 * time.Hour)

	past := time.Now().Add(-time.Hour)
	expired := svc.Dispatch(ctx, owner, nil, TypeSystemAlert, "expired", "m", PriorityLow, nil)
	repo.items[expired.ID].ExpiresAt = &past

	fresh := svc.Dispatch(ctx, owner, nil, TypeSystemAlert, "fresh", "m", PriorityLow, nil)

	removed, err := svc.Cleanup(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if _, ok := repo.items[fresh.ID]; !ok {
		t.Error("fresh unread notification was swept")
	}
}

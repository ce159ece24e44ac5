package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/platform/apperr"
)

// Service dispatches alerts and manages the recipient inbox. Dispatch is
// best-effort: a store failure is logged and nil returned so a failed
// notification can never make a successful assignment or review look failed.
type Service struct {
	notifications Repository
	logger        zerolog.Logger
}

func NewService(notifications Repository, logger zerolog.Logger) *Service {
	return &Service{notifications: notifications, logger: logger}
}

// Dispatch writes a notification. Returns nil (and logs) on any failure.
func (s *Service) Dispatch(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, ntype Type, title, message string, priority Priority, payload map[string]interface{}) *Notification {
	if recipientID == uuid.Nil || !ntype.Valid() {
		s.logger.Warn().
			Str("type", string(ntype)).
			Msg("notification dropped: invalid recipient or type")
		return nil
	}
	if !priority.Valid() {
		priority = PriorityMedium
	}

	n := &Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		Priority:    priority,
		Payload:     payload,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Warn().Err(err).
			Str("type", string(ntype)).
			Str("recipient_id", recipientID.String()).
			Msg("notification write failed")
		return nil
	}
	return n
}

// -- Typed helpers: thin templates around Dispatch --

func (s *Service) AssignmentChanged(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, assignmentID uuid.UUID) *Notification {
	return s.Dispatch(ctx, recipientID, senderID, TypeAssignmentChanged,
		"Assignment updated",
		fmt.Sprintf("Your caseload changed: %s.", patientName),
		PriorityHigh,
		map[string]interface{}{"assignment_id": assignmentID.String()})
}

func (s *Service) PlanSubmitted(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *Notification {
	return s.Dispatch(ctx, recipientID, senderID, TypePlanSubmitted,
		"Therapy plan submitted",
		fmt.Sprintf("A therapy plan for %s is awaiting review.", patientName),
		PriorityMedium,
		map[string]interface{}{"document_id": documentID.String()})
}

func (s *Service) PlanApproved(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *Notification {
	return s.Dispatch(ctx, recipientID, senderID, TypePlanApproved,
		"Therapy plan approved",
		fmt.Sprintf("Your therapy plan for %s was approved.", patientName),
		PriorityMedium,
		map[string]interface{}{"document_id": documentID.String()})
}

func (s *Service) PlanNeedsRevision(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *Notification {
	return s.Dispatch(ctx, recipientID, senderID, TypePlanNeedsRevision,
		"Therapy plan needs revision",
		fmt.Sprintf("Your therapy plan for %s was returned for revision.", patientName),
		PriorityHigh,
		map[string]interface{}{"document_id": documentID.String()})
}

func (s *Service) ReportSubmitted(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *Notification {
	return s.Dispatch(ctx, recipientID, senderID, TypeReportSubmitted,
		"Progress report submitted",
		fmt.Sprintf("A progress report for %s is awaiting review.", patientName),
		PriorityMedium,
		map[string]interface{}{"document_id": documentID.String()})
}

func (s *Service) ReportDue(ctx context.Context, recipientID uuid.UUID, patientName string) *Notification {
	return s.Dispatch(ctx, recipientID, nil, TypeReportDue,
		"Progress report due",
		fmt.Sprintf("A progress report for %s is due.", patientName),
		PriorityHigh, nil)
}

func (s *Service) RatingReceived(ctx context.Context, recipientID uuid.UUID, patientName string) *Notification {
	return s.Dispatch(ctx, recipientID, nil, TypeRatingReceived,
		"New session rating",
		fmt.Sprintf("%s rated a recent session.", patientName),
		PriorityLow, nil)
}

func (s *Service) SystemAlert(ctx context.Context, recipientID uuid.UUID, title, message string) *Notification {
	return s.Dispatch(ctx, recipientID, nil, TypeSystemAlert, title, message, PriorityMedium, nil)
}

// -- Inbox operations --

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("notification not found", goerr.V("notification_id", id))
	}
	return n, nil
}

// MarkRead flips the read flag. Only the recipient may read their own inbox.
func (s *Service) MarkRead(ctx context.Context, id, actorID uuid.UUID) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return apperr.NotFound("notification not found", goerr.V("notification_id", id))
	}
	if n.RecipientID != actorID {
		return apperr.Unauthorized("notification belongs to another user")
	}
	return s.notifications.MarkRead(ctx, id, time.Now().UTC())
}

func (s *Service) MarkAllRead(ctx context.Context, actorID uuid.UUID) (int, error) {
	return s.notifications.MarkAllRead(ctx, actorID, time.Now().UTC())
}

func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return apperr.NotFound("notification not found", goerr.V("notification_id", id))
	}
	if n.RecipientID != actorID {
		return apperr.Unauthorized("notification belongs to another user")
	}
	return s.notifications.Delete(ctx, id)
}

func (s *Service) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*Notification, int, error) {
	return s.notifications.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return s.notifications.CountUnread(ctx, recipientID)
}

// Cleanup removes read notifications older than maxAge plus anything expired.
func (s *Service) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	now := time.Now().UTC()
	return s.notifications.DeleteStale(ctx, now.Add(-maxAge), now)
}

package review

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/rs/zerolog"

	"github.com/carebridge/carebridge/internal/domain/audit"
	"github.com/carebridge/carebridge/internal/domain/caregiver"
	"github.com/carebridge/carebridge/internal/domain/notification"
	"github.com/carebridge/carebridge/internal/domain/patient"
	"github.com/carebridge/carebridge/internal/platform/apperr"
)

type PatientStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type CaregiverStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*caregiver.Caregiver, error)
}

// Notifier delivers best-effort alerts; implementations never return errors.
type Notifier interface {
	PlanSubmitted(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *notification.Notification
	PlanApproved(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *notification.Notification
	PlanNeedsRevision(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *notification.Notification
	ReportSubmitted(ctx context.Context, recipientID uuid.UUID, senderID *uuid.UUID, patientName string, documentID uuid.UUID) *notification.Notification
	SystemAlert(ctx context.Context, recipientID uuid.UUID, title, message string) *notification.Notification
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action audit.Action, entityType string, entityID uuid.UUID, metadata map[string]interface{})
}

// Service drives documents through draft, submitted, and the review
// verdicts. Each transition is an independent write; there is no lock across
// read-decide-write.
type Service struct {
	documents  Repository
	patients   PatientStore
	caregivers CaregiverStore
	notifier   Notifier
	auditor    AuditRecorder
	logger     zerolog.Logger
}

func NewService(documents Repository, patients PatientStore, caregivers CaregiverStore, notifier Notifier, auditor AuditRecorder, logger zerolog.Logger) *Service {
	return &Service{
		documents:  documents,
		patients:   patients,
		caregivers: caregivers,
		notifier:   notifier,
		auditor:    auditor,
		logger:     logger,
	}
}

// CreateDraft opens a new document in draft for the calling author.
func (s *Service) CreateDraft(ctx context.Context, kind DocumentKind, patientID, authorID uuid.UUID, title, content string) (*Document, error) {
	if !kind.Valid() {
		return nil, apperr.InvalidInput("invalid document kind", goerr.V("kind", kind))
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperr.InvalidInput("title is required")
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, apperr.NotFound("patient not found", goerr.V("patient_id", patientID))
	}

	d := &Document{
		Kind:      kind,
		PatientID: patientID,
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Status:    StatusDraft,
	}
	if err := s.documents.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateContent edits a document. Only the author may edit, and only while
// the document is in draft or needs_revision.
func (s *Service) UpdateContent(ctx context.Context, id, actorID uuid.UUID, title, content string) (*Document, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("document not found", goerr.V("document_id", id))
	}
	if d.AuthorID != actorID {
		return nil, apperr.Unauthorized("only the author may edit a document")
	}
	if !d.Status.Submittable() {
		return nil, apperr.Conflict("document is not editable in its current status", goerr.V("status", d.Status))
	}

	if strings.TrimSpace(title) != "" {
		d.Title = title
	}
	d.Content = content
	if err := s.documents.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Submit moves a draft or needs_revision document to submitted and stamps
// the submission time. The patient's assigned supervisor, if any, is
// notified.
func (s *Service) Submit(ctx context.Context, id, actorID uuid.UUID) (*Document, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("document not found", goerr.V("document_id", id))
	}
	if d.AuthorID != actorID {
		return nil, apperr.Unauthorized("only the author may submit a document")
	}
	if !d.Status.Submittable() {
		return nil, apperr.Conflict("document cannot be submitted from its current status",
			goerr.V("document_id", id), goerr.V("status", d.Status))
	}

	now := time.Now().UTC()
	d.Status = StatusSubmitted
	d.SubmittedAt = &now
	if err := s.documents.Update(ctx, d); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, actorID, audit.ActionSubmitDocument, "review_document", d.ID, map[string]interface{}{
		"kind":       string(d.Kind),
		"patient_id": d.PatientID.String(),
	})
	s.notifySubmitted(ctx, d, actorID)
	return d, nil
}

// Review records a verdict on a submitted document. Comments are mandatory
// when requesting revision, optional on approval.
func (s *Service) Review(ctx context.Context, id, reviewerID uuid.UUID, decision Decision, comments string) (*Document, error) {
	reviewer, err := s.caregivers.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, apperr.Unauthorized("reviewer not found", goerr.V("reviewer_id", reviewerID))
	}
	if !reviewer.Role.CanAuthorize() {
		return nil, apperr.Unauthorized("supervisor or admin role required", goerr.V("role", reviewer.Role))
	}
	if !decision.Valid() {
		return nil, apperr.InvalidInput("invalid review decision", goerr.V("decision", decision))
	}
	if decision == DecisionNeedsRevision && strings.TrimSpace(comments) == "" {
		return nil, apperr.InvalidInput("comments are required when requesting revision")
	}

	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("document not found", goerr.V("document_id", id))
	}
	if d.Status != StatusSubmitted {
		return nil, apperr.Conflict("only submitted documents can be reviewed",
			goerr.V("document_id", id), goerr.V("status", d.Status))
	}

	now := time.Now().UTC()
	d.Status = DocumentStatus(decision)
	d.ReviewerID = &reviewerID
	d.ReviewedAt = &now
	if comments != "" {
		d.ReviewComments = &comments
	}
	if err := s.documents.Update(ctx, d); err != nil {
		return nil, err
	}

	action := audit.ActionApproveDocument
	if decision == DecisionNeedsRevision {
		action = audit.ActionRequestRevision
	}
	s.auditor.Record(ctx, reviewerID, action, "review_document", d.ID, map[string]interface{}{
		"kind":       string(d.Kind),
		"patient_id": d.PatientID.String(),
	})
	s.notifyReviewed(ctx, d, reviewerID, decision)
	return d, nil
}

func (s *Service) notifySubmitted(ctx context.Context, d *Document, actorID uuid.UUID) {
	p, err := s.patients.GetByID(ctx, d.PatientID)
	if err != nil {
		s.logger.Warn().Err(err).Str("document_id", d.ID.String()).Msg("submit notification skipped")
		return
	}
	if p.AssignedSupervisorID == nil {
		return
	}
	if d.Kind == KindTherapyPlan {
		s.notifier.PlanSubmitted(ctx, *p.AssignedSupervisorID, &actorID, p.Name, d.ID)
		return
	}
	s.notifier.ReportSubmitted(ctx, *p.AssignedSupervisorID, &actorID, p.Name, d.ID)
}

func (s *Service) notifyReviewed(ctx context.Context, d *Document, reviewerID uuid.UUID, decision Decision) {
	p, err := s.patients.GetByID(ctx, d.PatientID)
	if err != nil {
		s.logger.Warn().Err(err).Str("document_id", d.ID.String()).Msg("review notification skipped")
		return
	}
	if d.Kind == KindTherapyPlan {
		if decision == DecisionApproved {
			s.notifier.PlanApproved(ctx, d.AuthorID, &reviewerID, p.Name, d.ID)
		} else {
			s.notifier.PlanNeedsRevision(ctx, d.AuthorID, &reviewerID, p.Name, d.ID)
		}
		return
	}
	if decision == DecisionApproved {
		s.notifier.SystemAlert(ctx, d.AuthorID, "Progress report approved",
			"Your progress report for "+p.Name+" was approved.")
	} else {
		s.notifier.SystemAlert(ctx, d.AuthorID, "Progress report needs revision",
			"Your progress report for "+p.Name+" was returned for revision.")
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("document not found", goerr.V("document_id", id))
	}
	return d, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Document, int, error) {
	return s.documents.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*Document, int, error) {
	return s.documents.ListByAuthor(ctx, authorID, limit, offset)
}

// ListPendingReview returns the supervisor work queue.
func (s *Service) ListPendingReview(ctx context.Context, limit, offset int) ([]*Document, int, error) {
	return s.documents.ListByStatus(ctx, StatusSubmitted, limit, offset)
}

package review

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind distinguishes the two reviewable document types. Both share
// the same workflow.
type DocumentKind string

const (
	KindTherapyPlan    DocumentKind = "therapy_plan"
	KindProgressReport DocumentKind = "progress_report"
)

func (k DocumentKind) Valid() bool {
	return k == KindTherapyPlan || k == KindProgressReport
}

// DocumentStatus is the workflow state. draft is initial; needs_revision
// loops back to submitted on resubmit; approved is terminal here.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"
	StatusSubmitted     DocumentStatus = "submitted"
	StatusApproved      DocumentStatus = "approved"
	StatusNeedsRevision DocumentStatus = "needs_revision"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusNeedsRevision:
		return true
	}
	return false
}

// Submittable reports whether submit is a legal transition from s.
func (s DocumentStatus) Submittable() bool {
	return s == StatusDraft || s == StatusNeedsRevision
}

// Decision is the reviewer's verdict on a submitted document.
type Decision string

const (
	DecisionApproved      Decision = "approved"
	DecisionNeedsRevision Decision = "needs_revision"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionNeedsRevision
}

// Document is a therapy plan or progress report moving through review.
// Content is opaque to the workflow. SubmittedAt is set iff the document has
// ever left draft; ReviewedAt and comments are set only by a review verdict.
type Document struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Kind           DocumentKind   `db:"kind" json:"kind"`
	PatientID      uuid.UUID      `db:"patient_id" json:"patient_id"`
	AuthorID       uuid.UUID      `db:"author_id" json:"author_id"`
	Title          string         `db:"title" json:"title"`
	Content        string         `db:"content" json:"content"`
	Status         DocumentStatus `db:"status" json:"status"`
	ReviewerID     *uuid.UUID     `db:"reviewer_id" json:"reviewer_id,omitempty"`
	ReviewComments *string        `db:"review_comments" json:"review_comments,omitempty"`
	SubmittedAt    *time.Time     `db:"submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt     *time.Time     `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

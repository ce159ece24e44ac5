package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service appends journal entries. Writes are best-effort: a store failure is
// logged and swallowed so it can never fail the operation being audited.
type Service struct {
	entries Repository
	logger  zerolog.Logger
}

func NewService(entries Repository, logger zerolog.Logger) *Service {
	return &Service{entries: entries, logger: logger}
}

// Record appends an entry. Failures are logged, never returned.
func (s *Service) Record(ctx context.Context, actorID uuid.UUID, action Action, entityType string, entityID uuid.UUID, metadata map[string]interface{}) {
	s.RecordWithSeverity(ctx, actorID, action, entityType, entityID, metadata, SeverityInfo)
}

func (s *Service) RecordWithSeverity(ctx context.Context, actorID uuid.UUID, action Action, entityType string, entityID uuid.UUID, metadata map[string]interface{}, severity Severity) {
	e := &Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		Severity:   severity,
	}
	if err := s.entries.Create(ctx, e); err != nil {
		s.logger.Warn().Err(err).
			Str("action", string(action)).
			Str("entity_type", entityType).
			Str("entity_id", entityID.String()).
			Msg("audit write failed")
	}
}

func (s *Service) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	return s.entries.ListByEntity(ctx, entityType, entityID, limit, offset)
}

func (s *Service) ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	return s.entries.ListByActor(ctx, actorID, limit, offset)
}

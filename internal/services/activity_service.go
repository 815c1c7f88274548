package services

import (
	"context"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"go.uber.org/zap"
)

const defaultActivityLimit = 50

// ActivityService keeps the audit trail of task related events.
type ActivityService struct {
	activities repository.ActivityRepository
	guard      *Guard
	log        *zap.Logger
}

func NewActivityService(activities repository.ActivityRepository, guard *Guard, log *zap.Logger) *ActivityService {
	return &ActivityService{
		activities: activities,
		guard:      guard,
		log:        log,
	}
}

// Record stores an entry. Failures are logged and swallowed.
func (s *ActivityService) Record(ctx context.Context, entityID uuid.UUID, entityName, activity string) {
	entry := &models.Activity{
		EntityID:   entityID,
		EntityName: entityName,
		Activity:   activity,
	}
	if err := s.activities.Create(ctx, entry); err != nil {
		s.log.Warn("failed to record activity",
			zap.String("entity_id", entityID.String()),
			zap.String("activity", activity),
			zap.Error(err),
		)
	}
}

// ListRecent returns the newest entries, admins only.
func (s *ActivityService) ListRecent(ctx context.Context, caller Caller, limit int) ([]models.Activity, error) {
	if err := s.guard.Authorize(ctx, caller, OpActivityList, nil, nil); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}

	activities, err := s.activities.ListRecent(ctx, limit)
	if err != nil {
		return nil, apierrors.Internal("failed to list activities", err)
	}
	return activities, nil
}

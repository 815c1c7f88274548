package repository

import (
	"context"

	"github.com/yukikurage/community-service-hub/internal/database"
	"github.com/yukikurage/community-service-hub/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

func (r *GormActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *GormActivityRepository) ListRecent(ctx context.Context, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.WithContext(ctx).Scopes(database.NewestFirst("")).Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

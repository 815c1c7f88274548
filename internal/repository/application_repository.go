package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/database"
	"github.com/yukikurage/community-service-hub/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// CreateConsumingSlot consumes a task slot and creates the application atomically.
func (r *GormApplicationRepository) CreateConsumingSlot(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeSlot(tx, app.TaskID); err != nil {
			return err
		}
		return tx.Create(app).Error
	})
}

func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *GormApplicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	var apps []models.Application
	if err := r.filtered(ctx, filter).Scopes(database.NewestFirst("applications")).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *GormApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *GormApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Application{}).Error
}

func (r *GormApplicationRepository) CountByStatus(ctx context.Context, filter ApplicationFilter) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Total  int64
	}
	err := r.filtered(ctx, filter).
		Select("applications.status AS status, COUNT(*) AS total").
		Group("applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *GormApplicationRepository) filtered(ctx context.Context, filter ApplicationFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Application{})
	if filter.TaskID != nil {
		query = query.Where("applications.task_id = ?", *filter.TaskID)
	}
	if filter.ApplicantID != nil {
		query = query.Where("applications.applicant_id = ?", *filter.ApplicantID)
	}
	if filter.Status != nil {
		query = query.Where("applications.status = ?", *filter.Status)
	}
	if filter.TaskPostedBy != nil {
		query = query.Joins("JOIN tasks ON tasks.id = applications.task_id").
			Where("tasks.posted_by = ?", *filter.TaskPostedBy)
	}
	return query
}

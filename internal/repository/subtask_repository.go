package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/models"
	"gorm.io/gorm"
)

// GormSubTaskRepository is a GORM implementation of SubTaskRepository
type GormSubTaskRepository struct {
	db *gorm.DB
}

// NewSubTaskRepository creates a new SubTaskRepository
func NewSubTaskRepository(db *gorm.DB) SubTaskRepository {
	return &GormSubTaskRepository{db: db}
}

func (r *GormSubTaskRepository) Create(ctx context.Context, subTask *models.SubTask) error {
	return r.db.WithContext(ctx).Create(subTask).Error
}

func (r *GormSubTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.SubTask, error) {
	var subTask models.SubTask
	if err := r.db.WithContext(ctx).First(&subTask, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subTask, nil
}

func (r *GormSubTaskRepository) List(ctx context.Context, filter SubTaskFilter) ([]models.SubTask, error) {
	var subTasks []models.SubTask
	if err := r.filtered(ctx, filter).Order("sub_tasks.created_at ASC").Find(&subTasks).Error; err != nil {
		return nil, err
	}
	return subTasks, nil
}

func (r *GormSubTaskRepository) Update(ctx context.Context, subTask *models.SubTask) error {
	return r.db.WithContext(ctx).Save(subTask).Error
}

func (r *GormSubTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SubTask{}).Error
}

func (r *GormSubTaskRepository) CountByStatus(ctx context.Context, filter SubTaskFilter) (map[models.SubTaskStatus]int64, error) {
	var rows []struct {
		Status models.SubTaskStatus
		Total  int64
	}
	err := r.filtered(ctx, filter).
		Select("sub_tasks.status AS status, COUNT(*) AS total").
		Group("sub_tasks.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SubTaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *GormSubTaskRepository) filtered(ctx context.Context, filter SubTaskFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.SubTask{})
	if filter.ParentTaskID != nil {
		query = query.Where("sub_tasks.parent_task_id = ?", *filter.ParentTaskID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("sub_tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.TaskPostedBy != nil {
		query = query.Joins("JOIN tasks ON tasks.id = sub_tasks.parent_task_id").
			Where("tasks.posted_by = ?", *filter.TaskPostedBy)
	}
	return query
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/database"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/utils"
	"gorm.io/gorm"
)

// consumeSlotSQL assigns status before remaining_people_needed so that MySQL,
// which evaluates SET left to right, sees the pre-decrement value like every
// other dialect.
const consumeSlotSQL = `UPDATE tasks SET status = CASE WHEN remaining_people_needed = 1 THEN ? ELSE status END, ` +
	`remaining_people_needed = remaining_people_needed - 1, updated_at = ? ` +
	`WHERE id = ? AND status = ? AND remaining_people_needed > 0`

// resizeSQL follows the same ordering rule as consumeSlotSQL: both computed
// columns read number_of_people_needed before it is overwritten.
const resizeSQL = `UPDATE tasks SET status = CASE WHEN remaining_people_needed + (? - number_of_people_needed) = 0 THEN ? ELSE ? END, ` +
	`remaining_people_needed = remaining_people_needed + (? - number_of_people_needed), ` +
	`number_of_people_needed = ?, updated_at = ? ` +
	`WHERE id = ? AND remaining_people_needed + (? - number_of_people_needed) >= 0`

// taskDetailColumns are the columns Update is allowed to write
var taskDetailColumns = []string{
	"name", "category", "description", "address", "latitude", "longitude", "start_date", "updated_at",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PostedBy != nil {
		query = query.Where("posted_by = ?", *filter.PostedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := utils.Page{Number: filter.Page, Size: filter.PageSize}
	if err := query.Scopes(database.NewestFirst(""), database.Paginate(page)).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates the descriptive fields of a task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Model(task).Select(taskDetailColumns).Updates(task).Error
}

// Delete hard deletes a task. It returns gorm.ErrRecordNotFound when no row
// matched.
func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumeSlot takes one slot in a single conditional UPDATE
func (r *GormTaskRepository) ConsumeSlot(ctx context.Context, id uuid.UUID) error {
	return consumeSlot(r.db.WithContext(ctx), id)
}

// Resize changes the capacity of a task
func (r *GormTaskRepository) Resize(ctx context.Context, id uuid.UUID, capacity int) error {
	return resize(r.db.WithContext(ctx), id, capacity)
}

// UpdateResizing writes the descriptive fields and the new capacity in one
// transaction. Nothing is written when the resize is rejected.
func (r *GormTaskRepository) UpdateResizing(ctx context.Context, task *models.Task, capacity int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := resize(tx, task.ID, capacity); err != nil {
			return err
		}
		return tx.Model(task).Select(taskDetailColumns).Updates(task).Error
	})
}

// CountByPoster counts tasks posted by an NGO
func (r *GormTaskRepository) CountByPoster(ctx context.Context, ngoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("posted_by = ?", ngoID).Count(&count).Error
	return count, err
}

// consumeSlot returns gorm.ErrRecordNotFound for an unknown task and
// ErrNoSlotAvailable when the task is closed.
func consumeSlot(tx *gorm.DB, taskID uuid.UUID) error {
	res := tx.Exec(consumeSlotSQL, models.TaskStatusClosed, time.Now(), taskID, models.TaskStatusOpen)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrNoSlotAvailable
}

// resize returns gorm.ErrRecordNotFound for an unknown task and
// ErrCapacityBelowTaken when capacity is under the slots already taken.
func resize(tx *gorm.DB, taskID uuid.UUID, capacity int) error {
	res := tx.Exec(resizeSQL,
		capacity, models.TaskStatusClosed, models.TaskStatusOpen,
		capacity, capacity, time.Now(),
		taskID, capacity,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrCapacityBelowTaken
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService owns task capacity and status.
type TaskService struct {
	tasks    repository.TaskRepository
	accounts repository.AccountRepository
	guard    *Guard
	log      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, accounts repository.AccountRepository, guard *Guard, log *zap.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		accounts: accounts,
		guard:    guard,
		log:      log,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	// PostedBy defaults to the caller when empty
	PostedBy             uuid.UUID
	Name                 string
	Category             string
	Description          string
	Address              string
	Latitude             *float64
	Longitude            *float64
	StartDate            *time.Time
	NumberOfPeopleNeeded int
}

// UpdateTaskInput is a partial update; nil fields are left unchanged
type UpdateTaskInput struct {
	Name                 *string
	Category             *string
	Description          *string
	Address              *string
	Latitude             *float64
	Longitude            *float64
	StartDate            *time.Time
	NumberOfPeopleNeeded *int
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status   *models.TaskStatus
	Category string
	PostedBy *uuid.UUID
	Page     int
	PageSize int
}

// CreateTask stores a new OPEN task with every slot available.
func (s *TaskService) CreateTask(ctx context.Context, caller Caller, input CreateTaskInput) (*models.Task, error) {
	if caller.Role != models.RoleNGO && !caller.IsAdmin() {
		return nil, ErrTaskPosterRole
	}
	if input.PostedBy == uuid.Nil {
		input.PostedBy = caller.ID
	}
	if err := s.guard.Authorize(ctx, caller, OpTaskCreate, &input.PostedBy, nil); err != nil {
		return nil, err
	}

	ngo, err := s.accounts.FindNGOByID(ctx, input.PostedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNGONotFound
		}
		return nil, apierrors.Internal("failed to find NGO", err)
	}
	if !ngo.IsApproved {
		return nil, ErrNGONotApproved
	}

	name := utils.SanitizeText(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}
	if input.NumberOfPeopleNeeded < 1 {
		return nil, ErrInvalidCapacity
	}

	task := &models.Task{
		PostedBy:              ngo.ID,
		Name:                  name,
		Category:              strings.TrimSpace(input.Category),
		Description:           utils.SanitizeText(input.Description),
		Address:               utils.SanitizeText(input.Address),
		Latitude:              input.Latitude,
		Longitude:             input.Longitude,
		StartDate:             input.StartDate,
		NumberOfPeopleNeeded:  input.NumberOfPeopleNeeded,
		RemainingPeopleNeeded: input.NumberOfPeopleNeeded,
		Status:                models.TaskStatusOpen,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apierrors.Internal("failed to create task", err)
	}

	s.log.Info("task created", zap.String("task_id", task.ID.String()), zap.String("posted_by", ngo.ID.String()))
	return task, nil
}

// GetTask returns a task by id
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apierrors.Internal("failed to find task", err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filters
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.tasks.List(ctx, repository.TaskFilter{
		Status:   input.Status,
		Category: strings.TrimSpace(input.Category),
		PostedBy: input.PostedBy,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, apierrors.Internal("failed to list tasks", err)
	}
	return tasks, total, nil
}

// ListTasksForNGO returns the tasks posted by the caller
func (s *TaskService) ListTasksForNGO(ctx context.Context, caller Caller, page, pageSize int) ([]models.Task, int64, error) {
	return s.ListTasks(ctx, ListTasksInput{PostedBy: &caller.ID, Page: page, PageSize: pageSize})
}

// UpdateTask applies a partial update. A new capacity shifts the remaining
// count by the difference, and may not fall below the slots already taken.
func (s *TaskService) UpdateTask(ctx context.Context, caller Caller, id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	if err := s.guard.Authorize(ctx, caller, OpTaskEdit, nil, &id); err != nil {
		return nil, err
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.NumberOfPeopleNeeded != nil && *input.NumberOfPeopleNeeded < 1 {
		return nil, ErrInvalidCapacity
	}
	if input.Name != nil {
		name := utils.SanitizeText(*input.Name)
		if name == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = name
	}
	if input.Category != nil {
		task.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		task.Description = utils.SanitizeText(*input.Description)
	}
	if input.Address != nil {
		task.Address = utils.SanitizeText(*input.Address)
	}
	if input.Latitude != nil {
		task.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		task.Longitude = input.Longitude
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}

	if input.NumberOfPeopleNeeded == nil || *input.NumberOfPeopleNeeded == task.NumberOfPeopleNeeded {
		if err := s.tasks.Update(ctx, task); err != nil {
			return nil, apierrors.Internal("failed to update task", err)
		}
		return s.GetTask(ctx, id)
	}

	if err := s.tasks.UpdateResizing(ctx, task, *input.NumberOfPeopleNeeded); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityBelowTaken):
			return nil, ErrCapacityBelowTaken
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrTaskNotFound
		default:
			return nil, apierrors.Internal("failed to resize task", err)
		}
	}

	return s.GetTask(ctx, id)
}

// DeleteTask hard deletes a task. Applications and subtasks are kept.
func (s *TaskService) DeleteTask(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := s.guard.Authorize(ctx, caller, OpTaskRemove, nil, &id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return apierrors.Internal("failed to delete task", err)
	}

	s.log.Info("task deleted", zap.String("task_id", id.String()))
	return nil
}

// ConsumeSlot takes one slot on an OPEN task, closing it on the last one.
func (s *TaskService) ConsumeSlot(ctx context.Context, id uuid.UUID) error {
	return slotError(s.tasks.ConsumeSlot(ctx, id))
}

func slotError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNoSlotAvailable):
		return ErrTaskClosed
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTaskNotFound
	default:
		return apierrors.Internal("failed to consume task slot", err)
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/constants"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubTaskService handles subtask assignment and progress.
type SubTaskService struct {
	subTasks  repository.SubTaskRepository
	tasks     repository.TaskRepository
	accounts  repository.AccountRepository
	guard     *Guard
	generator SubTaskGenerator
	log       *zap.Logger
}

// NewSubTaskService creates a new SubTaskService. generator may be nil.
func NewSubTaskService(
	subTasks repository.SubTaskRepository,
	tasks repository.TaskRepository,
	accounts repository.AccountRepository,
	guard *Guard,
	generator SubTaskGenerator,
	log *zap.Logger,
) *SubTaskService {
	return &SubTaskService{
		subTasks:  subTasks,
		tasks:     tasks,
		accounts:  accounts,
		guard:     guard,
		generator: generator,
		log:       log,
	}
}

// CreateSubTaskInput represents input for creating a subtask
type CreateSubTaskInput struct {
	ParentTaskID uuid.UUID
	Name         string
	Description  string
	AssigneeID   *uuid.UUID
	DueDate      *time.Time
}

// UpdateSubTaskInput is a partial update; nil fields are left unchanged
type UpdateSubTaskInput struct {
	Name        *string
	Description *string
	DueDate     *time.Time
}

// ParseSubTaskStatus accepts the progress states a volunteer may report,
// ONGOING and COMPLETED, case insensitive.
func ParseSubTaskStatus(s string) (models.SubTaskStatus, error) {
	switch models.SubTaskStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case models.SubTaskStatusOngoing:
		return models.SubTaskStatusOngoing, nil
	case models.SubTaskStatusCompleted:
		return models.SubTaskStatusCompleted, nil
	default:
		return "", ErrSubTaskStatusNotFound
	}
}

// Create adds a subtask to a task. It starts ASSIGNED when an assignee is given.
func (s *SubTaskService) Create(ctx context.Context, caller Caller, input CreateSubTaskInput) (*models.SubTask, error) {
	if _, err := s.findTask(ctx, input.ParentTaskID); err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpSubTaskCreate, nil, &input.ParentTaskID); err != nil {
		return nil, err
	}

	name, description, err := validateSubTaskText(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	subTask := &models.SubTask{
		ParentTaskID: input.ParentTaskID,
		Name:         name,
		Description:  description,
		DueDate:      input.DueDate,
		Status:       models.SubTaskStatusNotAssigned,
	}

	if input.AssigneeID != nil {
		if err := s.ensureAssignee(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
		assignee := *input.AssigneeID
		subTask.AssigneeID = &assignee
		subTask.Status = models.SubTaskStatusAssigned
	}

	if err := s.subTasks.Create(ctx, subTask); err != nil {
		return nil, apierrors.Internal("failed to create subtask", err)
	}
	return subTask, nil
}

// Get returns a subtask to the poster of its parent task or to its assignee
func (s *SubTaskService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.SubTask, error) {
	subTask, err := s.findSubTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpSubTaskGet, subTask.AssigneeID, &subTask.ParentTaskID); err != nil {
		return nil, err
	}
	return subTask, nil
}

// ListAll returns every subtask, admins only
func (s *SubTaskService) ListAll(ctx context.Context, caller Caller) ([]models.SubTask, error) {
	if err := s.guard.Authorize(ctx, caller, OpSubTaskListAll, nil, nil); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.SubTaskFilter{})
}

// ListByParent returns the subtasks of a task to its poster
func (s *SubTaskService) ListByParent(ctx context.Context, caller Caller, taskID uuid.UUID) ([]models.SubTask, error) {
	if err := s.guard.Authorize(ctx, caller, OpSubTaskListByTask, nil, &taskID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.SubTaskFilter{ParentTaskID: &taskID})
}

// ListForAssignee returns the subtasks assigned to the caller
func (s *SubTaskService) ListForAssignee(ctx context.Context, caller Caller) ([]models.SubTask, error) {
	return s.list(ctx, repository.SubTaskFilter{AssigneeID: &caller.ID})
}

// Update edits the descriptive fields of a subtask
func (s *SubTaskService) Update(ctx context.Context, caller Caller, id uuid.UUID, input UpdateSubTaskInput) (*models.SubTask, error) {
	subTask, err := s.findSubTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpSubTaskUpdate, nil, &subTask.ParentTaskID); err != nil {
		return nil, err
	}

	name, description := subTask.Name, subTask.Description
	if input.Name != nil {
		name = *input.Name
	}
	if input.Description != nil {
		description = *input.Description
	}
	if subTask.Name, subTask.Description, err = validateSubTaskText(name, description); err != nil {
		return nil, err
	}
	if input.DueDate != nil {
		subTask.DueDate = input.DueDate
	}

	if err := s.subTasks.Update(ctx, subTask); err != nil {
		return nil, apierrors.Internal("failed to update subtask", err)
	}
	return subTask, nil
}

// Delete hard deletes a subtask
func (s *SubTaskService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	subTask, err := s.findSubTask(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, caller, OpSubTaskRemove, nil, &subTask.ParentTaskID); err != nil {
		return err
	}
	if err := s.subTasks.Delete(ctx, id); err != nil {
		return apierrors.Internal("failed to delete subtask", err)
	}
	return nil
}

// Assign hands a subtask to an account and marks it ASSIGNED, replacing any
// earlier assignee and status.
func (s *SubTaskService) Assign(ctx context.Context, caller Caller, id, assigneeID uuid.UUID) (*models.SubTask, error) {
	subTask, err := s.findSubTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAssignee(ctx, assigneeID); err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpSubTaskAssign, nil, &subTask.ParentTaskID); err != nil {
		return nil, err
	}

	subTask.AssigneeID = &assigneeID
	subTask.Status = models.SubTaskStatusAssigned
	if err := s.subTasks.Update(ctx, subTask); err != nil {
		return nil, apierrors.Internal("failed to assign subtask", err)
	}

	s.log.Info("subtask assigned",
		zap.String("subtask_id", subTask.ID.String()),
		zap.String("assignee_id", assigneeID.String()),
	)
	return subTask, nil
}

// SetStatus records progress on a subtask. Any caller may report progress.
func (s *SubTaskService) SetStatus(ctx context.Context, caller Caller, id uuid.UUID, status string) (*models.SubTask, error) {
	if err := s.guard.Authorize(ctx, caller, OpSubTaskSetStatus, nil, nil); err != nil {
		return nil, err
	}

	subTask, err := s.findSubTask(ctx, id)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseSubTaskStatus(status)
	if err != nil {
		return nil, err
	}

	subTask.Status = parsed
	if err := s.subTasks.Update(ctx, subTask); err != nil {
		return nil, apierrors.Internal("failed to update subtask status", err)
	}
	return subTask, nil
}

// Suggest asks the generator for subtasks and stores the valid ones as
// NOT_ASSIGNED.
func (s *SubTaskService) Suggest(ctx context.Context, caller Caller, taskID uuid.UUID, notes string) ([]models.SubTask, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if err := s.guard.Authorize(ctx, caller, OpSubTaskSuggest, nil, &taskID); err != nil {
		return nil, err
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateSubTasks(ctx, task, utils.SanitizeText(notes))
	if err != nil {
		return nil, apierrors.Internal("failed to generate subtasks", err)
	}
	if len(generated) == 0 {
		return nil, ErrAINoSubTasksGenerated
	}
	if len(generated) > constants.MaxAIGeneratedSubTasks {
		generated = generated[:constants.MaxAIGeneratedSubTasks]
	}

	created := make([]models.SubTask, 0, len(generated))
	for _, g := range generated {
		name, description, err := validateSubTaskText(g.Name, g.Description)
		if err != nil {
			s.log.Debug("skipping generated subtask", zap.String("name", g.Name), zap.Error(err))
			continue
		}
		subTask := models.SubTask{
			ParentTaskID: task.ID,
			Name:         name,
			Description:  description,
			DueDate:      g.DueDate,
			Status:       models.SubTaskStatusNotAssigned,
		}
		if err := s.subTasks.Create(ctx, &subTask); err != nil {
			return nil, apierrors.Internal("failed to create subtask", err)
		}
		created = append(created, subTask)
	}

	if len(created) == 0 {
		return nil, ErrAINoSubTasksGenerated
	}
	return created, nil
}

func (s *SubTaskService) list(ctx context.Context, filter repository.SubTaskFilter) ([]models.SubTask, error) {
	subTasks, err := s.subTasks.List(ctx, filter)
	if err != nil {
		return nil, apierrors.Internal("failed to list subtasks", err)
	}
	return subTasks, nil
}

func (s *SubTaskService) findTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apierrors.Internal("failed to find task", err)
	}
	return task, nil
}

func (s *SubTaskService) findSubTask(ctx context.Context, id uuid.UUID) (*models.SubTask, error) {
	subTask, err := s.subTasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubTaskNotFound
		}
		return nil, apierrors.Internal("failed to find subtask", err)
	}
	return subTask, nil
}

func (s *SubTaskService) ensureAssignee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return apierrors.Internal("failed to find assignee", err)
	}
	return nil
}

func validateSubTaskText(name, description string) (string, string, error) {
	name = utils.SanitizeText(name)
	if name == "" {
		return "", "", ErrSubTaskNameRequired
	}
	description = utils.SanitizeText(description)
	if utf8.RuneCountInString(description) > models.MaxSubTaskDescriptionLength {
		return "", "", ErrSubTaskDescriptionTooLong
	}
	return name, description, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/notification"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplicationService runs the application workflow.
type ApplicationService struct {
	applications repository.ApplicationRepository
	tasks        repository.TaskRepository
	accounts     repository.AccountRepository
	guard        *Guard
	activities   *ActivityService
	notifier     notification.Notifier
	log          *zap.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applications repository.ApplicationRepository,
	tasks repository.TaskRepository,
	accounts repository.AccountRepository,
	guard *Guard,
	activities *ActivityService,
	notifier notification.Notifier,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		tasks:        tasks,
		accounts:     accounts,
		guard:        guard,
		activities:   activities,
		notifier:     notifier,
		log:          log,
	}
}

// ApplyInput represents an application for a task. Contact fields default
// to the applicant's account.
type ApplyInput struct {
	TaskID               uuid.UUID
	ApplicantID          uuid.UUID
	ApplicantName        string
	Phone                string
	Email                string
	ReasonForApplication string
}

// UpdateApplicationInput is a partial update; nil fields are left unchanged
type UpdateApplicationInput struct {
	ApplicantName        *string
	Phone                *string
	Email                *string
	ReasonForApplication *string
}

// ParseDecision accepts APPROVED or REJECTED, case insensitive.
func ParseDecision(s string) (models.ApplicationStatus, error) {
	switch models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case models.ApplicationStatusApproved:
		return models.ApplicationStatusApproved, nil
	case models.ApplicationStatusRejected:
		return models.ApplicationStatusRejected, nil
	default:
		return "", ErrInvalidDecision
	}
}

// Apply consumes a slot on the task and records a PENDING application. The
// slot is held from submission on, whatever the later decision.
func (s *ApplicationService) Apply(ctx context.Context, caller Caller, input ApplyInput) (*models.Application, error) {
	if input.ApplicantID == uuid.Nil {
		input.ApplicantID = caller.ID
	}
	if err := s.guard.Authorize(ctx, caller, OpApplicationApply, &input.ApplicantID, nil); err != nil {
		return nil, err
	}

	applicant, err := s.accounts.FindByID(ctx, input.ApplicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, apierrors.Internal("failed to find applicant", err)
	}

	task, err := s.findTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusClosed {
		return nil, ErrTaskClosed
	}

	app := &models.Application{
		ApplicantID:          applicant.ID,
		ApplicantName:        orDefault(utils.SanitizeText(input.ApplicantName), applicant.Name),
		Phone:                orDefault(strings.TrimSpace(input.Phone), applicant.Phone),
		Email:                orDefault(strings.TrimSpace(input.Email), applicant.Email),
		ReasonForApplication: utils.SanitizeText(input.ReasonForApplication),
		TaskID:               task.ID,
		Status:               models.ApplicationStatusPending,
	}

	if err := s.applications.CreateConsumingSlot(ctx, app); err != nil {
		return nil, slotError(err)
	}

	s.log.Info("application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("task_id", task.ID.String()),
	)
	s.activities.Record(ctx, task.ID, task.Name, app.ApplicantName+" applied")
	notify(ctx, s.notifier, s.log, notification.ApplicationReceivedMessage(app.Email, app.ApplicantName, task.Name))

	return app, nil
}

// Get returns an application to its applicant or the task's poster
func (s *ApplicationService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Application, error) {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpApplicationGet, &app.ApplicantID, &app.TaskID); err != nil {
		return nil, err
	}
	return app, nil
}

// ListAll returns every application, admins only
func (s *ApplicationService) ListAll(ctx context.Context, caller Caller) ([]models.Application, error) {
	if err := s.guard.Authorize(ctx, caller, OpApplicationListAll, nil, nil); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ApplicationFilter{})
}

// ListForCaller returns the caller's own applications
func (s *ApplicationService) ListForCaller(ctx context.Context, caller Caller) ([]models.Application, error) {
	return s.list(ctx, repository.ApplicationFilter{ApplicantID: &caller.ID})
}

// ListForTask returns the applications of a task to its poster
func (s *ApplicationService) ListForTask(ctx context.Context, caller Caller, taskID uuid.UUID) ([]models.Application, error) {
	if err := s.guard.Authorize(ctx, caller, OpApplicationListForTask, nil, &taskID); err != nil {
		return nil, err
	}
	return s.list(ctx, repository.ApplicationFilter{TaskID: &taskID})
}

// Decide approves or rejects an application. A decided application may be
// decided again; capacity is not touched either way.
func (s *ApplicationService) Decide(ctx context.Context, caller Caller, id uuid.UUID, decision string) (*models.Application, error) {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := ParseDecision(decision)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpApplicationDecide, nil, &app.TaskID); err != nil {
		return nil, err
	}

	app.Status = status
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, apierrors.Internal("failed to update application", err)
	}

	taskName := s.taskName(ctx, app.TaskID)
	s.log.Info("application decided",
		zap.String("application_id", app.ID.String()),
		zap.String("status", string(status)),
	)
	s.activities.Record(ctx, app.TaskID, taskName, "application of "+app.ApplicantName+" "+strings.ToLower(string(status)))
	notify(ctx, s.notifier, s.log, notification.ApplicationDecisionMessage(app.Email, app.ApplicantName, taskName, string(status)))

	return app, nil
}

// Update edits the applicant supplied fields of an application
func (s *ApplicationService) Update(ctx context.Context, caller Caller, id uuid.UUID, input UpdateApplicationInput) (*models.Application, error) {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, caller, OpApplicationUpdate, &app.ApplicantID, &app.TaskID); err != nil {
		return nil, err
	}

	if input.ApplicantName != nil {
		if name := utils.SanitizeText(*input.ApplicantName); name != "" {
			app.ApplicantName = name
		}
	}
	if input.Phone != nil {
		app.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		app.Email = strings.TrimSpace(*input.Email)
	}
	if input.ReasonForApplication != nil {
		app.ReasonForApplication = utils.SanitizeText(*input.ReasonForApplication)
	}

	if err := s.applications.Update(ctx, app); err != nil {
		return nil, apierrors.Internal("failed to update application", err)
	}

	s.activities.Record(ctx, app.TaskID, s.taskName(ctx, app.TaskID), "application of "+app.ApplicantName+" updated")
	return app, nil
}

// Withdraw deletes an application. The consumed slot is not returned.
func (s *ApplicationService) Withdraw(ctx context.Context, caller Caller, id uuid.UUID) error {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(ctx, caller, OpApplicationWithdraw, &app.ApplicantID, &app.TaskID); err != nil {
		return err
	}

	if err := s.applications.Delete(ctx, id); err != nil {
		return apierrors.Internal("failed to delete application", err)
	}

	s.activities.Record(ctx, app.TaskID, s.taskName(ctx, app.TaskID), "application of "+app.ApplicantName+" withdrawn")
	return nil
}

func (s *ApplicationService) list(ctx context.Context, filter repository.ApplicationFilter) ([]models.Application, error) {
	apps, err := s.applications.List(ctx, filter)
	if err != nil {
		return nil, apierrors.Internal("failed to list applications", err)
	}
	return apps, nil
}

func (s *ApplicationService) findApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, apierrors.Internal("failed to find application", err)
	}
	return app, nil
}

func (s *ApplicationService) findTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apierrors.Internal("failed to find task", err)
	}
	return task, nil
}

// taskName is used for activity and notification text only; a deleted task
// leaves it empty.
func (s *ApplicationService) taskName(ctx context.Context, id uuid.UUID) string {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return task.Name
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

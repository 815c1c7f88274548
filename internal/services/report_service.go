package services

import (
	"context"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/repository"
)

// NGOStats summarizes the work of one NGO.
type NGOStats struct {
	TasksPosted  int64                              `json:"tasks_posted"`
	Applications map[models.ApplicationStatus]int64 `json:"applications"`
	SubTasks     map[models.SubTaskStatus]int64     `json:"subtasks"`
}

// ReportService builds dashboard figures.
type ReportService struct {
	tasks        repository.TaskRepository
	applications repository.ApplicationRepository
	subTasks     repository.SubTaskRepository
	guard        *Guard
}

func NewReportService(
	tasks repository.TaskRepository,
	applications repository.ApplicationRepository,
	subTasks repository.SubTaskRepository,
	guard *Guard,
) *ReportService {
	return &ReportService{
		tasks:        tasks,
		applications: applications,
		subTasks:     subTasks,
		guard:        guard,
	}
}

// NGOStats returns the figures for the calling NGO. Admins may pass any NGO id.
func (s *ReportService) NGOStats(ctx context.Context, caller Caller, ngoID uuid.UUID) (*NGOStats, error) {
	if ngoID == uuid.Nil {
		ngoID = caller.ID
	}
	if err := s.guard.Authorize(ctx, caller, OpReportNGOStats, &ngoID, nil); err != nil {
		return nil, err
	}

	posted, err := s.tasks.CountByPoster(ctx, ngoID)
	if err != nil {
		return nil, apierrors.Internal("failed to count tasks", err)
	}
	applications, err := s.applications.CountByStatus(ctx, repository.ApplicationFilter{TaskPostedBy: &ngoID})
	if err != nil {
		return nil, apierrors.Internal("failed to count applications", err)
	}
	subTasks, err := s.subTasks.CountByStatus(ctx, repository.SubTaskFilter{TaskPostedBy: &ngoID})
	if err != nil {
		return nil, apierrors.Internal("failed to count subtasks", err)
	}

	return &NGOStats{
		TasksPosted:  posted,
		Applications: applications,
		SubTasks:     subTasks,
	}, nil
}

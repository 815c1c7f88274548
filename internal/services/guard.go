package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"gorm.io/gorm"
)

// Caller is the authenticated account invoking an operation.
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Operation names a guarded entry point.
type Operation string

const (
	OpTaskCreate Operation = "task.create"
	OpTaskEdit   Operation = "task.edit"
	OpTaskRemove Operation = "task.remove"

	OpApplicationApply       Operation = "application.apply"
	OpApplicationGet         Operation = "application.get"
	OpApplicationUpdate      Operation = "application.update"
	OpApplicationWithdraw    Operation = "application.withdraw"
	OpApplicationDecide      Operation = "application.decide"
	OpApplicationListForTask Operation = "application.listForTask"
	OpApplicationListAll     Operation = "application.listAll"

	OpSubTaskCreate     Operation = "subtask.create"
	OpSubTaskGet        Operation = "subtask.get"
	OpSubTaskAssign     Operation = "subtask.assign"
	OpSubTaskUpdate     Operation = "subtask.update"
	OpSubTaskRemove     Operation = "subtask.remove"
	OpSubTaskListByTask Operation = "subtask.listByTask"
	OpSubTaskSuggest    Operation = "subtask.suggest"
	OpSubTaskListAll    Operation = "subtask.listAll"
	OpSubTaskSetStatus  Operation = "subtask.setStatus"

	OpActivityList Operation = "activity.list"
	OpNGOList      Operation = "ngo.list"
	OpNGOApprove   Operation = "ngo.approve"

	OpReportNGOStats Operation = "report.ngoStats"
)

// Rule is the check applied to an operation.
type Rule int

const (
	// RuleNone performs no check.
	RuleNone Rule = iota
	// RuleTargets runs IsAuthorized against the supplied targets.
	RuleTargets
	// RuleAdmin admits ADMIN callers only.
	RuleAdmin
)

// Policy lists every guarded operation. An operation missing from the table is denied.
var Policy = map[Operation]Rule{
	OpTaskCreate: RuleTargets,
	OpTaskEdit:   RuleTargets,
	OpTaskRemove: RuleTargets,

	OpApplicationApply:       RuleTargets,
	OpApplicationGet:         RuleTargets,
	OpApplicationUpdate:      RuleTargets,
	OpApplicationWithdraw:    RuleTargets,
	OpApplicationDecide:      RuleTargets,
	OpApplicationListForTask: RuleTargets,
	OpApplicationListAll:     RuleAdmin,

	OpSubTaskCreate:     RuleTargets,
	OpSubTaskGet:        RuleTargets,
	OpSubTaskAssign:     RuleTargets,
	OpSubTaskUpdate:     RuleTargets,
	OpSubTaskRemove:     RuleTargets,
	OpSubTaskListByTask: RuleTargets,
	OpSubTaskSuggest:    RuleTargets,
	OpSubTaskListAll:    RuleAdmin,
	OpSubTaskSetStatus:  RuleNone,

	OpActivityList: RuleAdmin,
	OpNGOList:      RuleAdmin,
	OpNGOApprove:   RuleAdmin,

	OpReportNGOStats: RuleTargets,
}

// Guard decides whether a caller may act on an applicant and/or a task.
type Guard struct {
	tasks repository.TaskRepository
}

func NewGuard(tasks repository.TaskRepository) *Guard {
	return &Guard{tasks: tasks}
}

// IsAuthorized applies the ownership rules:
//   - ADMIN is always allowed
//   - with both targets, the caller must be the applicant or the task's poster
//   - with only a task, the caller must be the task's poster
//   - with only an applicant, the caller must be the applicant
//   - with no target, everyone is allowed
//
// ErrTaskNotFound is returned when taskID does not resolve.
func (g *Guard) IsAuthorized(ctx context.Context, caller Caller, applicantID, taskID *uuid.UUID) (bool, error) {
	if caller.IsAdmin() {
		return true, nil
	}

	if taskID != nil {
		task, err := g.tasks.FindByID(ctx, *taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, ErrTaskNotFound
			}
			return false, apierrors.Internal("failed to find task", err)
		}
		if applicantID != nil && *applicantID == caller.ID {
			return true, nil
		}
		return task.PostedBy == caller.ID, nil
	}

	if applicantID != nil {
		return *applicantID == caller.ID, nil
	}
	return true, nil
}

// Authorize enforces the policy entry for op. It returns ErrForbidden on denial.
func (g *Guard) Authorize(ctx context.Context, caller Caller, op Operation, applicantID, taskID *uuid.UUID) error {
	rule, ok := Policy[op]
	if !ok {
		return apierrors.Internal("authorization", fmt.Errorf("no policy for operation %q", op))
	}

	switch rule {
	case RuleNone:
		return nil
	case RuleAdmin:
		if caller.IsAdmin() {
			return nil
		}
		return ErrForbidden
	default:
		allowed, err := g.IsAuthorized(ctx, caller, applicantID, taskID)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrForbidden
		}
		return nil
	}
}

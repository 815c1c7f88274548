package services

import (
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
)

var (
	ErrForbidden = apierrors.New(apierrors.KindUnauthorized, "caller is not authorized for this operation")

	ErrAccountNotFound    = apierrors.New(apierrors.KindNotFound, "account not found")
	ErrNGONotFound        = apierrors.New(apierrors.KindNotFound, "NGO not found")
	ErrNGONotApproved     = apierrors.New(apierrors.KindUnauthorized, "NGO has not been approved")
	ErrEmailTaken         = apierrors.New(apierrors.KindConflict, "email is already registered")
	ErrInvalidCredentials = apierrors.New(apierrors.KindUnauthorized, "invalid email or password")
	ErrAccountNotVerified = apierrors.New(apierrors.KindUnauthorized, "account has not been verified")
	ErrPasswordTooShort   = apierrors.New(apierrors.KindInvalidArgument, "password too short")
	ErrNameRequired       = apierrors.New(apierrors.KindInvalidArgument, "name is required")
	ErrEmailRequired      = apierrors.New(apierrors.KindInvalidArgument, "email is required")

	ErrTaskNotFound       = apierrors.New(apierrors.KindNotFound, "task not found")
	ErrTaskClosed         = apierrors.New(apierrors.KindConflict, "task is closed for application")
	ErrTaskNameRequired   = apierrors.New(apierrors.KindInvalidArgument, "task name is required")
	ErrInvalidCapacity    = apierrors.New(apierrors.KindInvalidArgument, "number of people needed must be at least 1")
	ErrCapacityBelowTaken = apierrors.New(apierrors.KindInvalidArgument, "number of people needed is below the slots already taken")
	ErrTaskPosterRole     = apierrors.New(apierrors.KindUnauthorized, "only NGOs and admins can post tasks")

	ErrApplicationNotFound = apierrors.New(apierrors.KindNotFound, "application not found")
	ErrApplicantNotFound   = apierrors.New(apierrors.KindNotFound, "applicant not found")
	ErrInvalidDecision     = apierrors.New(apierrors.KindInvalidArgument, "decision must be APPROVED or REJECTED")

	ErrSubTaskNotFound           = apierrors.New(apierrors.KindNotFound, "subtask not found")
	ErrAssigneeNotFound          = apierrors.New(apierrors.KindNotFound, "assignee not found")
	ErrSubTaskStatusNotFound     = apierrors.New(apierrors.KindNotFound, "status provided does not exist")
	ErrSubTaskNameRequired       = apierrors.New(apierrors.KindInvalidArgument, "subtask name is required")
	ErrSubTaskDescriptionTooLong = apierrors.New(apierrors.KindInvalidArgument, "subtask description exceeds 1000 characters")

	ErrOTPNotFound = apierrors.New(apierrors.KindNotFound, "OTP record not found")
	ErrOTPExpired  = apierrors.New(apierrors.KindInvalidArgument, "OTP has expired")
	ErrOTPMismatch = apierrors.New(apierrors.KindInvalidArgument, "OTP does not match")

	ErrAIServiceNotConfigured = apierrors.New(apierrors.KindInternal, "AI service is not configured")
	ErrAINoSubTasksGenerated  = apierrors.New(apierrors.KindInternal, "AI did not generate any subtasks")
)

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/models"
)

var (
	// ErrNoSlotAvailable is returned when a slot is requested on a closed task.
	ErrNoSlotAvailable = errors.New("task repository: no slot available")

	// ErrCapacityBelowTaken is returned when a resize would drop capacity below
	// the slots already taken.
	ErrCapacityBelowTaken = errors.New("task repository: capacity below taken slots")
)

// AccountRepository is the identity store over users and NGOs.
type AccountRepository interface {
	// FindByID resolves an account id against users first, then NGOs
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// FindByEmail resolves an email against users first, then NGOs
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// PasswordHash returns the stored hash for the account with the given email
	PasswordHash(ctx context.Context, email string) (*models.Account, string, error)

	CreateUser(ctx context.Context, user *models.User) error
	CreateNGO(ctx context.Context, ngo *models.NGO) error
	FindNGOByID(ctx context.Context, id uuid.UUID) (*models.NGO, error)
	UpdateNGO(ctx context.Context, ngo *models.NGO) error
	ListNGOs(ctx context.Context, approved *bool) ([]models.NGO, error)

	// EmailTaken reports whether any account already uses email
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)
	// Update writes the descriptive fields only. Capacity and status change
	// through ConsumeSlot and Resize.
	Update(ctx context.Context, task *models.Task) error

	// Delete hard deletes a task. Child records are left in place. Returns
	// gorm.ErrRecordNotFound for an unknown id.
	Delete(ctx context.Context, id uuid.UUID) error

	// ConsumeSlot atomically takes one slot, closing the task on the last one
	ConsumeSlot(ctx context.Context, id uuid.UUID) error

	// Resize sets a new capacity and shifts remaining by (capacity - old
	// capacity) in a single UPDATE, deriving status from the result
	Resize(ctx context.Context, id uuid.UUID, capacity int) error

	// UpdateResizing is Update and Resize in one transaction
	UpdateResizing(ctx context.Context, task *models.Task, capacity int) error

	CountByPoster(ctx context.Context, ngoID uuid.UUID) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status   *models.TaskStatus
	Category string
	PostedBy *uuid.UUID
	Page     int
	PageSize int
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	// CreateConsumingSlot takes a slot on the application's task and stores the
	// application in one transaction
	CreateConsumingSlot(ctx context.Context, app *models.Application) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, filter ApplicationFilter) (map[models.ApplicationStatus]int64, error)
}

// ApplicationFilter holds filtering options for applications
type ApplicationFilter struct {
	TaskID       *uuid.UUID
	ApplicantID  *uuid.UUID
	TaskPostedBy *uuid.UUID
	Status       *models.ApplicationStatus
}

// SubTaskRepository defines the interface for subtask data access
type SubTaskRepository interface {
	Create(ctx context.Context, subTask *models.SubTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SubTask, error)
	List(ctx context.Context, filter SubTaskFilter) ([]models.SubTask, error)
	Update(ctx context.Context, subTask *models.SubTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, filter SubTaskFilter) (map[models.SubTaskStatus]int64, error)
}

// SubTaskFilter holds filtering options for subtasks
type SubTaskFilter struct {
	ParentTaskID *uuid.UUID
	AssigneeID   *uuid.UUID
	TaskPostedBy *uuid.UUID
}

// OTPRepository defines the interface for one-time code storage
type OTPRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.OTP, error)

	// Replace deletes any record for otp.UserID and stores otp in one transaction
	Replace(ctx context.Context, otp *models.OTP) error

	// Consume marks the record used and removes it
	Consume(ctx context.Context, id uuid.UUID) error
}

// ActivityRepository stores audit entries
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubTaskStatus string

const (
	SubTaskStatusNotAssigned SubTaskStatus = "NOT_ASSIGNED"
	SubTaskStatusAssigned    SubTaskStatus = "ASSIGNED"
	SubTaskStatusOngoing     SubTaskStatus = "ONGOING"
	SubTaskStatusCompleted   SubTaskStatus = "COMPLETED"
)

// MaxSubTaskDescriptionLength bounds SubTask.Description in characters.
const MaxSubTaskDescriptionLength = 1000

type SubTask struct {
	ID           uuid.UUID     `gorm:"type:char(36);primarykey" json:"id"`
	ParentTaskID uuid.UUID     `gorm:"type:char(36);not null;index" json:"parent_task_id"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	Description  string        `gorm:"type:varchar(1000)" json:"description"`
	AssigneeID   *uuid.UUID    `gorm:"type:char(36);index" json:"assignee_id"`
	Status       SubTaskStatus `gorm:"type:varchar(20);not null;default:'NOT_ASSIGNED'" json:"status"`
	DueDate      *time.Time    `json:"due_date"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (s *SubTask) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

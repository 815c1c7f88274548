package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "OPEN"
	TaskStatusClosed TaskStatus = "CLOSED"
)

type Task struct {
	ID                    uuid.UUID  `gorm:"type:char(36);primarykey" json:"id"`
	PostedBy              uuid.UUID  `gorm:"type:char(36);not null;index" json:"posted_by"`
	Name                  string     `gorm:"type:varchar(255);not null" json:"name"`
	Category              string     `gorm:"type:varchar(100)" json:"category"`
	Description           string     `gorm:"type:varchar(1000)" json:"description"`
	Address               string     `gorm:"type:varchar(255)" json:"address"`
	Latitude              *float64   `json:"latitude"`
	Longitude             *float64   `json:"longitude"`
	StartDate             *time.Time `json:"start_date"`
	NumberOfPeopleNeeded  int        `gorm:"not null" json:"number_of_people_needed"`
	RemainingPeopleNeeded int        `gorm:"not null" json:"remaining_people_needed"`
	Status                TaskStatus `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// SyncStatus derives the status from the remaining slot count.
func (t *Task) SyncStatus() {
	if t.RemainingPeopleNeeded == 0 {
		t.Status = TaskStatusClosed
	} else {
		t.Status = TaskStatusOpen
	}
}

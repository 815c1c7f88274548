package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

type Application struct {
	ID                   uuid.UUID         `gorm:"type:char(36);primarykey" json:"id"`
	ApplicantID          uuid.UUID         `gorm:"type:char(36);not null;index" json:"applicant_id"`
	ApplicantName        string            `gorm:"type:varchar(255)" json:"applicant_name"`
	Phone                string            `gorm:"type:varchar(50)" json:"phone"`
	Email                string            `gorm:"type:varchar(255)" json:"email"`
	ReasonForApplication string            `gorm:"type:text" json:"reason_for_application"`
	TaskID               uuid.UUID         `gorm:"type:char(36);not null;index" json:"task_id"`
	Status               ApplicationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

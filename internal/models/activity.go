package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is an audit entry about an entity, usually a task.
type Activity struct {
	ID         uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	EntityID   uuid.UUID `gorm:"type:char(36);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name"`
	Activity   string    `gorm:"type:varchar(255);not null" json:"activity"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

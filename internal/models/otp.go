package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OTP is a one-time code bound to an account. The unique index on UserID
// keeps at most one live record per account.
type OTP struct {
	ID        uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:char(36);uniqueIndex;not null" json:"user_id"`
	OTPCode   int       `gorm:"not null" json:"-"`
	Status    bool      `gorm:"not null;default:false" json:"status"`
	ExpireAt  time.Time `gorm:"not null" json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *OTP) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}

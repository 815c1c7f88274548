package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NGO struct {
	ID               uuid.UUID  `gorm:"type:char(36);primarykey" json:"id"`
	OrganizationName string     `gorm:"type:varchar(255);not null" json:"organization_name"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone            string     `gorm:"type:varchar(50)" json:"phone"`
	PasswordHash     string     `gorm:"type:varchar(255);not null" json:"-"`
	Address          string     `gorm:"type:varchar(255)" json:"address"`
	City             string     `gorm:"type:varchar(100)" json:"city"`
	State            string     `gorm:"type:varchar(100)" json:"state"`
	Country          string     `gorm:"type:varchar(100)" json:"country"`
	Website          string     `gorm:"type:varchar(255)" json:"website"`
	SocialLinks      string     `gorm:"type:text" json:"social_links"`
	Description      string     `gorm:"type:varchar(1000)" json:"description"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	IsApproved       bool       `gorm:"not null;default:false" json:"is_approved"`
	UpdatedBy        *uuid.UUID `gorm:"type:char(36)" json:"updated_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (n *NGO) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}

// Account returns the identity view of the NGO.
func (n NGO) Account() Account {
	return Account{
		ID:       n.ID,
		Name:     n.OrganizationName,
		Email:    n.Email,
		Phone:    n.Phone,
		Role:     RoleNGO,
		Approved: n.IsApproved,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleNGO       Role = "NGO"
	RoleVolunteer Role = "VOLUNTEER"
)

// User is a volunteer or administrator account.
type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'VOLUNTEER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// Account is the identity-store view shared by users and NGOs.
type Account struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Phone    string
	Role     Role
	Approved bool
}

// Account returns the identity view of the user.
func (u User) Account() Account {
	return Account{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		Approved: true,
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/models"
)

// NGODTO represents an organization in API responses
type NGODTO struct {
	ID               uuid.UUID  `json:"id"`
	OrganizationName string     `json:"organization_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	State            string     `json:"state"`
	Country          string     `json:"country"`
	Website          string     `json:"website"`
	SocialLinks      string     `json:"social_links"`
	Description      string     `json:"description"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	IsApproved       bool       `json:"is_approved"`
	UpdatedBy        *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ToNGODTO converts an NGO model to NGODTO
func ToNGODTO(ngo models.NGO) NGODTO {
	return NGODTO{
		ID:               ngo.ID,
		OrganizationName: ngo.OrganizationName,
		Email:            ngo.Email,
		Phone:            ngo.Phone,
		Address:          ngo.Address,
		City:             ngo.City,
		State:            ngo.State,
		Country:          ngo.Country,
		Website:          ngo.Website,
		SocialLinks:      ngo.SocialLinks,
		Description:      ngo.Description,
		Latitude:         ngo.Latitude,
		Longitude:        ngo.Longitude,
		IsApproved:       ngo.IsApproved,
		UpdatedBy:        ngo.UpdatedBy,
		CreatedAt:        ngo.CreatedAt,
	}
}

// ToNGODTOs converts a slice of NGOs
func ToNGODTOs(ngos []models.NGO) []NGODTO {
	items := make([]NGODTO, len(ngos))
	for i, ngo := range ngos {
		items[i] = ToNGODTO(ngo)
	}
	return items
}

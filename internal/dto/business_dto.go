package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/loadshare-sa/loadshare-backend/internal/models"
)

type RegisterBusinessRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	AreaID      string `json:"areaId"`
	AreaName    string `json:"areaName"`
	PowerType   string `json:"powerType"`
	HasPower    *bool  `json:"hasPower"`
	Description string `json:"description"`
}

type UpdatePowerRequest struct {
	HasPower  *bool  `json:"hasPower"`
	PowerType string `json:"powerType"`
}

type ReviewBusinessRequest struct {
	BusinessID uuid.UUID `json:"businessId"`
	Action     string    `json:"action"` // approve | reject
}

// SearchBusinessQuery carries the decoded query parameters of the public
// directory search.
type SearchBusinessQuery struct {
	Area      string
	Type      string
	Search    string
	HasPower  *bool
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type OwnerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BusinessResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Address     string        `json:"address"`
	AreaID      string        `json:"area_id"`
	AreaName    string        `json:"area_name"`
	HasPower    bool          `json:"has_power"`
	PowerType   string        `json:"power_type"`
	Description string        `json:"description,omitempty"`
	Verified    bool          `json:"verified"`
	Active      bool          `json:"active"`
	Owner       *OwnerSummary `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type BusinessListResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
	Pagination Pagination         `json:"pagination"`
}

func NewBusinessResponse(b *models.Business) BusinessResponse {
	resp := BusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		Type:        b.Type,
		Address:     b.Address,
		AreaID:      b.AreaID,
		AreaName:    b.AreaName,
		HasPower:    b.HasPower,
		PowerType:   b.PowerType,
		Description: b.Description,
		Verified:    b.Verified,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Owner.Email != "" {
		resp.Owner = &OwnerSummary{Name: b.Owner.Name, Email: b.Owner.Email}
	}
	return resp
}

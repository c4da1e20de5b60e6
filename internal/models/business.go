package models

import (
	"time"

	"github.com/google/uuid"
)

// Backup power source types.
const (
	PowerTypeGenerator = "generator"
	PowerTypeUPS       = "ups"
	PowerTypeSolar     = "solar"
	PowerTypeNone      = "none"
)

// Business is a directory listing. It enters the world unverified and
// active ("pending"); an admin either approves it (verified) or rejects
// it (inactive). Only verified AND active rows are publicly visible.
type Business struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255;index" json:"name"`
	Type        string    `gorm:"not null;size:100;index" json:"type"`
	Address     string    `gorm:"not null;size:500" json:"address"`
	AreaID      string    `gorm:"not null;size:100;index" json:"area_id"`
	AreaName    string    `gorm:"size:255" json:"area_name"`
	HasPower    bool      `gorm:"default:false" json:"has_power"`
	PowerType   string    `gorm:"size:20" json:"power_type"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	Verified    bool      `gorm:"not null;default:false;index" json:"verified"`
	Active      bool      `gorm:"not null;default:true;index" json:"active"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

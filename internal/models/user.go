package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. New accounts start as RoleCustomer; the first successful
// business registration promotes the account to RoleBusinessOwner.
const (
	RoleCustomer      = "CUSTOMER"
	RoleBusinessOwner = "BUSINESS_OWNER"
	RoleAdmin         = "ADMIN"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:255" json:"name"`
	Email         string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	Role          string         `gorm:"size:20;not null;default:'CUSTOMER'" json:"role"`
	Image         string         `gorm:"size:500" json:"image,omitempty"`
	EmailVerified *time.Time     `json:"email_verified,omitempty"`
	Businesses    []Business     `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

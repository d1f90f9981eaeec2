// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the feedback portal.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	OrganizationID *string   `json:"organization_id,omitempty"`
	ProjectID      *string   `json:"project_id,omitempty"`
	EmailVerified  bool      `gorm:"not null;default:false" json:"email_verified"`
	Country        *string   `json:"country,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

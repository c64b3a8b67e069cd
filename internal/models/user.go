// Package models contains data structures for the application's domain models.
package models

import (
	"encoding/json"
	"time"
)

// User represents a member of the skill-exchange platform.
//
// Rating and TotalRatings are denormalized aggregates over the ratings table.
// They are recomputed in full by the swap rating flow and must never be
// written by any other code path.
type User struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Email        string          `gorm:"size:255;unique;not null" json:"email,omitempty"`
	Password     string          `gorm:"size:255;not null" json:"-"`
	Location     string          `gorm:"size:255" json:"location"`
	ProfilePhoto string          `gorm:"size:500" json:"profile_photo"`
	Availability json.RawMessage `gorm:"type:text" json:"availability,omitempty"`
	IsPublic     bool            `gorm:"not null;default:true" json:"is_public"`
	IsAdmin      bool            `gorm:"not null;default:false" json:"is_admin"`
	IsBanned     bool            `gorm:"not null;default:false;index" json:"is_banned"`
	Rating       float64         `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	TotalRatings int             `gorm:"not null;default:0" json:"total_ratings"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

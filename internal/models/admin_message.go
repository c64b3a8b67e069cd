package models

import "time"

// AdminMessageType is the severity of a broadcast message.
type AdminMessageType string

const (
	AdminMessageInfo    AdminMessageType = "info"
	AdminMessageWarning AdminMessageType = "warning"
	AdminMessageAlert   AdminMessageType = "alert"
)

// ValidAdminMessageType reports whether t is a known severity.
func ValidAdminMessageType(t AdminMessageType) bool {
	switch t {
	case AdminMessageInfo, AdminMessageWarning, AdminMessageAlert:
		return true
	}
	return false
}

// AdminMessage is a platform-wide broadcast authored by an admin.
// Pure content entity; it has no lifecycle coupling to other entities.
type AdminMessage struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	Type      AdminMessageType `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	IsActive  bool             `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (AdminMessage) TableName() string {
	return "admin_messages"
}

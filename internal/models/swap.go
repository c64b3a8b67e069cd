package models

import "time"

// SwapStatus represents the lifecycle state of a swap.
type SwapStatus string

const (
	// SwapStatusPending indicates a swap awaiting the provider's decision.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the provider agreed to the swap.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the provider declined the swap. Terminal.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCancelled indicates the requester withdrew the swap. Terminal.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusCompleted indicates both sides finished the exchange. Terminal.
	SwapStatusCompleted SwapStatus = "completed"
)

// ValidSwapStatus reports whether s is one of the known lifecycle states.
func ValidSwapStatus(s SwapStatus) bool {
	switch s {
	case SwapStatusPending, SwapStatusAccepted, SwapStatusRejected,
		SwapStatusCancelled, SwapStatusCompleted:
		return true
	}
	return false
}

// Swap is a proposed or executed skill exchange between two users.
//
// The requester bundles one or more of their offered skills against one or
// more skills the provider offers. Parties are immutable after creation;
// status only moves along pending -> {accepted, rejected, cancelled} and
// accepted -> completed.
type Swap struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	RequesterID uint       `gorm:"not null;index" json:"requester_id"`
	ProviderID  uint       `gorm:"not null;index" json:"provider_id"`
	Status      SwapStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message     string     `gorm:"type:text" json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Requester *User `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	Provider  *User `gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE" json:"provider,omitempty"`

	// Skill bundles, attached through the two join tables.
	OfferedSkills   []Skill `gorm:"many2many:swap_offered_skills;constraint:OnDelete:CASCADE" json:"skills_offered,omitempty"`
	RequestedSkills []Skill `gorm:"many2many:swap_requested_skills;constraint:OnDelete:CASCADE" json:"skills_wanted,omitempty"`
}

// TableName specifies the table name for GORM.
func (Swap) TableName() string {
	return "swaps"
}

// IsParty reports whether the given user is the requester or the provider.
func (s *Swap) IsParty(userID uint) bool {
	return s.RequesterID == userID || s.ProviderID == userID
}

// Counterparty returns the other participant's user ID. The caller must
// already have established that userID is a party to the swap.
func (s *Swap) Counterparty(userID uint) uint {
	if s.RequesterID == userID {
		return s.ProviderID
	}
	return s.RequesterID
}

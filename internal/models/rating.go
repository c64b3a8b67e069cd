package models

import "time"

// Rating is one participant's score for the counterparty of a completed
// swap. At most one rating per (swap, rater); rows are immutable once
// written and drive the rated user's aggregate.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SwapID    uint      `gorm:"not null;uniqueIndex:idx_swap_rater" json:"swap_id"`
	RaterID   uint      `gorm:"not null;uniqueIndex:idx_swap_rater" json:"rater_id"`
	RatedID   uint      `gorm:"not null;index" json:"rated_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	Swap  *Swap `gorm:"foreignKey:SwapID;constraint:OnDelete:CASCADE" json:"swap,omitempty"`
	Rater *User `gorm:"foreignKey:RaterID;constraint:OnDelete:CASCADE" json:"rater,omitempty"`
	Rated *User `gorm:"foreignKey:RatedID;constraint:OnDelete:CASCADE" json:"rated,omitempty"`
}

// TableName specifies the table name for GORM.
func (Rating) TableName() string {
	return "ratings"
}

// RatingInfo is the public view of a received rating shown on profiles.
type RatingInfo struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	RaterName string    `json:"rater_name"`
}

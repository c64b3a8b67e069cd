package models

import "time"

// Skill is a catalog entry users attach to as offered or wanted.
// Skills are created by admins or seed data and are referenced, never owned.
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:100;index" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Skill) TableName() string {
	return "skills"
}

// ExperienceLevel grades how proficient a user is in an offered skill.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

// ValidExperienceLevel reports whether level is one of the known grades.
func ValidExperienceLevel(level ExperienceLevel) bool {
	switch level {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}
	return false
}

// WantedPriority expresses how urgently a user wants to learn a skill.
type WantedPriority string

const (
	PriorityLow    WantedPriority = "low"
	PriorityMedium WantedPriority = "medium"
	PriorityHigh   WantedPriority = "high"
)

// ValidWantedPriority reports whether p is one of the known priorities.
func ValidWantedPriority(p WantedPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// OfferedSkill links a user to a skill they can teach or provide.
// Unique per (user, skill); upserts overwrite level and description.
type OfferedSkill struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;uniqueIndex:idx_user_offered_skill" json:"user_id"`
	SkillID         uint            `gorm:"not null;uniqueIndex:idx_user_offered_skill" json:"skill_id"`
	Description     string          `gorm:"type:text" json:"description"`
	ExperienceLevel ExperienceLevel `gorm:"type:varchar(20);not null;default:'intermediate'" json:"experience_level"`
	CreatedAt       time.Time       `json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Skill *Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"skill,omitempty"`
}

// TableName specifies the table name for GORM.
func (OfferedSkill) TableName() string {
	return "user_skills"
}

// WantedSkill links a user to a skill they are seeking to learn.
// Unique per (user, skill); upserts overwrite priority and description.
type WantedSkill struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;uniqueIndex:idx_user_wanted_skill" json:"user_id"`
	SkillID     uint           `gorm:"not null;uniqueIndex:idx_user_wanted_skill" json:"skill_id"`
	Description string         `gorm:"type:text" json:"description"`
	Priority    WantedPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	CreatedAt   time.Time      `json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Skill *Skill `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"skill,omitempty"`
}

// TableName specifies the table name for GORM.
func (WantedSkill) TableName() string {
	return "wanted_skills"
}

// UserSkillInfo is the joined view of a user's skill link used in API
// responses: the catalog entry plus the per-user level/priority and note.
type UserSkillInfo struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	Priority        WantedPriority  `json:"priority,omitempty"`
	UserDescription string          `json:"user_description"`
}

// PopularSkill is a catalog entry annotated with how many users offer or
// want it.
type PopularSkill struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	OfferedCount int    `json:"offered_count"`
	WantedCount  int    `json:"wanted_count"`
}

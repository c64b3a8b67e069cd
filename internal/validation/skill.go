package validation

import (
	"fmt"
	"strings"
)

// ValidateSkillName validates a skill name.
func ValidateSkillName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("skill name is required")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("skill name must not exceed 100 characters")
	}
	return nil
}

// ValidateCategory validates an optional skill category.
func ValidateCategory(category string) error {
	if len(category) > 50 {
		return fmt.Errorf("category must not exceed 50 characters")
	}
	return nil
}

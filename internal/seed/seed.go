// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"skillswap/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// defaultSkills is the built-in catalog installed on first boot.
var defaultSkills = []models.Skill{
	{Name: "JavaScript", Description: "Programming language for web development", Category: "Technology"},
	{Name: "Python", Description: "General-purpose programming language", Category: "Technology"},
	{Name: "Photoshop", Description: "Image editing and graphic design", Category: "Design"},
	{Name: "Excel", Description: "Spreadsheet software and data analysis", Category: "Business"},
	{Name: "Cooking", Description: "Culinary arts and food preparation", Category: "Lifestyle"},
	{Name: "Photography", Description: "Taking and editing photographs", Category: "Creative"},
	{Name: "Guitar", Description: "Playing acoustic and electric guitar", Category: "Music"},
	{Name: "Spanish", Description: "Spanish language conversation and grammar", Category: "Language"},
	{Name: "Yoga", Description: "Yoga practice and instruction", Category: "Fitness"},
	{Name: "Writing", Description: "Creative and professional writing", Category: "Creative"},
}

// Skills installs the default skill catalog. Existing entries (matched by
// name) are left untouched, so the seed is idempotent.
func Skills(db *gorm.DB) error {
	for _, skill := range defaultSkills {
		var existing models.Skill
		err := db.Where("name = ?", skill.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check skill %q: %w", skill.Name, err)
		}
		if err := db.Create(&skill).Error; err != nil {
			return fmt.Errorf("seed skill %q: %w", skill.Name, err)
		}
	}
	log.Printf("skill catalog seeded (%d entries ensured)", len(defaultSkills))
	return nil
}

// EnsureAdmin guarantees an admin account with the given credentials exists.
// If the email is already registered, the account is promoted to admin
// instead.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password must be set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admin models.User
		findErr := tx.Where("email = ?", email).First(&admin).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			admin = models.User{
				Name:     "Platform Admin",
				Email:    email,
				Password: string(hash),
				IsAdmin:  true,
				IsPublic: false,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
			log.Printf("admin account created (%s)", email)
		case findErr != nil:
			return findErr
		default:
			if !admin.IsAdmin {
				if err := tx.Model(&models.User{}).Where("id = ?", admin.ID).
					Update("is_admin", true).Error; err != nil {
					return err
				}
				log.Printf("existing account promoted to admin (%s)", email)
			}
		}
		return nil
	})
}

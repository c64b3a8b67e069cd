package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

var testUserSeq uint

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	testUserSeq++
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s_%d_%d@example.com", name, testUserSeq, time.Now().UnixNano()),
		Password: string(hash),
		IsPublic: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createTestSkill(t *testing.T, db *gorm.DB, name, category string) *models.Skill {
	t.Helper()
	skill := &models.Skill{Name: name, Category: category}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("create skill %s: %v", name, err)
	}
	return skill
}

func offerSkill(t *testing.T, db *gorm.DB, userID, skillID uint) {
	t.Helper()
	link := &models.OfferedSkill{
		UserID:          userID,
		SkillID:         skillID,
		ExperienceLevel: models.ExperienceIntermediate,
	}
	if err := db.Create(link).Error; err != nil {
		t.Fatalf("offer skill: %v", err)
	}
}

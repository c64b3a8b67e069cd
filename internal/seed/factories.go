// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skillswap/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var factoryLevels = []models.ExperienceLevel{
	models.ExperienceBeginner,
	models.ExperienceIntermediate,
	models.ExperienceAdvanced,
	models.ExperienceExpert,
}

var factoryPriorities = []models.WantedPriority{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
}

// CreateUser persists a fake user. The password of every generated user is
// "Password123!".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s-%s", gofakeit.Username(), gofakeit.Email()),
		Password: string(hash),
		Location: gofakeit.City(),
		IsPublic: true,
	}
	// realistic created_at spread over the last 90 days
	daysBack := f.rand.Intn(90)
	user.CreatedAt = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// OfferSkill links the user to the skill as offered with a random level.
func (f *Factory) OfferSkill(user *models.User, skill *models.Skill) (*models.OfferedSkill, error) {
	link := &models.OfferedSkill{
		UserID:          user.ID,
		SkillID:         skill.ID,
		Description:     gofakeit.Sentence(8),
		ExperienceLevel: factoryLevels[f.rand.Intn(len(factoryLevels))],
	}
	if err := f.db.Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// WantSkill links the user to the skill as wanted with a random priority.
func (f *Factory) WantSkill(user *models.User, skill *models.Skill) (*models.WantedSkill, error) {
	link := &models.WantedSkill{
		UserID:      user.ID,
		SkillID:     skill.ID,
		Description: gofakeit.Sentence(8),
		Priority:    factoryPriorities[f.rand.Intn(len(factoryPriorities))],
	}
	if err := f.db.Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// CreateSwap persists a swap between the two users with the given bundles
// and status. Both users must already offer the respective skills for the
// data to be consistent with what the API would produce.
func (f *Factory) CreateSwap(requester, provider *models.User, offered, requested []models.Skill, status models.SwapStatus) (*models.Swap, error) {
	swap := &models.Swap{
		RequesterID: requester.ID,
		ProviderID:  provider.ID,
		Status:      status,
		Message:     gofakeit.Sentence(10),
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(swap).Error; err != nil {
			return err
		}
		for _, skill := range offered {
			if err := tx.Exec(
				"INSERT INTO swap_offered_skills (swap_id, skill_id) VALUES (?, ?)",
				swap.ID, skill.ID,
			).Error; err != nil {
				return err
			}
		}
		for _, skill := range requested {
			if err := tx.Exec(
				"INSERT INTO swap_requested_skills (swap_id, skill_id) VALUES (?, ?)",
				swap.ID, skill.ID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return swap, nil
}

// Demo populates the database with a small demo data set: the default skill
// catalog, n users with random skill links, and a handful of swaps in mixed
// states.
func (f *Factory) Demo(n int) error {
	if err := Skills(f.db); err != nil {
		return err
	}

	var skills []models.Skill
	if err := f.db.Find(&skills).Error; err != nil {
		return err
	}
	if len(skills) < 2 {
		return fmt.Errorf("demo seed requires at least 2 catalog skills")
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		offered := skills[f.rand.Intn(len(skills))]
		if _, err := f.OfferSkill(user, &offered); err != nil {
			return err
		}
		wanted := skills[f.rand.Intn(len(skills))]
		if _, err := f.WantSkill(user, &wanted); err != nil {
			return err
		}
		users = append(users, user)
	}

	statuses := []models.SwapStatus{
		models.SwapStatusPending,
		models.SwapStatusAccepted,
		models.SwapStatusCompleted,
	}
	for i := 0; i+1 < len(users); i += 2 {
		requester, provider := users[i], users[i+1]
		status := statuses[f.rand.Intn(len(statuses))]
		if _, err := f.CreateSwap(requester, provider,
			[]models.Skill{skills[0]}, []models.Skill{skills[1]}, status); err != nil {
			return err
		}
	}
	return nil
}

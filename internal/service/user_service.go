package service

import (
	"context"
	"encoding/json"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account and profile business logic.
type UserService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, skillRepo repository.SkillRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location"`
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Location: input.Location,
		IsPublic: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user. The same error is
// returned for an unknown email and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if user.IsBanned {
		return nil, models.NewForbiddenError("Account is banned")
	}
	return user, nil
}

// Get returns the user by ID.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput carries the updatable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Name         *string          `json:"name"`
	Location     *string          `json:"location"`
	ProfilePhoto *string          `json:"profile_photo"`
	Availability *json.RawMessage `json:"availability"`
	IsPublic     *bool            `json:"is_public"`
}

// UpdateProfile applies the provided profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if input.Name != nil {
		if err := validation.ValidateName(*input.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["name"] = *input.Name
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.ProfilePhoto != nil {
		fields["profile_photo"] = *input.ProfilePhoto
	}
	if input.Availability != nil {
		if len(*input.Availability) > 0 && !json.Valid(*input.Availability) {
			return nil, models.NewValidationError("Availability must be valid JSON")
		}
		fields["availability"] = string(*input.Availability)
	}
	if input.IsPublic != nil {
		fields["is_public"] = *input.IsPublic
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ListPublic returns the public user directory page plus the total count.
func (s *UserService) ListPublic(ctx context.Context, search, skill string, limit, offset int) ([]models.User, int64, error) {
	return s.userRepo.ListPublic(ctx, search, skill, limit, offset)
}

// Profile is a user plus their skill links and recent received ratings.
type Profile struct {
	User          *models.User           `json:"user"`
	SkillsOffered []models.UserSkillInfo `json:"skills_offered"`
	SkillsWanted  []models.UserSkillInfo `json:"skills_wanted"`
	RecentRatings []models.RatingInfo    `json:"recent_ratings"`
}

// GetProfile assembles the full profile view of a user. Private profiles are
// only visible to their owner; others get the same not-found error as a
// missing user.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if (!user.IsPublic || user.IsBanned) && viewerID != userID {
		return nil, models.NewNotFoundError("User", userID)
	}

	offered, err := s.skillRepo.ListOffered(ctx, userID)
	if err != nil {
		return nil, err
	}
	wanted, err := s.skillRepo.ListWanted(ctx, userID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.userRepo.RecentRatings(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:          user,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		RecentRatings: ratings,
	}, nil
}

// Skills returns the user's offered and wanted skill links.
func (s *UserService) Skills(ctx context.Context, userID uint) ([]models.UserSkillInfo, []models.UserSkillInfo, error) {
	offered, err := s.skillRepo.ListOffered(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	wanted, err := s.skillRepo.ListWanted(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return offered, wanted, nil
}

// OfferedSkillInput carries an offered-skill link submission.
type OfferedSkillInput struct {
	SkillID         uint   `json:"skill_id"`
	Description     string `json:"description"`
	ExperienceLevel string `json:"experience_level"`
}

// AddOfferedSkill links a catalog skill to the user as offered, overwriting
// the level and description if the link already exists.
func (s *UserService) AddOfferedSkill(ctx context.Context, userID uint, input OfferedSkillInput) error {
	level := models.ExperienceLevel(input.ExperienceLevel)
	if input.ExperienceLevel == "" {
		level = models.ExperienceIntermediate
	}
	if !models.ValidExperienceLevel(level) {
		return models.NewValidationError("Invalid experience level")
	}
	if _, err := s.skillRepo.GetByID(ctx, input.SkillID); err != nil {
		return err
	}

	return s.skillRepo.UpsertOffered(ctx, &models.OfferedSkill{
		UserID:          userID,
		SkillID:         input.SkillID,
		Description:     input.Description,
		ExperienceLevel: level,
	})
}

// WantedSkillInput carries a wanted-skill link submission.
type WantedSkillInput struct {
	SkillID     uint   `json:"skill_id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// AddWantedSkill links a catalog skill to the user as wanted, overwriting
// the priority and description if the link already exists.
func (s *UserService) AddWantedSkill(ctx context.Context, userID uint, input WantedSkillInput) error {
	priority := models.WantedPriority(input.Priority)
	if input.Priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidWantedPriority(priority) {
		return models.NewValidationError("Invalid priority")
	}
	if _, err := s.skillRepo.GetByID(ctx, input.SkillID); err != nil {
		return err
	}

	return s.skillRepo.UpsertWanted(ctx, &models.WantedSkill{
		UserID:      userID,
		SkillID:     input.SkillID,
		Description: input.Description,
		Priority:    priority,
	})
}

// RemoveOfferedSkill unlinks an offered skill from the user. Removing a
// link that does not exist is a no-op, not an error.
func (s *UserService) RemoveOfferedSkill(ctx context.Context, userID, skillID uint) error {
	_, err := s.skillRepo.RemoveOffered(ctx, userID, skillID)
	return err
}

// RemoveWantedSkill unlinks a wanted skill from the user. Same idempotent
// semantics as RemoveOfferedSkill.
func (s *UserService) RemoveWantedSkill(ctx context.Context, userID, skillID uint) error {
	_, err := s.skillRepo.RemoveWanted(ctx, userID, skillID)
	return err
}

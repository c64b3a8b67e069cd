package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// SkillService provides skill catalog business logic.
type SkillService struct {
	skillRepo repository.SkillRepository
}

// NewSkillService returns a new SkillService.
func NewSkillService(skillRepo repository.SkillRepository) *SkillService {
	return &SkillService{skillRepo: skillRepo}
}

// List returns a catalog page, optionally filtered by category and name
// search, plus the total count for pagination.
func (s *SkillService) List(ctx context.Context, category, search string, limit, offset int) ([]models.Skill, int64, error) {
	return s.skillRepo.List(ctx, category, search, limit, offset)
}

// Categories returns the distinct non-empty categories in the catalog.
func (s *SkillService) Categories(ctx context.Context) ([]string, error) {
	return s.skillRepo.Categories(ctx)
}

// Popular returns catalog skills ranked by usage.
func (s *SkillService) Popular(ctx context.Context, limit int) ([]models.PopularSkill, error) {
	return s.skillRepo.Popular(ctx, limit)
}

// Get returns the catalog skill by ID.
func (s *SkillService) Get(ctx context.Context, id uint) (*models.Skill, error) {
	return s.skillRepo.GetByID(ctx, id)
}

// SkillInput carries a catalog entry submission.
type SkillInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Create adds a catalog entry. Admin only, enforced at the route level.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*models.Skill, error) {
	if err := validation.ValidateSkillName(input.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCategory(input.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	skill := &models.Skill{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Update rewrites a catalog entry. Admin only, enforced at the route level.
func (s *SkillService) Update(ctx context.Context, id uint, input SkillInput) (*models.Skill, error) {
	if err := validation.ValidateSkillName(input.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCategory(input.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	skill := &models.Skill{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
	}
	ok, err := s.skillRepo.Update(ctx, skill)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Skill", id)
	}
	return s.skillRepo.GetByID(ctx, id)
}

// Delete removes a catalog entry and, via cascade, every user link to it.
func (s *SkillService) Delete(ctx context.Context, id uint) error {
	ok, err := s.skillRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Skill", id)
	}
	return nil
}

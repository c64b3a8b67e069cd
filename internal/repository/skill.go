package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkillRepository defines persistence operations for the skill catalog and
// per-user skill links.
type SkillRepository interface {
	List(ctx context.Context, category, search string, limit, offset int) ([]models.Skill, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Popular(ctx context.Context, limit int) ([]models.PopularSkill, error)
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	Create(ctx context.Context, skill *models.Skill) error
	Update(ctx context.Context, skill *models.Skill) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)

	UpsertOffered(ctx context.Context, link *models.OfferedSkill) error
	UpsertWanted(ctx context.Context, link *models.WantedSkill) error
	RemoveOffered(ctx context.Context, userID, skillID uint) (bool, error)
	RemoveWanted(ctx context.Context, userID, skillID uint) (bool, error)
	ListOffered(ctx context.Context, userID uint) ([]models.UserSkillInfo, error)
	ListWanted(ctx context.Context, userID uint) ([]models.UserSkillInfo, error)
	OfferedSkillIDSet(ctx context.Context, userID uint, skillIDs []uint) (map[uint]bool, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) List(ctx context.Context, category, search string, limit, offset int) ([]models.Skill, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Skill{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var skills []models.Skill
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&skills).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return skills, total, nil
}

func (r *skillRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := cache.Aside(ctx, cache.SkillCategoriesKey, &categories, cache.SkillListTTL, func() error {
		if err := r.db.WithContext(ctx).Model(&models.Skill{}).
			Distinct("category").
			Where("category <> ''").
			Order("category ASC").
			Pluck("category", &categories).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Popular ranks catalog entries by combined offered and wanted link count.
func (r *skillRepository) Popular(ctx context.Context, limit int) ([]models.PopularSkill, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var popular []models.PopularSkill
	err := cache.Aside(ctx, cache.PopularSkillsKey, &popular, cache.PopularSkillsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Table("skills").
			Select(`skills.id, skills.name, skills.description, skills.category,
				COUNT(DISTINCT user_skills.id) AS offered_count,
				COUNT(DISTINCT wanted_skills.id) AS wanted_count`).
			Joins("LEFT JOIN user_skills ON user_skills.skill_id = skills.id").
			Joins("LEFT JOIN wanted_skills ON wanted_skills.skill_id = skills.id").
			Group("skills.id, skills.name, skills.description, skills.category").
			Order("(COUNT(DISTINCT user_skills.id) + COUNT(DISTINCT wanted_skills.id)) DESC").
			Limit(limit).
			Scan(&popular).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return popular, nil
}

func (r *skillRepository) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var skill models.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Skill already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateSkills(ctx)
	return nil
}

// Update writes name/description/category. Returns false when no skill matched.
func (r *skillRepository) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Skill{}).
		Where("id = ?", skill.ID).
		Updates(map[string]interface{}{
			"name":        skill.Name,
			"description": skill.Description,
			"category":    skill.Category,
		})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidateSkills(ctx)
	return true, nil
}

// Delete removes the catalog entry. User links cascade at the database level.
func (r *skillRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Skill{}, id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidateSkills(ctx)
	return true, nil
}

// UpsertOffered inserts the link or, if the user already offers the skill,
// overwrites the description and experience level.
func (r *skillRepository) UpsertOffered(ctx context.Context, link *models.OfferedSkill) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "experience_level"}),
	}).Create(link).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UpsertWanted inserts the link or, if the user already wants the skill,
// overwrites the description and priority.
func (r *skillRepository) UpsertWanted(ctx context.Context, link *models.WantedSkill) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "priority"}),
	}).Create(link).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) RemoveOffered(ctx context.Context, userID, skillID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&models.OfferedSkill{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *skillRepository) RemoveWanted(ctx context.Context, userID, skillID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&models.WantedSkill{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *skillRepository) ListOffered(ctx context.Context, userID uint) ([]models.UserSkillInfo, error) {
	var infos []models.UserSkillInfo
	if err := r.db.WithContext(ctx).
		Table("user_skills").
		Select(`skills.id, skills.name, skills.description,
			user_skills.experience_level, user_skills.description AS user_description`).
		Joins("JOIN skills ON skills.id = user_skills.skill_id").
		Where("user_skills.user_id = ?", userID).
		Order("skills.name ASC").
		Scan(&infos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return infos, nil
}

func (r *skillRepository) ListWanted(ctx context.Context, userID uint) ([]models.UserSkillInfo, error) {
	var infos []models.UserSkillInfo
	if err := r.db.WithContext(ctx).
		Table("wanted_skills").
		Select(`skills.id, skills.name, skills.description,
			wanted_skills.priority, wanted_skills.description AS user_description`).
		Joins("JOIN skills ON skills.id = wanted_skills.skill_id").
		Where("wanted_skills.user_id = ?", userID).
		Order("skills.name ASC").
		Scan(&infos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return infos, nil
}

// OfferedSkillIDSet returns which of the given skill IDs the user offers.
// Used to validate swap bundles without loading full rows.
func (r *skillRepository) OfferedSkillIDSet(ctx context.Context, userID uint, skillIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(skillIDs))
	if len(skillIDs) == 0 {
		return set, nil
	}
	var found []uint
	if err := r.db.WithContext(ctx).Model(&models.OfferedSkill{}).
		Where("user_id = ? AND skill_id IN ?", userID, skillIDs).
		Pluck("skill_id", &found).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range found {
		set[id] = true
	}
	return set, nil
}

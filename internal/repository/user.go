// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	ListPublic(ctx context.Context, search, skill string, limit, offset int) ([]models.User, int64, error)
	AdminList(ctx context.Context, search, status string, limit, offset int) ([]models.User, int64, error)
	SetBanned(ctx context.Context, id uint, banned bool) (bool, error)
	RecentRatings(ctx context.Context, userID uint, limit int) ([]models.RatingInfo, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Email already registered")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite reports "UNIQUE constraint failed"
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Email already registered")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewDuplicateError("Email already registered")
		}
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// ListPublic returns public, non-banned users matching the optional search and
// skill filters, newest first, along with the total count for pagination.
func (r *userRepository) ListPublic(ctx context.Context, search, skill string, limit, offset int) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{}).
		Where("is_public = ? AND is_banned = ?", true, false)

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR location LIKE ?", like, like)
	}
	if skill != "" {
		like := "%" + skill + "%"
		offered := r.db.Model(&models.OfferedSkill{}).
			Select("user_skills.user_id").
			Joins("JOIN skills ON skills.id = user_skills.skill_id").
			Where("skills.name LIKE ?", like)
		wanted := r.db.Model(&models.WantedSkill{}).
			Select("wanted_skills.user_id").
			Joins("JOIN skills ON skills.id = wanted_skills.skill_id").
			Where("skills.name LIKE ?", like)
		q = q.Where("id IN (?) OR id IN (?)", offered, wanted)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

// AdminList returns all users regardless of visibility, with an optional
// search over name/email/location and a banned/active status filter.
func (r *userRepository) AdminList(ctx context.Context, search, status string, limit, offset int) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.User{})

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR location LIKE ?", like, like, like)
	}
	switch status {
	case "banned":
		q = q.Where("is_banned = ?", true)
	case "active":
		q = q.Where("is_banned = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

// SetBanned flips the ban flag. Returns false when no user matched.
func (r *userRepository) SetBanned(ctx context.Context, id uint, banned bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_banned": banned, "updated_at": time.Now()})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidateUser(ctx, id)
	return true, nil
}

// RecentRatings returns the latest ratings received by the user, with the
// rater's display name joined in.
func (r *userRepository) RecentRatings(ctx context.Context, userID uint, limit int) ([]models.RatingInfo, error) {
	if limit <= 0 {
		limit = 5
	}
	var infos []models.RatingInfo
	if err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.rating, ratings.comment, ratings.created_at, users.name AS rater_name").
		Joins("JOIN users ON users.id = ratings.rater_id").
		Where("ratings.rated_id = ?", userID).
		Order("ratings.created_at DESC").
		Limit(limit).
		Scan(&infos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return infos, nil
}

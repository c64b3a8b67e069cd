package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// AdminMessageRepository defines persistence operations for platform messages.
type AdminMessageRepository interface {
	Create(ctx context.Context, msg *models.AdminMessage) error
	GetByID(ctx context.Context, id uint) (*models.AdminMessage, error)
	List(ctx context.Context) ([]models.AdminMessage, error)
	ListActive(ctx context.Context) ([]models.AdminMessage, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)

	// PlatformStats aggregates the admin dashboard numbers.
	PlatformStats(ctx context.Context) (*models.PlatformStats, error)
}

type adminMessageRepository struct {
	db *gorm.DB
}

// NewAdminMessageRepository returns a new AdminMessageRepository implementation.
func NewAdminMessageRepository(db *gorm.DB) AdminMessageRepository {
	return &adminMessageRepository{db: db}
}

func (r *adminMessageRepository) Create(ctx context.Context, msg *models.AdminMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAdminMessages(ctx)
	return nil
}

func (r *adminMessageRepository) GetByID(ctx context.Context, id uint) (*models.AdminMessage, error) {
	var msg models.AdminMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

func (r *adminMessageRepository) List(ctx context.Context) ([]models.AdminMessage, error) {
	var msgs []models.AdminMessage
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

func (r *adminMessageRepository) ListActive(ctx context.Context) ([]models.AdminMessage, error) {
	var msgs []models.AdminMessage
	err := cache.Aside(ctx, cache.AdminMessagesKey, &msgs, cache.AdminMessageTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&msgs).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *adminMessageRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.AdminMessage{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidateAdminMessages(ctx)
	return true, nil
}

func (r *adminMessageRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.AdminMessage{}, id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	cache.InvalidateAdminMessages(ctx)
	return true, nil
}

// PlatformStats runs the dashboard aggregates. The 30-day cutoff is computed
// in Go so the query works on both PostgreSQL and SQLite.
func (r *adminMessageRepository) PlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	stats := &models.PlatformStats{}
	cutoff := time.Now().AddDate(0, 0, -30)
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.Users.TotalUsers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.User{}).Where("is_banned = ?", true).Count(&stats.Users.BannedUsers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.User{}).Where("created_at >= ?", cutoff).Count(&stats.Users.NewUsers30d).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := db.Model(&models.Swap{}).Count(&stats.Swaps.TotalSwaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	statusCounts := map[models.SwapStatus]*int64{
		models.SwapStatusPending:   &stats.Swaps.PendingSwaps,
		models.SwapStatusAccepted:  &stats.Swaps.AcceptedSwaps,
		models.SwapStatusCompleted: &stats.Swaps.CompletedSwaps,
	}
	for status, dest := range statusCounts {
		if err := db.Model(&models.Swap{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	if err := db.Model(&models.Swap{}).Where("created_at >= ?", cutoff).Count(&stats.Swaps.NewSwaps30d).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var agg struct {
		Avg   float64
		Count int64
	}
	if err := db.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&agg).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	stats.Ratings.AvgRating = agg.Avg
	stats.Ratings.TotalRatings = agg.Count

	return stats, nil
}

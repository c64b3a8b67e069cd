package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransitionRole constrains which party may perform a status transition.
type TransitionRole int

const (
	// RoleProvider restricts the transition to the swap's provider.
	RoleProvider TransitionRole = iota
	// RoleRequester restricts the transition to the swap's requester.
	RoleRequester
	// RoleEither allows either party to perform the transition.
	RoleEither
)

// SwapRepository defines persistence operations for swaps and their ratings.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.Swap, offeredIDs, requestedIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Swap, error)
	ListForUser(ctx context.Context, userID uint, status models.SwapStatus) ([]models.Swap, error)
	ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, int64, error)
	Transition(ctx context.Context, swapID, actorID uint, role TransitionRole, from, to models.SwapStatus) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	RecordRating(ctx context.Context, rating *models.Rating) error
	HasRating(ctx context.Context, swapID, raterID uint) (bool, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

// Create inserts the swap row together with its offered and requested skill
// links in a single transaction, so a half-created swap is never observable.
func (r *swapRepository) Create(ctx context.Context, swap *models.Swap, offeredIDs, requestedIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(swap).Error; err != nil {
			return err
		}
		for _, skillID := range offeredIDs {
			if err := tx.Exec(
				"INSERT INTO swap_offered_skills (swap_id, skill_id) VALUES (?, ?)",
				swap.ID, skillID,
			).Error; err != nil {
				return err
			}
		}
		for _, skillID := range requestedIDs {
			if err := tx.Exec(
				"INSERT INTO swap_requested_skills (swap_id, skill_id) VALUES (?, ?)",
				swap.ID, skillID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	observability.SwapsCreatedTotal.Inc()
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.Swap, error) {
	var swap models.Swap
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkills").
		Preload("RequestedSkills").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) ListForUser(ctx context.Context, userID uint, status models.SwapStatus) ([]models.Swap, error) {
	q := r.db.WithContext(ctx).
		Where("requester_id = ? OR provider_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var swaps []models.Swap
	if err := q.
		Preload("Requester").
		Preload("Provider").
		Preload("OfferedSkills").
		Preload("RequestedSkills").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Swap{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var swaps []models.Swap
	if err := q.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return swaps, total, nil
}

// Transition moves the swap from one status to another with a single
// conditional UPDATE. The WHERE clause carries the expected current status
// and, unless role is RoleEither, pins the acting party's column, so a
// concurrent transition or a wrong actor simply matches zero rows. Returns
// false in that case without distinguishing why.
func (r *swapRepository) Transition(ctx context.Context, swapID, actorID uint, role TransitionRole, from, to models.SwapStatus) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Swap{}).
		Where("id = ? AND status = ?", swapID, from)

	switch role {
	case RoleProvider:
		q = q.Where("provider_id = ?", actorID)
	case RoleRequester:
		q = q.Where("requester_id = ?", actorID)
	case RoleEither:
		q = q.Where("requester_id = ? OR provider_id = ?", actorID, actorID)
	}

	res := q.Updates(map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		observability.RecordTransitionConflict(string(to))
		return false, nil
	}
	observability.RecordTransition(string(from), string(to))
	return true, nil
}

// Delete removes the swap. Join rows and ratings cascade at the database level.
func (r *swapRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Swap{}, id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RecordRating inserts the rating and recomputes the rated user's aggregate
// inside one transaction. The rated user's row is locked first (PostgreSQL
// only; SQLite serializes writers already) so two concurrent raters cannot
// interleave their recomputes. The aggregate is always a full AVG/COUNT over
// the ratings table, never an incremental adjustment.
func (r *swapRepository) RecordRating(ctx context.Context, rating *models.Rating) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			var locked models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&locked, rating.RatedID).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(rating).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&models.Rating{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("rated_id = ?", rating.RatedID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", rating.RatedID).
			Updates(map[string]interface{}{
				"rating":        agg.Avg,
				"total_ratings": agg.Count,
			}).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("You have already rated this swap")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, rating.RatedID)
	observability.RatingsRecordedTotal.Inc()
	return nil
}

func (r *swapRepository) HasRating(ctx context.Context, swapID, raterID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("swap_id = ? AND rater_id = ?", swapID, raterID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Package service implements the application's business logic.
package service

import (
	"context"
	"fmt"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// SwapService provides swap lifecycle business logic.
//
// Status transitions never read-then-write: each one is a single conditional
// update in the repository, so concurrent decisions on the same swap resolve
// to exactly one winner.
type SwapService struct {
	swapRepo  repository.SwapRepository
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, skillRepo repository.SkillRepository) *SwapService {
	return &SwapService{
		swapRepo:  swapRepo,
		userRepo:  userRepo,
		skillRepo: skillRepo,
	}
}

// CreateSwapInput carries the fields of a swap request.
type CreateSwapInput struct {
	ProviderID      uint   `json:"provider_id"`
	SkillsOffered   []uint `json:"offered_skill_ids"`
	SkillsRequested []uint `json:"requested_skill_ids"`
	Message         string `json:"message"`
}

// Create validates and creates a pending swap between the requester and the
// provider. Both skill bundles must be non-empty, the requester must offer
// every skill they put up, and the provider must offer every skill requested
// of them.
func (s *SwapService) Create(ctx context.Context, requesterID uint, input CreateSwapInput) (*models.Swap, error) {
	if input.ProviderID == requesterID {
		return nil, models.NewValidationError("Cannot create swap request with yourself")
	}
	if len(input.SkillsOffered) == 0 {
		return nil, models.NewValidationError("At least one offered skill is required")
	}
	if len(input.SkillsRequested) == 0 {
		return nil, models.NewValidationError("At least one requested skill is required")
	}

	provider, err := s.userRepo.GetByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider.IsBanned {
		return nil, models.NewValidationError("Provider is not available")
	}

	offered, err := s.skillRepo.OfferedSkillIDSet(ctx, requesterID, input.SkillsOffered)
	if err != nil {
		return nil, err
	}
	for _, skillID := range input.SkillsOffered {
		if !offered[skillID] {
			return nil, models.NewValidationError(fmt.Sprintf("You do not offer the skill with ID %d", skillID))
		}
	}

	provided, err := s.skillRepo.OfferedSkillIDSet(ctx, input.ProviderID, input.SkillsRequested)
	if err != nil {
		return nil, err
	}
	for _, skillID := range input.SkillsRequested {
		if !provided[skillID] {
			return nil, models.NewValidationError(fmt.Sprintf("Provider does not offer the requested skill with ID %d", skillID))
		}
	}

	swap := &models.Swap{
		RequesterID: requesterID,
		ProviderID:  input.ProviderID,
		Status:      models.SwapStatusPending,
		Message:     input.Message,
	}
	if err := s.swapRepo.Create(ctx, swap, input.SkillsOffered, input.SkillsRequested); err != nil {
		return nil, err
	}
	return swap, nil
}

// Get returns the swap with both parties and skill bundles attached.
func (s *SwapService) Get(ctx context.Context, swapID uint) (*models.Swap, error) {
	return s.swapRepo.GetByID(ctx, swapID)
}

// ListForUser returns the user's swaps, optionally filtered by status.
func (s *SwapService) ListForUser(ctx context.Context, userID uint, status string) ([]models.Swap, error) {
	if status != "" && !models.ValidSwapStatus(models.SwapStatus(status)) {
		return nil, models.NewValidationError("Invalid status filter")
	}
	return s.swapRepo.ListForUser(ctx, userID, models.SwapStatus(status))
}

// Accept moves a pending swap to accepted. Only the provider may accept.
func (s *SwapService) Accept(ctx context.Context, userID, swapID uint) error {
	return s.transition(ctx, swapID, userID, repository.RoleProvider,
		models.SwapStatusPending, models.SwapStatusAccepted)
}

// Reject moves a pending swap to rejected. Only the provider may reject.
func (s *SwapService) Reject(ctx context.Context, userID, swapID uint) error {
	return s.transition(ctx, swapID, userID, repository.RoleProvider,
		models.SwapStatusPending, models.SwapStatusRejected)
}

// Cancel moves a pending swap to cancelled. Only the requester may cancel.
func (s *SwapService) Cancel(ctx context.Context, userID, swapID uint) error {
	return s.transition(ctx, swapID, userID, repository.RoleRequester,
		models.SwapStatusPending, models.SwapStatusCancelled)
}

// Complete moves an accepted swap to completed. Either party may complete.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint) error {
	return s.transition(ctx, swapID, userID, repository.RoleEither,
		models.SwapStatusAccepted, models.SwapStatusCompleted)
}

// transition runs the conditional update and maps a zero-row result to the
// same not-found error regardless of whether the swap is missing, in the
// wrong state, or the actor is the wrong party.
func (s *SwapService) transition(ctx context.Context, swapID, actorID uint, role repository.TransitionRole, from, to models.SwapStatus) error {
	ok, err := s.swapRepo.Transition(ctx, swapID, actorID, role, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundMessage("Swap not found")
	}
	return nil
}

// RateInput carries a rating submission.
type RateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Rate records the user's rating of their counterparty on a completed swap.
// At most one rating per party per swap; the unique index backs this up, so
// a concurrent duplicate still resolves to exactly one stored rating.
func (s *SwapService) Rate(ctx context.Context, userID, swapID uint, input RateInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return models.NewValidationError("Rating must be between 1 and 5")
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}
	if swap.Status != models.SwapStatusCompleted {
		return models.NewNotFoundMessage("Completed swap not found")
	}
	if !swap.IsParty(userID) {
		return models.NewForbiddenError("You are not authorized to rate this swap")
	}

	exists, err := s.swapRepo.HasRating(ctx, swapID, userID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewDuplicateError("You have already rated this swap")
	}

	rating := &models.Rating{
		SwapID:  swapID,
		RaterID: userID,
		RatedID: swap.Counterparty(userID),
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	return s.swapRepo.RecordRating(ctx, rating)
}

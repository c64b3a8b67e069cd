package service

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// AdminService provides moderation and platform administration logic.
type AdminService struct {
	userRepo  repository.UserRepository
	swapRepo  repository.SwapRepository
	skillRepo repository.SkillRepository
	msgRepo   repository.AdminMessageRepository
}

// NewAdminService returns a new AdminService.
func NewAdminService(userRepo repository.UserRepository, swapRepo repository.SwapRepository, skillRepo repository.SkillRepository, msgRepo repository.AdminMessageRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		swapRepo:  swapRepo,
		skillRepo: skillRepo,
		msgRepo:   msgRepo,
	}
}

// ListUsers returns all users, including private and banned ones, with an
// optional name/email/location search and a banned|active status filter.
func (s *AdminService) ListUsers(ctx context.Context, search, status string, limit, offset int) ([]models.User, int64, error) {
	if status != "" && status != "banned" && status != "active" {
		return nil, 0, models.NewValidationError("Invalid status filter")
	}
	return s.userRepo.AdminList(ctx, search, status, limit, offset)
}

// BanUser bans the user. Admins cannot ban themselves.
func (s *AdminService) BanUser(ctx context.Context, adminID, userID uint) error {
	if adminID == userID {
		return models.NewValidationError("Cannot ban yourself")
	}
	return s.setBanned(ctx, userID, true)
}

// UnbanUser lifts the ban on the user.
func (s *AdminService) UnbanUser(ctx context.Context, adminID, userID uint) error {
	return s.setBanned(ctx, userID, false)
}

func (s *AdminService) setBanned(ctx context.Context, userID uint, banned bool) error {
	ok, err := s.userRepo.SetBanned(ctx, userID, banned)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

// ListSwaps returns all swaps, optionally filtered by status.
func (s *AdminService) ListSwaps(ctx context.Context, status string, limit, offset int) ([]models.Swap, int64, error) {
	if status != "" && !models.ValidSwapStatus(models.SwapStatus(status)) {
		return nil, 0, models.NewValidationError("Invalid status filter")
	}
	return s.swapRepo.ListAll(ctx, models.SwapStatus(status), limit, offset)
}

// DeleteSwap removes a swap outright. Moderation only; regular users cancel
// or reject instead.
func (s *AdminService) DeleteSwap(ctx context.Context, swapID uint) error {
	ok, err := s.swapRepo.Delete(ctx, swapID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Swap", swapID)
	}
	return nil
}

// AdminMessageInput carries a broadcast message submission.
type AdminMessageInput struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CreateMessage publishes a platform-wide broadcast.
func (s *AdminService) CreateMessage(ctx context.Context, input AdminMessageInput) (*models.AdminMessage, error) {
	if input.Title == "" || input.Message == "" {
		return nil, models.NewValidationError("Title and message are required")
	}
	msgType := models.AdminMessageType(input.Type)
	if input.Type == "" {
		msgType = models.AdminMessageInfo
	}
	if !models.ValidAdminMessageType(msgType) {
		return nil, models.NewValidationError("Invalid message type")
	}

	msg := &models.AdminMessage{
		Title:    input.Title,
		Message:  input.Message,
		Type:     msgType,
		IsActive: true,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns every broadcast, active or not.
func (s *AdminService) ListMessages(ctx context.Context) ([]models.AdminMessage, error) {
	return s.msgRepo.List(ctx)
}

// ActiveMessages returns the currently visible broadcasts.
func (s *AdminService) ActiveMessages(ctx context.Context) ([]models.AdminMessage, error) {
	return s.msgRepo.ListActive(ctx)
}

// AdminMessageUpdate carries a partial broadcast edit. Nil fields are left
// untouched.
type AdminMessageUpdate struct {
	Title    *string `json:"title"`
	Message  *string `json:"message"`
	Type     *string `json:"type"`
	IsActive *bool   `json:"is_active"`
}

// UpdateMessage edits a broadcast's content, type, or visibility.
func (s *AdminService) UpdateMessage(ctx context.Context, id uint, input AdminMessageUpdate) error {
	fields := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return models.NewValidationError("Title cannot be empty")
		}
		fields["title"] = *input.Title
	}
	if input.Message != nil {
		if *input.Message == "" {
			return models.NewValidationError("Message cannot be empty")
		}
		fields["message"] = *input.Message
	}
	if input.Type != nil {
		if !models.ValidAdminMessageType(models.AdminMessageType(*input.Type)) {
			return models.NewValidationError("Invalid message type")
		}
		fields["type"] = *input.Type
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if len(fields) == 0 {
		return models.NewValidationError("No fields to update")
	}

	ok, err := s.msgRepo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

// DeleteMessage removes a broadcast.
func (s *AdminService) DeleteMessage(ctx context.Context, id uint) error {
	ok, err := s.msgRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

// ComputeStats assembles the admin dashboard payload.
func (s *AdminService) ComputeStats(ctx context.Context) (*models.PlatformStats, error) {
	stats, err := s.msgRepo.PlatformStats(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.skillRepo.Popular(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.PopularSkills = popular
	return stats, nil
}

// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"encoding/json"
	"errors"
	"time"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const maxPageLimit = 100

// Page holds parsed page/limit query parameters.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// parsePage extracts page and limit query parameters with the given default limit.
func parsePage(c *fiber.Ctx, defaultLimit int) Page {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return Page{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// envelope builds the pagination envelope placed next to list payloads.
func (p Page) envelope(total int64) fiber.Map {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return fiber.Map{
		"page":  p.Page,
		"limit": p.Limit,
		"total": total,
		"pages": pages,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

func humanizeParam(param string) string {
	switch param {
	case "id":
		return "ID"
	case "skillId":
		return "skill ID"
	default:
		return param
	}
}

// mapServiceError translates an AppError code into an HTTP status and writes
// the response.
func mapServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case "VALIDATION_ERROR", "DUPLICATE":
		status = fiber.StatusBadRequest
	case "UNAUTHORIZED":
		status = fiber.StatusUnauthorized
	case "FORBIDDEN":
		status = fiber.StatusForbidden
	case "NOT_FOUND":
		status = fiber.StatusNotFound
	}
	return models.RespondWithError(c, status, appErr)
}

// publicUser is the directory/profile projection of a user. Email and
// password never leave the server through this shape.
type publicUser struct {
	ID            uint                   `json:"id"`
	Name          string                 `json:"name"`
	Location      string                 `json:"location"`
	ProfilePhoto  string                 `json:"profile_photo"`
	Availability  json.RawMessage        `json:"availability,omitempty"`
	Rating        float64                `json:"rating"`
	TotalRatings  int                    `json:"total_ratings"`
	CreatedAt     time.Time              `json:"created_at"`
	SkillsOffered []models.UserSkillInfo `json:"skills_offered"`
	SkillsWanted  []models.UserSkillInfo `json:"skills_wanted"`
}

// swapParty is the per-party summary embedded in swap payloads. Full user
// rows (with email) never leave the server through swap responses.
type swapParty struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	ProfilePhoto string  `json:"profile_photo"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"total_ratings"`
}

// swapView is the wire shape of a swap.
type swapView struct {
	ID            uint              `json:"id"`
	RequesterID   uint              `json:"requester_id"`
	ProviderID    uint              `json:"provider_id"`
	Status        models.SwapStatus `json:"status"`
	Message       string            `json:"message"`
	Requester     *swapParty        `json:"requester,omitempty"`
	Provider      *swapParty        `json:"provider,omitempty"`
	SkillsOffered []models.Skill    `json:"skills_offered"`
	SkillsWanted  []models.Skill    `json:"skills_wanted"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toSwapParty(u *models.User) *swapParty {
	if u == nil {
		return nil
	}
	return &swapParty{
		ID:           u.ID,
		Name:         u.Name,
		ProfilePhoto: u.ProfilePhoto,
		Rating:       u.Rating,
		TotalRatings: u.TotalRatings,
	}
}

func toSwapView(swap *models.Swap) swapView {
	offered := swap.OfferedSkills
	if offered == nil {
		offered = []models.Skill{}
	}
	wanted := swap.RequestedSkills
	if wanted == nil {
		wanted = []models.Skill{}
	}
	return swapView{
		ID:            swap.ID,
		RequesterID:   swap.RequesterID,
		ProviderID:    swap.ProviderID,
		Status:        swap.Status,
		Message:       swap.Message,
		Requester:     toSwapParty(swap.Requester),
		Provider:      toSwapParty(swap.Provider),
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		CreatedAt:     swap.CreatedAt,
		UpdatedAt:     swap.UpdatedAt,
	}
}

func toSwapViews(swaps []models.Swap) []swapView {
	views := make([]swapView, 0, len(swaps))
	for i := range swaps {
		views = append(views, toSwapView(&swaps[i]))
	}
	return views
}

func toPublicUser(u *models.User, offered, wanted []models.UserSkillInfo) publicUser {
	if offered == nil {
		offered = []models.UserSkillInfo{}
	}
	if wanted == nil {
		wanted = []models.UserSkillInfo{}
	}
	return publicUser{
		ID:            u.ID,
		Name:          u.Name,
		Location:      u.Location,
		ProfilePhoto:  u.ProfilePhoto,
		Availability:  u.Availability,
		Rating:        u.Rating,
		TotalRatings:  u.TotalRatings,
		CreatedAt:     u.CreatedAt,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
	}
}

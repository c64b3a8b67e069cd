package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users, the public directory.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page := parsePage(c, 20)
	search := c.Query("search")
	skill := c.Query("skill")

	users, total, err := s.userService.ListPublic(c.Context(), search, skill, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	out := make([]publicUser, 0, len(users))
	for i := range users {
		offered, wanted, skillsErr := s.userService.Skills(c.Context(), users[i].ID)
		if skillsErr != nil {
			return mapServiceError(c, skillsErr)
		}
		out = append(out, toPublicUser(&users[i], offered, wanted))
	}

	return c.JSON(fiber.Map{
		"users":      out,
		"pagination": page.envelope(total),
	})
}

// GetUserProfile handles GET /api/users/:id. Private and banned profiles
// look exactly like missing ones to anybody but their owner.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)
	profile, profErr := s.userService.GetProfile(c.Context(), viewerID, userID)
	if profErr != nil {
		return mapServiceError(c, profErr)
	}

	pub := toPublicUser(profile.User, profile.SkillsOffered, profile.SkillsWanted)
	ratings := profile.RecentRatings
	if ratings == nil {
		ratings = []models.RatingInfo{}
	}

	return c.JSON(fiber.Map{
		"user":           pub,
		"recent_ratings": ratings,
	})
}

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":           profile.User,
		"skills_offered": profile.SkillsOffered,
		"skills_wanted":  profile.SkillsWanted,
		"recent_ratings": profile.RecentRatings,
	})
}

// UpdateMyProfile handles PUT /api/users/me.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// GetMySkills handles GET /api/users/me/skills.
func (s *Server) GetMySkills(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	offered, wanted, err := s.userService.Skills(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	if offered == nil {
		offered = []models.UserSkillInfo{}
	}
	if wanted == nil {
		wanted = []models.UserSkillInfo{}
	}

	return c.JSON(fiber.Map{
		"skills_offered": offered,
		"skills_wanted":  wanted,
	})
}

// AddOfferedSkill handles POST /api/users/me/skills/offered.
func (s *Server) AddOfferedSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.OfferedSkillInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("skill_id is required"))
	}

	if err := s.userService.AddOfferedSkill(c.Context(), userID, req); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Skill added to offered skills"})
}

// AddWantedSkill handles POST /api/users/me/skills/wanted.
func (s *Server) AddWantedSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.WantedSkillInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("skill_id is required"))
	}

	if err := s.userService.AddWantedSkill(c.Context(), userID, req); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Skill added to wanted skills"})
}

// RemoveOfferedSkill handles DELETE /api/users/me/skills/offered/:skillId.
func (s *Server) RemoveOfferedSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	if rmErr := s.userService.RemoveOfferedSkill(c.Context(), userID, skillID); rmErr != nil {
		return mapServiceError(c, rmErr)
	}
	return c.JSON(fiber.Map{"message": "Skill removed"})
}

// RemoveWantedSkill handles DELETE /api/users/me/skills/wanted/:skillId.
func (s *Server) RemoveWantedSkill(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	skillID, err := s.parseID(c, "skillId")
	if err != nil {
		return nil
	}

	if rmErr := s.userService.RemoveWantedSkill(c.Context(), userID, skillID); rmErr != nil {
		return mapServiceError(c, rmErr)
	}
	return c.JSON(fiber.Map{"message": "Skill removed"})
}

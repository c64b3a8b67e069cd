package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSkills handles GET /api/skills.
func (s *Server) GetSkills(c *fiber.Ctx) error {
	page := parsePage(c, 50)
	category := c.Query("category")
	search := c.Query("search")

	skills, total, err := s.skillService.List(c.Context(), category, search, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"skills":     skills,
		"pagination": page.envelope(total),
	})
}

// GetSkillCategories handles GET /api/skills/categories.
func (s *Server) GetSkillCategories(c *fiber.Ctx) error {
	categories, err := s.skillService.Categories(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetPopularSkills handles GET /api/skills/popular/list.
func (s *Server) GetPopularSkills(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	popular, err := s.skillService.Popular(c.Context(), limit)
	if err != nil {
		return mapServiceError(c, err)
	}
	if popular == nil {
		popular = []models.PopularSkill{}
	}
	return c.JSON(fiber.Map{"skills": popular})
}

// GetSkill handles GET /api/skills/:id.
func (s *Server) GetSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	skill, getErr := s.skillService.Get(c.Context(), id)
	if getErr != nil {
		return mapServiceError(c, getErr)
	}
	return c.JSON(fiber.Map{"skill": skill})
}

// CreateSkill handles POST /api/skills (admin).
func (s *Server) CreateSkill(c *fiber.Ctx) error {
	var req service.SkillInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillService.Create(c.Context(), req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"skill": skill})
}

// UpdateSkill handles PUT /api/skills/:id (admin).
func (s *Server) UpdateSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.SkillInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, updErr := s.skillService.Update(c.Context(), id, req)
	if updErr != nil {
		return mapServiceError(c, updErr)
	}
	return c.JSON(fiber.Map{"skill": skill})
}

// DeleteSkill handles DELETE /api/skills/:id (admin).
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.skillService.Delete(c.Context(), id); delErr != nil {
		return mapServiceError(c, delErr)
	}
	return c.JSON(fiber.Map{"message": "Skill deleted"})
}

package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminGetUsers handles GET /api/admin/users.
func (s *Server) AdminGetUsers(c *fiber.Ctx) error {
	page := parsePage(c, 20)
	search := c.Query("search")
	status := c.Query("status")

	users, total, err := s.adminService.ListUsers(c.Context(), search, status, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": page.envelope(total),
	})
}

// AdminBanUser handles PUT /api/admin/users/:id/ban with body {is_banned}.
func (s *Server) AdminBanUser(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		IsBanned *bool `json:"is_banned"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil || req.IsBanned == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("is_banned is required"))
	}

	var banErr error
	if *req.IsBanned {
		banErr = s.adminService.BanUser(c.Context(), adminID, userID)
	} else {
		banErr = s.adminService.UnbanUser(c.Context(), adminID, userID)
	}
	if banErr != nil {
		return mapServiceError(c, banErr)
	}

	msg := "User unbanned"
	if *req.IsBanned {
		msg = "User banned"
	}
	return c.JSON(fiber.Map{"message": msg})
}

// AdminGetSwaps handles GET /api/admin/swaps.
func (s *Server) AdminGetSwaps(c *fiber.Ctx) error {
	page := parsePage(c, 20)
	status := c.Query("status")

	swaps, total, err := s.adminService.ListSwaps(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"swaps":      toSwapViews(swaps),
		"pagination": page.envelope(total),
	})
}

// AdminDeleteSwap handles DELETE /api/admin/swaps/:id.
func (s *Server) AdminDeleteSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.adminService.DeleteSwap(c.Context(), swapID); delErr != nil {
		return mapServiceError(c, delErr)
	}
	return c.JSON(fiber.Map{"message": "Swap deleted"})
}

// AdminGetStats handles GET /api/admin/stats.
func (s *Server) AdminGetStats(c *fiber.Ctx) error {
	stats, err := s.adminService.ComputeStats(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(stats)
}

// AdminCreateMessage handles POST /api/admin/messages.
func (s *Server) AdminCreateMessage(c *fiber.Ctx) error {
	var req service.AdminMessageInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.adminService.CreateMessage(c.Context(), req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg})
}

// AdminGetMessages handles GET /api/admin/messages.
func (s *Server) AdminGetMessages(c *fiber.Ctx) error {
	msgs, err := s.adminService.ListMessages(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	if msgs == nil {
		msgs = []models.AdminMessage{}
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

// AdminUpdateMessage handles PUT /api/admin/messages/:id. Any of title,
// message, type, and is_active may be supplied.
func (s *Server) AdminUpdateMessage(c *fiber.Ctx) error {
	msgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.AdminMessageUpdate
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if updErr := s.adminService.UpdateMessage(c.Context(), msgID, req); updErr != nil {
		return mapServiceError(c, updErr)
	}
	return c.JSON(fiber.Map{"message": "Message updated"})
}

// AdminDeleteMessage handles DELETE /api/admin/messages/:id.
func (s *Server) AdminDeleteMessage(c *fiber.Ctx) error {
	msgID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.adminService.DeleteMessage(c.Context(), msgID); delErr != nil {
		return mapServiceError(c, delErr)
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

// GetActiveMessages handles GET /api/admin/messages/active, the public view
// of platform broadcasts. Registered outside the admin guard.
func (s *Server) GetActiveMessages(c *fiber.Ctx) error {
	msgs, err := s.adminService.ActiveMessages(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	if msgs == nil {
		msgs = []models.AdminMessage{}
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

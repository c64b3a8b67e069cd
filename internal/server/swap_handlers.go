package server

import (
	"context"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps.
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.CreateSwapInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Create(c.Context(), userID, req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Swap request created",
		"swap_id": swap.ID,
	})
}

// GetMySwaps handles GET /api/swaps/my-swaps.
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	status := c.Query("status")

	swaps, err := s.swapService.ListForUser(c.Context(), userID, status)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"swaps": toSwapViews(swaps)})
}

// GetSwap handles GET /api/swaps/:id.
func (s *Server) GetSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, getErr := s.swapService.Get(c.Context(), swapID)
	if getErr != nil {
		return mapServiceError(c, getErr)
	}
	return c.JSON(fiber.Map{"swap": toSwapView(swap)})
}

// AcceptSwap handles PUT /api/swaps/:id/accept.
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Accept, "Swap accepted")
}

// RejectSwap handles PUT /api/swaps/:id/reject.
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Reject, "Swap rejected")
}

// CancelSwap handles PUT /api/swaps/:id/cancel.
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Cancel, "Swap cancelled")
}

// CompleteSwap handles PUT /api/swaps/:id/complete.
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	return s.transitionSwap(c, s.swapService.Complete, "Swap completed")
}

// transitionSwap runs one of the lifecycle transitions and writes the
// uniform {message} response.
func (s *Server) transitionSwap(c *fiber.Ctx, fn func(ctx context.Context, userID, swapID uint) error, message string) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if trErr := fn(c.Context(), userID, swapID); trErr != nil {
		return mapServiceError(c, trErr)
	}
	return c.JSON(fiber.Map{"message": message})
}

// RateSwap handles POST /api/swaps/:id/rate.
func (s *Server) RateSwap(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.RateInput
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if rateErr := s.swapService.Rate(c.Context(), userID, swapID, req); rateErr != nil {
		return mapServiceError(c, rateErr)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rating recorded"})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maheshrc27/pagepost/internal/service"
)

func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, _ := c.Locals("user_id").(uuid.UUID)
	return userID
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotOwned):
		return fiber.StatusNotFound
	case service.IsClientError(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

package handlers

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	config "github.com/maheshrc27/pagepost/configs"
	"github.com/maheshrc27/pagepost/internal/service"
	"github.com/maheshrc27/pagepost/internal/transfer"
	"github.com/maheshrc27/pagepost/pkg/utils"
)

type PageHandler struct {
	ps  service.PageService
	cfg config.Config
}

func NewPageHandler(ps service.PageService, cfg config.Config) *PageHandler {
	return &PageHandler{
		ps:  ps,
		cfg: cfg,
	}
}

// ConnectFacebook expects the caller's session token as state so the
// callback can tell whose pages it receives.
func (h *PageHandler) ConnectFacebook(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "state is required",
		})
	}
	return c.Redirect(h.ps.GetAuthURL(state))
}

func (h *PageHandler) FacebookCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	if errReason := c.Query("error_reason"); errReason != "" {
		slog.Info("facebook authorization declined", "reason", errReason)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization was declined",
		})
	}

	claims, err := utils.ValidateToken(h.cfg.JWTSecret, state)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to validate user",
		})
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to validate user",
		})
	}

	if _, err := h.ps.Connect(c.UserContext(), code, userID); err != nil {
		slog.Info(err.Error())
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": "Unable to connect Facebook pages",
		})
	}

	redirectURL := fmt.Sprintf("%s/pages", h.cfg.FrontendURL)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *PageHandler) ListPages(c *fiber.Ctx) error {
	userID := GetUserID(c)

	pages, err := h.ps.List(c.UserContext(), userID)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": "Failed to fetch pages",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pages)
}

func (h *PageHandler) CreatePage(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var pc transfer.PageCreation
	if err := c.BodyParser(&pc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse body",
		})
	}

	pageID, err := h.ps.CreatePage(c.UserContext(), userID, &pc)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"page_id": pageID,
	})
}

func (h *PageHandler) RemovePage(c *fiber.Ctx) error {
	userID := GetUserID(c)

	pageID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid page id",
		})
	}

	if err := h.ps.Delete(c.UserContext(), userID, pageID); err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error": "Unable to delete page",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

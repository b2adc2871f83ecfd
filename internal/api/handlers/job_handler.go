package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	job "github.com/maheshrc27/pagepost/internal/jobs"
)

type JobRunner interface {
	Run(ctx context.Context) (*job.Summary, error)
}

type JobHandler struct {
	j JobRunner
}

func NewJobHandler(j JobRunner) *JobHandler {
	return &JobHandler{j: j}
}

// PublishPosts runs the publish job once and reports its summary.
func (h *JobHandler) PublishPosts(c *fiber.Ctx) error {
	summary, err := h.j.Run(c.UserContext())
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    summary,
	})
}

package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/services"
)

// GetStats returns the breakdown for ?period= (daily by default) around ?date=
// (today by default) together with weekly minimum progress.
func (handler *Handler) GetStats(c *fiber.Ctx) error {
	period, err := services.ParsePeriod(c.Query("period"))
	if err != nil {
		return handler.serviceError(c, err)
	}

	ref := handler.now().In(handler.location)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := services.ParseDate(raw, handler.location)
		if err != nil {
			return handler.apiErrorKey(c, fiber.StatusBadRequest, "error.invalid_date")
		}
		ref = parsed
	}

	overview, err := handler.services.Stats.Overview(c.UserContext(), period, ref)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(overview)
}

func (handler *Handler) GetPlanStats(c *fiber.Ctx) error {
	stats, err := handler.services.Plan.Stats(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stats)
}

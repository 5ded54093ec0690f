package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// GetVersions reports the change version of every named list so clients can
// refetch only what moved.
func (handler *Handler) GetVersions(c *fiber.Ctx) error {
	return c.JSON(handler.services.Changes.Versions())
}

// Foreground is called when the client comes back into view. It re-syncs the
// tomorrow's plan notification and rolls a fresh safety tip.
func (handler *Handler) Foreground(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := handler.services.Reminders.SyncTomorrowPlan(ctx); err != nil {
		return handler.serviceError(c, err)
	}
	tip, ok, err := handler.services.Plan.RollSafetyTip(ctx)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"tip":      tipValue(tip, ok),
		"versions": handler.services.Changes.Versions(),
	})
}

func tipValue(tip string, ok bool) any {
	if !ok {
		return nil
	}
	return tip
}

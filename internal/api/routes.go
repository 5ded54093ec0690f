package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")
	api.Get("/versions", handler.GetVersions)
	api.Post("/foreground", handler.Foreground)

	entries := api.Group("/entries")
	entries.Get("", handler.GetEntries)
	entries.Post("", handler.CreateEntry)
	entries.Delete("/:id", handler.DeleteEntry)

	foodTypes := api.Group("/food-types")
	foodTypes.Get("", handler.GetFoodTypes)
	foodTypes.Post("", handler.CreateFoodType)
	foodTypes.Patch("/:id", handler.UpdateFoodType)
	foodTypes.Delete("/:id", handler.DeleteFoodType)

	stats := api.Group("/stats")
	stats.Get("", handler.GetStats)
	stats.Get("/plan", handler.GetPlanStats)

	schedules := api.Group("/schedules")
	schedules.Get("", handler.GetSchedules)
	schedules.Post("/import", handler.ImportSchedule)
	schedules.Delete("/:id", handler.DeleteSchedule)
	schedules.Get("/:id/days", handler.GetScheduleDays)

	plan := api.Group("/plan")
	plan.Get("/today", handler.GetTodayPlan)
	plan.Get("/tomorrow", handler.GetTomorrowPlan)
	plan.Get("/days", handler.GetPlanDays)
	plan.Patch("/days/:id", handler.UpdatePlanDay)
	plan.Get("/tip", handler.GetSafetyTip)

	api.Get("/calculator", handler.GetCalculator)

	reminders := api.Group("/reminders")
	reminders.Get("", handler.GetReminders)
	reminders.Post("", handler.CreateReminder)
	reminders.Post("/reconcile", handler.ReconcileReminders)
	reminders.Patch("/:id", handler.UpdateReminder)
	reminders.Post("/:id/enable", handler.EnableReminder)
	reminders.Post("/:id/disable", handler.DisableReminder)
	reminders.Delete("/:id", handler.DeleteReminder)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

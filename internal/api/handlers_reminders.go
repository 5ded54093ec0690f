package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/services"
)

func (handler *Handler) GetReminders(c *fiber.Ctx) error {
	reminders, err := handler.services.Reminders.List(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(reminders)
}

func (handler *Handler) CreateReminder(c *fiber.Ctx) error {
	payload := services.ReminderInput{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidRequest(c)
	}

	reminder, err := handler.services.Reminders.Create(c.UserContext(), payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func (handler *Handler) UpdateReminder(c *fiber.Ctx) error {
	patch := services.ReminderPatch{}
	if err := c.BodyParser(&patch); err != nil {
		return handler.invalidRequest(c)
	}

	reminder, err := handler.services.Reminders.Edit(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(reminder)
}

func (handler *Handler) EnableReminder(c *fiber.Ctx) error {
	reminder, err := handler.services.Reminders.Enable(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(reminder)
}

func (handler *Handler) DisableReminder(c *fiber.Ctx) error {
	reminder, err := handler.services.Reminders.Disable(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(reminder)
}

func (handler *Handler) DeleteReminder(c *fiber.Ctx) error {
	if err := handler.services.Reminders.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return sendNoContent(c)
}

// ReconcileReminders re-registers every enabled reminder and returns the
// stored reminders with their fresh trigger ids.
func (handler *Handler) ReconcileReminders(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := handler.services.Reminders.RescheduleAll(ctx); err != nil {
		return handler.serviceError(c, err)
	}
	reminders, err := handler.services.Reminders.List(ctx)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(reminders)
}

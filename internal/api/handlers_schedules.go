package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetSchedules(c *fiber.Ctx) error {
	schedules, err := handler.services.Schedules.ListSchedules(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(schedules)
}

// ImportSchedule takes the raw schedule document as the request body.
func (handler *Handler) ImportSchedule(c *fiber.Ctx) error {
	result, err := handler.services.Schedules.ImportSchedule(c.UserContext(), c.Body())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) DeleteSchedule(c *fiber.Ctx) error {
	if err := handler.services.Schedules.DeleteSchedule(c.UserContext(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return sendNoContent(c)
}

func (handler *Handler) GetScheduleDays(c *fiber.Ctx) error {
	days, err := handler.services.Plan.DaysForSchedule(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(days)
}

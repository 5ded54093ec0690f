package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/services"
)

func (handler *Handler) GetTodayPlan(c *fiber.Ctx) error {
	plan, err := handler.services.Plan.Today(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(plan)
}

func (handler *Handler) GetTomorrowPlan(c *fiber.Ctx) error {
	plan, err := handler.services.Plan.Tomorrow(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(plan)
}

func (handler *Handler) GetPlanDays(c *fiber.Ctx) error {
	days, err := handler.services.Schedules.ListPlanDays(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(days)
}

func (handler *Handler) UpdatePlanDay(c *fiber.Ctx) error {
	patch := services.PlanDayPatch{}
	if err := c.BodyParser(&patch); err != nil {
		return handler.invalidRequest(c)
	}

	day, found, err := handler.services.Schedules.UpdatePlanDay(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if !found {
		return handler.apiErrorKey(c, fiber.StatusNotFound, "error.not_found")
	}
	return c.JSON(day)
}

// GetSafetyTip returns the displayed tip; ?roll=1 picks a new one first.
func (handler *Handler) GetSafetyTip(c *fiber.Ctx) error {
	var (
		tip string
		ok  bool
		err error
	)
	if c.QueryBool("roll") {
		tip, ok, err = handler.services.Plan.RollSafetyTip(c.UserContext())
	} else {
		tip, ok, err = handler.services.Plan.SafetyTip(c.UserContext())
	}
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"tip": tipValue(tip, ok)})
}

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/services"
)

func (handler *Handler) GetFoodTypes(c *fiber.Ctx) error {
	foodTypes, err := handler.services.FoodTypes.ListFoodTypes(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	if c.Query("sort") == "priority" {
		services.SortFoodTypesByPriority(foodTypes)
	}
	return c.JSON(foodTypes)
}

func (handler *Handler) CreateFoodType(c *fiber.Ctx) error {
	payload := services.FoodTypeInput{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidRequest(c)
	}

	foodType, err := handler.services.FoodTypes.Create(c.UserContext(), payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(foodType)
}

func (handler *Handler) UpdateFoodType(c *fiber.Ctx) error {
	payload := services.FoodTypeInput{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidRequest(c)
	}

	foodType, err := handler.services.FoodTypes.Update(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(foodType)
}

func (handler *Handler) DeleteFoodType(c *fiber.Ctx) error {
	if err := handler.services.FoodTypes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return sendNoContent(c)
}

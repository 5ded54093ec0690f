package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/services"
)

func (handler *Handler) GetEntries(c *fiber.Ctx) error {
	entries, err := handler.services.Entries.List(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	payload := services.EntryInput{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.invalidRequest(c)
	}

	entry, err := handler.services.Entries.Add(c.UserContext(), payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	if err := handler.services.Entries.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handler.serviceError(c, err)
	}
	return sendNoContent(c)
}

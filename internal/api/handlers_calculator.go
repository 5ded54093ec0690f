package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetCalculator totals plan needs per food. Package sizes come as
// ?size[<food>]=<grams> query parameters.
func (handler *Handler) GetCalculator(c *fiber.Ctx) error {
	sizes, ok := packageSizesFromQuery(c)
	if !ok {
		return handler.apiErrorKey(c, fiber.StatusBadRequest, "error.invalid_package_size")
	}

	needs, err := handler.services.Calculator.Needs(c.UserContext(), sizes)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(needs)
}

func packageSizesFromQuery(c *fiber.Ctx) (map[string]float64, bool) {
	sizes := make(map[string]float64)
	valid := true
	c.Context().QueryArgs().VisitAll(func(key []byte, value []byte) {
		name := string(key)
		if !strings.HasPrefix(name, "size[") || !strings.HasSuffix(name, "]") {
			return
		}
		food := strings.TrimSuffix(strings.TrimPrefix(name, "size["), "]")
		size, err := strconv.ParseFloat(strings.TrimSpace(string(value)), 64)
		if err != nil || food == "" {
			valid = false
			return
		}
		sizes[food] = size
	})
	return sizes, valid
}

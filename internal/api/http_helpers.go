package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/babyfeed/internal/services"
)

const languageLocalKey = "lang"

type errorMapping struct {
	target   error
	status   int
	key      string
	verbatim bool
}

var errorMappings = []errorMapping{
	{target: services.ErrScheduleParse, status: fiber.StatusBadRequest, key: "error.schedule_parse", verbatim: true},
	{target: services.ErrScheduleFormat, status: fiber.StatusBadRequest, key: "error.schedule_format", verbatim: true},
	{target: services.ErrInvalidPeriod, status: fiber.StatusBadRequest, key: "error.invalid_period"},
	{target: services.ErrInvalidEntryAmount, status: fiber.StatusBadRequest, key: "error.invalid_entry_amount"},
	{target: services.ErrUnknownFoodType, status: fiber.StatusBadRequest, key: "error.unknown_food_type"},
	{target: services.ErrInvalidFoodTypeName, status: fiber.StatusBadRequest, key: "error.invalid_food_type_name"},
	{target: services.ErrInvalidFoodTypeUnit, status: fiber.StatusBadRequest, key: "error.invalid_food_type_unit"},
	{target: services.ErrInvalidFoodTypeColor, status: fiber.StatusBadRequest, key: "error.invalid_food_type_color"},
	{target: services.ErrInvalidFoodTypePriority, status: fiber.StatusBadRequest, key: "error.invalid_food_type_priority"},
	{target: services.ErrInvalidWeeklyMinimum, status: fiber.StatusBadRequest, key: "error.invalid_weekly_minimum"},
	{target: services.ErrInvalidPlanAmount, status: fiber.StatusBadRequest, key: "error.invalid_plan_amount"},
	{target: services.ErrInvalidPlanTime, status: fiber.StatusBadRequest, key: "error.invalid_plan_time"},
	{target: services.ErrInvalidPlanFood, status: fiber.StatusBadRequest, key: "error.invalid_plan_food"},
	{target: services.ErrInvalidReminderTitle, status: fiber.StatusBadRequest, key: "error.invalid_reminder_title"},
	{target: services.ErrInvalidReminderTime, status: fiber.StatusBadRequest, key: "error.invalid_reminder_time"},
	{target: services.ErrInvalidReminderRepeat, status: fiber.StatusBadRequest, key: "error.invalid_reminder_repeat"},
	{target: services.ErrFoodTypeNotFound, status: fiber.StatusNotFound, key: "error.not_found"},
	{target: services.ErrReminderNotFound, status: fiber.StatusNotFound, key: "error.not_found"},
}

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DefaultLanguage()
	if raw := c.Query("lang"); raw != "" {
		language = handler.i18n.NormalizeLanguage(raw)
	} else if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
		language = handler.i18n.DetectFromAcceptLanguage(header)
	}
	c.Locals(languageLocalKey, language)
	return c.Next()
}

func (handler *Handler) translate(c *fiber.Ctx, key string) string {
	language, _ := c.Locals(languageLocalKey).(string)
	return handler.i18n.Translate(language, key)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (handler *Handler) apiErrorKey(c *fiber.Ctx, status int, key string) error {
	return apiError(c, status, handler.translate(c, key))
}

// serviceError maps a service error to its HTTP status. Anything unmapped is
// logged and reported as a 500.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	for _, mapping := range errorMappings {
		if !errors.Is(err, mapping.target) {
			continue
		}
		if mapping.verbatim {
			return apiError(c, mapping.status, err.Error())
		}
		return handler.apiErrorKey(c, mapping.status, mapping.key)
	}

	handler.logger.ErrorContext(c.UserContext(), "request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return handler.apiErrorKey(c, fiber.StatusInternalServerError, "error.internal")
}

func (handler *Handler) invalidRequest(c *fiber.Ctx) error {
	return handler.apiErrorKey(c, fiber.StatusBadRequest, "error.invalid_request")
}

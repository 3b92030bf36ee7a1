package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobassist/internal/appstate"
	"jobassist/internal/http/middleware"
	"jobassist/internal/service"
)

// GetPreferences returns the caller's persisted application state.
func GetPreferences(svc service.PreferencesService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), middleware.CurrentSession(c).UserID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	}
}

// UpdatePreferences godoc
// @Summary Replace the caller's persisted application state
// @Tags preferences
// @Accept json
// @Produce json
// @Param body body appstate.Persisted true "Theme, sidebar and filters"
// @Success 200 {object} appstate.Persisted
// @Failure 400 {object} errorPayload
// @Router /api/preferences [put]
func UpdatePreferences(svc service.PreferencesService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in appstate.Persisted
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, msgBadRequest)
		}

		p, err := svc.Update(c.UserContext(), middleware.CurrentSession(c).UserID, in)
		if err != nil {
			if ok, werr := writeValidation(c, err); ok {
				return werr
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	}
}

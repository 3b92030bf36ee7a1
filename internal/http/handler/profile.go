package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobassist/internal/http/middleware"
	"jobassist/internal/service"
)

// UpdateProfile godoc
// @Summary Edit the caller's profile
// @Description Updates name and email and stores the bio as the manual profile CV.
// @Tags profile
// @Accept json
// @Produce json
// @Param body body service.ProfileInput true "Profile"
// @Success 200 {object} model.User
// @Failure 400 {object} errorPayload
// @Router /api/profile [put]
func UpdateProfile(svc service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProfileInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, msgBadRequest)
		}

		u, err := svc.Update(c.UserContext(), middleware.CurrentSession(c).UserID, in)
		if err != nil {
			if ok, werr := writeValidation(c, err); ok {
				return werr
			}
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				return writeError(c, fiber.StatusBadRequest, msgEmailTaken)
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "Utilisateur non trouvé")
			default:
				return writeError(c, fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(u)
	}
}

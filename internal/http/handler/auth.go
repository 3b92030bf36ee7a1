package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"jobassist/internal/config"
	"jobassist/internal/http/middleware"
	"jobassist/internal/service"
	"jobassist/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body validation.RegistrationInput true "Account"
// @Success 200 {object} model.User
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/auth/register [post]
func Register(svc service.AuthService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in validation.RegistrationInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, msgBadRequest)
		}

		u, err := svc.Register(c.UserContext(), in)
		if err != nil {
			if ok, werr := writeValidation(c, err); ok {
				return werr
			}
			if errors.Is(err, service.ErrEmailTaken) {
				return writeError(c, fiber.StatusBadRequest, msgEmailTaken)
			}
			log.WithError(err).WithField("request_id", requestIDFromCtx(c)).Error("register")
			return writeError(c, fiber.StatusInternalServerError, "Une erreur est survenue lors de l'inscription")
		}
		return c.JSON(u)
	}
}

// Login godoc
// @Summary Sign in
// @Description Sets the session cookie on success.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} model.PublicUser
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/auth/login [post]
func Login(svc service.AuthService, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in loginRequest
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, msgBadRequest)
		}

		res, err := svc.Login(c.UserContext(), in.Email, in.Password)
		if err != nil {
			if ok, werr := writeValidation(c, err); ok {
				return werr
			}
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
			}
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}

		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    res.Token,
			Path:     "/",
			Expires:  res.Session.ExpiresAt,
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(res.User.Public())
	}
}

// Logout closes the caller's session and expires the cookie.
func Logout(svc service.AuthService, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Logout(c.UserContext(), middleware.CurrentSession(c)); err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CurrentUser returns the caller's session.
func CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentSession(c))
	}
}

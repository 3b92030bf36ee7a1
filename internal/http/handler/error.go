package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jobassist/internal/http/middleware"
	"jobassist/internal/validation"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	Error string `json:"error"`
}

// messagePayload acknowledges a write and carries the id of what was written.
type messagePayload struct {
	Message    string `json:"message"`
	CVID       string `json:"cvId,omitempty"`
	JobOfferID string `json:"jobOfferId,omitempty"`
}

const (
	msgUnauthenticated = "Non authentifié"
	msgBadRequest      = "Requête invalide"
	msgEmailTaken      = "Cet email est déjà utilisé"
)

func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// writeValidation answers 400 with the joined field messages when err carries
// a validation result. It reports whether it wrote a response.
func writeValidation(c *fiber.Ctx, err error) (bool, error) {
	res, ok := validation.AsResult(err)
	if !ok {
		return false, nil
	}
	return true, writeError(c, fiber.StatusBadRequest, res.Error())
}

// ErrorHandler maps errors that escape handlers, mostly framework ones, to
// the {"error": ...} body.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, msgBadRequest)
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "Ressource introuvable")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "Méthode non autorisée")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "Fichier trop volumineux")
		default:
			return writeError(c, fe.Code, fe.Message)
		}
	}
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"jobassist/internal/model"
	"jobassist/internal/session"
)

// SessionLocalKey holds the caller's *model.Session in Fiber locals.
const SessionLocalKey = "session"

// RequireSession rejects requests without a valid session cookie with
// 401 {"error":"Non authentifié"} and stores the resolved session otherwise.
func RequireSession(sessions session.Manager, cookieName string, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Resolve(c.UserContext(), c.Cookies(cookieName))
		if err != nil {
			if !errors.Is(err, session.ErrInvalidToken) && !errors.Is(err, session.ErrNotFound) {
				log.WithError(err).WithField("request_id", c.Locals(RequestIDLocalKey)).Error("resolve session")
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Non authentifié"})
		}
		c.Locals(SessionLocalKey, sess)
		return c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession, or nil.
func CurrentSession(c *fiber.Ctx) *model.Session {
	sess, _ := c.Locals(SessionLocalKey).(*model.Session)
	return sess
}

package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"jobassist/internal/config"
	"jobassist/internal/http/middleware"
	"jobassist/internal/service"
	"jobassist/internal/session"
)

// Dependencies is everything the routes need. Redis may be nil.
type Dependencies struct {
	DB            *sql.DB
	Redis         redis.Cmdable
	Sessions      session.Manager
	SessionConfig config.SessionConfig
	Auth          service.AuthService
	CVs           service.CVService
	Offers        service.OfferService
	Profile       service.ProfileService
	Preferences   service.PreferencesService
	Log           logrus.FieldLogger
}

// RegisterRoutes attaches the health probes and the /api tree to app.
// Everything under /api except register and login requires a session.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.DB, d.Redis))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", Register(d.Auth, d.Log))
	auth.Post("/login", Login(d.Auth, d.SessionConfig))

	requireSession := middleware.RequireSession(d.Sessions, d.SessionConfig.CookieName, d.Log)
	auth.Post("/logout", requireSession, Logout(d.Auth, d.SessionConfig))
	auth.Get("/session", requireSession, CurrentUser())

	cv := api.Group("/cv", requireSession)
	cv.Get("/", ListCVs(d.CVs))
	cv.Post("/upload", UploadCV(d.CVs))
	cv.Get("/:cvId/file", DownloadCV(d.CVs))

	offers := api.Group("/offers", requireSession)
	offers.Get("/", SearchOffers(d.Offers))
	offers.Post("/import", ImportOffer(d.Offers))
	offers.Get("/imported", ListImportedOffers(d.Offers))
	offers.Get("/:offerId", GetOffer(d.Offers))

	api.Put("/profile", requireSession, UpdateProfile(d.Profile))

	prefs := api.Group("/preferences", requireSession)
	prefs.Get("/", GetPreferences(d.Preferences))
	prefs.Put("/", UpdatePreferences(d.Preferences))
}

package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"jobassist/docs"
	"jobassist/internal/appstate"
	"jobassist/internal/config"
	"jobassist/internal/database"
	"jobassist/internal/database/migration"
	"jobassist/internal/extract"
	handlers "jobassist/internal/http/handler"
	"jobassist/internal/http/middleware"
	"jobassist/internal/jobsearch"
	"jobassist/internal/logger"
	"jobassist/internal/otel"
	"jobassist/internal/repository/postgres"
	"jobassist/internal/service"
	"jobassist/internal/session"
	"jobassist/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Job Assistant API
// @version 1.0
// @description CV upload and extraction, job offer search and import, user profiles.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Location())
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("init tracing")
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("migrate database")
	}

	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("connect to redis")
	}
	defer rdb.Close()

	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.WithError(err).Fatal("initialize object storage")
		}
	} else {
		log.Warn("MINIO_ENDPOINT not set; original CV files will not be archived")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)

	app, err := newApp(cfg, log, reg, db, rdb, objStore)
	if err != nil {
		log.WithError(err).Fatal("build application")
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("http shutdown")
		}
	}()

	log.WithField("port", cfg.Port).Info("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("start server")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.WithError(err).Error("flush traces")
	}
}

func newApp(cfg *config.AppConfig, log *logrus.Logger, reg *prometheus.Registry, db *sql.DB, rdb *redis.Client, objStore storage.Storage) (*fiber.App, error) {
	sessions, err := session.NewManager(session.NewRedisStore(rdb), cfg.Session)
	if err != nil {
		return nil, err
	}

	uploadMetrics, err := service.NewUploadMetrics(reg)
	if err != nil {
		return nil, err
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}

	users := postgres.NewUserPostgres(db)
	prefs := service.NewPreferencesService(appstate.NewRedisStorage(rdb), log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Multipart framing on top of the largest accepted file.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(recover.New())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:            db,
		Redis:         rdb,
		Sessions:      sessions,
		SessionConfig: cfg.Session,
		Auth:          service.NewAuthService(users, sessions, prefs, log),
		CVs: service.NewCVService(
			postgres.NewCVPostgres(db),
			extract.NewDocconv(),
			objStore,
			cfg.Upload.MaxBytes,
			uploadMetrics,
			log,
		),
		Offers:      service.NewOfferService(jobsearch.NewCatalogue(), postgres.NewJobOfferPostgres(db)),
		Profile:     service.NewProfileService(users),
		Preferences: prefs,
		Log:         log,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app, nil
}

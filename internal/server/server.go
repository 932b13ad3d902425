// Package server assembles the Fiber application from a Store and the
// optional event and throttling backends.
package server

import (
	"context"
	"time"

	"bjjtracker/internal/database"
	"bjjtracker/internal/handlers"
	"bjjtracker/internal/middleware"
	"bjjtracker/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Options configures NewApp. Events, Throttle and Now may be nil.
type Options struct {
	Store      *database.Store
	JWTSecret  string
	TokenTTL   time.Duration
	Events     services.EventPublisher
	Throttle   services.LoginThrottle
	Location   *time.Location
	DateLayout string
	Now        func() time.Time
	AccessLog  bool
}

// NewApp builds the HTTP application. Everything under /api except
// /api/auth requires a bearer token.
func NewApp(opts Options) *fiber.App {
	store := opts.Store

	authService := services.NewAuthService(store.Users, opts.JWTSecret, opts.TokenTTL)
	if opts.Throttle != nil {
		authService.WithThrottle(opts.Throttle)
	}
	userService := services.NewUserService(store.Users)
	trainingService := services.NewTrainingService(store.Trainings, opts.Events)
	techniqueService := services.NewTechniqueService(store.Techniques, opts.Events)
	competitionService := services.NewCompetitionService(store.Competitions, opts.Events)
	statsService := services.NewStatsService(
		store.Trainings, store.Techniques, store.Competitions, store.Users,
		opts.Location, opts.DateLayout,
	)
	if opts.Now != nil {
		trainingService.WithClock(opts.Now)
		competitionService.WithClock(opts.Now)
		statsService.WithClock(opts.Now)
	}

	app := fiber.New(fiber.Config{
		AppName:      "bjjtracker",
		ErrorHandler: handlers.ErrorHandler,
	})
	if opts.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "BJJ Tracker API is running"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
		})
	})

	api := app.Group("/api")

	// Authentication routes (public); registered before the protected group.
	handlers.NewAuthHandler(authService).RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	handlers.NewUserHandler(userService).RegisterRoutes(protected)
	handlers.NewTrainingHandler(trainingService).RegisterRoutes(protected)
	handlers.NewTechniqueHandler(techniqueService).RegisterRoutes(protected)
	handlers.NewCompetitionHandler(competitionService).RegisterRoutes(protected)
	handlers.NewStatsHandler(statsService).RegisterRoutes(protected)

	return app
}

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bjjtracker/internal/config"
	"bjjtracker/internal/database"
	"bjjtracker/internal/ratelimit"
	"bjjtracker/internal/server"
	"bjjtracker/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile(cmd))
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	opts := server.Options{
		Store:      store,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.JWTExpiresIn,
		Location:   loc,
		DateLayout: cfg.StatsDateLayout,
		AccessLog:  true,
	}

	// --- Activity events (optional) ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return fmt.Errorf("initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		opts.Events = mqClient

		if cfg.EventsLogConsumer {
			if err := mqClient.ConsumeActivityEvents(rabbitmq.LogActivityMessage); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	} else {
		log.Println("RABBITMQ_URL not set, activity events disabled")
	}

	// --- Login throttling (optional) ---
	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		opts.Throttle = ratelimit.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
	} else {
		log.Println("REDIS_ADDR not set, login throttling disabled")
	}

	app := server.NewApp(opts)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s", cfg.AppPort)
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

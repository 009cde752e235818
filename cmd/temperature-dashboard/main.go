package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/temperature-dashboard/internal/api/http"
	"github.com/i474232898/temperature-dashboard/internal/config"
	"github.com/i474232898/temperature-dashboard/internal/logger"
	"github.com/i474232898/temperature-dashboard/internal/observability"
	"github.com/i474232898/temperature-dashboard/internal/scheduler"
	"github.com/i474232898/temperature-dashboard/internal/store"
	"github.com/i474232898/temperature-dashboard/internal/temperature"
	"github.com/i474232898/temperature-dashboard/internal/temperature/sources"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if !cfg.EnvFileLoaded {
		log.Debug().Msg("no .env file found; using environment and flags")
	}

	metrics := observability.NewMetrics()

	// Bounded history of recent readings.
	history, err := store.NewMemoryStore(cfg.HistoryCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create history store")
	}

	synthetic := sources.NewSynthetic(nil)
	var source temperature.Source = synthetic
	if cfg.Source == config.SourceOpenMeteo {
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		source = sources.NewOpenMeteo(client, "", cfg.Latitude, cfg.Longitude)
	}

	feed, err := temperature.NewFeed(history, source, synthetic, clockwork.NewRealClock(), metrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create feed")
	}

	sched, err := scheduler.New(cfg.UpdateInterval, feed, metrics, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "temperature-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-dashboard",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, feed, httpapi.Settings{
		DefaultUnit:    cfg.DefaultUnit,
		UpdateInterval: cfg.UpdateInterval,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Int("capacity", cfg.HistoryCapacity).
			Str("source", feed.SourceName()).
			Msg("http server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

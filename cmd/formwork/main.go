package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"formwork/internal/common/config"
	"formwork/internal/common/logging"
	"formwork/internal/common/middleware"
	"formwork/internal/host/store"
	"formwork/internal/plan/handlers"
	"formwork/internal/plan/mapper"
	"formwork/internal/plan/service"
)

// ============================================================
// Formwork Plan Service
// ============================================================

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file (default "+config.DefaultFile+" when present)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal("open db", "path", cfg.DBPath, "err", err)
	}
	defer db.Close()

	repo := store.New(db)
	if err := repo.Init(context.Background()); err != nil {
		logger.Fatal("init db", "err", err)
	}

	opts := mapper.DefaultOptions()
	opts.SnapTolerance = cfg.SnapTolerance
	planHandler := handlers.NewPlanHandler(
		repo,
		service.NewSessions(time.Duration(cfg.SessionTTL)*time.Minute),
		service.NewFileStorage(cfg.StorageDir),
		opts,
		logger,
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Formwork Plan Service",
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	handlers.HealthRoutes(app, db)

	// ============================================================
	// Plan Routes
	// ============================================================

	handlers.Routes(app, planHandler)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting formwork plan service", "addr", addr, "env", cfg.Environment)

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", "err", err)
	}
}

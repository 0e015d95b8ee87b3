package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/application"
	"github.com/Maxito7/studio_backend/internal/assets"
	"github.com/Maxito7/studio_backend/internal/catalog"
	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/db"
	"github.com/Maxito7/studio_backend/internal/email"
	"github.com/Maxito7/studio_backend/internal/infrastructure/repository"
	handlers "github.com/Maxito7/studio_backend/internal/interfaces/http"
	"github.com/Maxito7/studio_backend/internal/logging"
	"github.com/Maxito7/studio_backend/internal/scheduler"
	"github.com/Maxito7/studio_backend/internal/viewer"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer database.Close()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	// Preload gate over the critical images
	source, err := assets.NewSource(ctx, cfg.Assets, cfg.Storage)
	if err != nil {
		return err
	}
	thumbs := assets.NewThumbnailer(source, cfg.Assets.ThumbnailWidth, logger.Named("assets"))
	gate := viewer.NewPreloadGate(cat.CriticalImages(), thumbs, viewer.PreloadOptions{
		Concurrency: cfg.Assets.Concurrency,
		Timeout:     cfg.Assets.LoadTimeout,
		Logger:      logger.Named("preload"),
	})
	gate.OnLoaded(func() { logger.Info("site ready", zap.Int("thumbnails", thumbs.Len())) })
	gate.Start(ctx)

	// Servicios
	servicioRepo := repository.NewServicioRepository(database)
	servicioService := application.NewServicioService(servicioRepo)
	if n, err := servicioService.Seed(ctx, cat.Services); err != nil {
		return err
	} else if n > 0 {
		logger.Info("seeded services from catalog", zap.Int("count", n))
	}

	// Theme
	themeService := application.NewThemeService(repository.NewSettingsRepository(database), logger)
	if err := themeService.Init(ctx); err != nil {
		return err
	}

	// Email client
	var notifier application.ContactNotifier
	if cfg.SMTP.Enabled() {
		emailClient, err := email.NewClient(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.FromName,
			cfg.SMTP.FromEmail,
			logger.Named("email"),
		)
		if err != nil {
			logger.Warn("email client initialization failed, continuing without notifications", zap.Error(err))
		} else {
			notifier = emailClient
		}
	}

	// Contacto
	limiter := application.NewRateLimiter(cfg.Contact.RateWindow, cfg.Contact.RateLimit)
	contactService := application.NewContactService(
		cfg.Contact,
		repository.NewContactRepository(database),
		notifier,
		cfg.SMTP.NotifyTo,
		limiter,
		logger.Named("contact"),
	)

	// Viewer sessions
	sessions := application.NewSessionManager(cat, cfg.Carousels, cfg.Sessions, viewer.SystemClock(), logger.Named("viewer"))
	defer sessions.CloseAll()

	janitor := scheduler.NewJanitor(cfg.Sessions.SweepInterval, logger.Named("janitor"))
	janitor.Register("sessions", scheduler.SweepFunc(sessions.Sweep))
	janitor.Register("rate-limiter", scheduler.SweepFunc(limiter.Cleanup))
	janitor.Start()
	defer janitor.Stop()

	galleryService := application.NewGalleryService(cat)

	app := fiber.New(fiber.Config{
		AppName:               cat.Studio.Name,
		DisableStartupMessage: true,
		ProxyHeader:           proxyHeader(cfg.Server.TrustProxy),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + handlers.HeaderSessionID,
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))

	handlers.SetupRoutes(app, handlers.Handlers{
		Page:     handlers.NewPageHandler(galleryService, servicioService, themeService, gate, logger.Named("http")),
		Assets:   handlers.NewAssetHandler(source, logger.Named("http")),
		Gallery:  handlers.NewGalleryHandler(galleryService, thumbs),
		Servicio: handlers.NewServicioHandler(servicioService, logger.Named("http")),
		Theme:    handlers.NewThemeHandler(themeService, logger.Named("http")),
		Contact:  handlers.NewContactHandler(contactService, sessions, logger.Named("http")),
		Session:  handlers.NewSessionHandler(sessions, logger.Named("http")),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sessions.CloseAll()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return err
	}
	return <-errCh
}

func proxyHeader(trust bool) string {
	if trust {
		return fiber.HeaderXForwardedFor
	}
	return ""
}

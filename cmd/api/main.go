package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pizza-service/internal/application/auth"
	"github.com/jhoicas/pizza-service/internal/application/usecase"
	"github.com/jhoicas/pizza-service/internal/infrastructure/grafana"
	infrapdf "github.com/jhoicas/pizza-service/internal/infrastructure/pdf"
	"github.com/jhoicas/pizza-service/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pizza-service/internal/interfaces/http"
	"github.com/jhoicas/pizza-service/internal/metrics"
	"github.com/jhoicas/pizza-service/pkg/config"
	"github.com/jhoicas/pizza-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	if err := postgres.Migrate(cfg.DB); err != nil {
		log.Fatal().Err(err).Msg("database migration")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	franchiseRepo := postgres.NewFranchiseRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, tokenRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.ExpMinutes,
		Issuer:     cfg.JWT.Issuer,
	})
	franchiseUC := usecase.NewFranchiseUseCase(txRunner, franchiseRepo)

	// PDF: downloadable receipt for a placed order
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	orderUC := usecase.NewOrderUseCase(txRunner, menuRepo, orderRepo, franchiseRepo, receiptGenerator)

	// Metrics: counters accumulate in-process and each observation is also
	// pushed to Grafana as an OTLP-style sum. With no URL configured the
	// sender stays nil and the registry keeps counting locally.
	var sender metrics.Sender
	if cfg.Metrics.Enabled() {
		sender = grafana.NewSender(cfg.Metrics, log)
	}
	registry := metrics.NewRegistry(sender)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestTracker(registry, log))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "JWT Pizza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		FranchiseUC: franchiseUC,
		OrderUC:     orderUC,
		Metrics:     registry,
	})

	var reporter *metrics.Reporter
	if cfg.Metrics.Enabled() {
		reporter = metrics.NewReporter(registry, metrics.SampleSystem,
			time.Duration(cfg.Metrics.IntervalSeconds)*time.Second, log)
		reporter.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if reporter != nil {
		reporter.Stop()
	}

	log.Info().Msg("application stopped")
}

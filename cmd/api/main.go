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

	"github.com/jhoicas/issuetrack-api/internal/application/auth"
	"github.com/jhoicas/issuetrack-api/internal/application/issues"
	"github.com/jhoicas/issuetrack-api/internal/application/products"
	"github.com/jhoicas/issuetrack-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/issuetrack-api/internal/interfaces/http"
	"github.com/jhoicas/issuetrack-api/pkg/config"
	pkgjwt "github.com/jhoicas/issuetrack-api/pkg/jwt"
	"github.com/jhoicas/issuetrack-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	codec, err := pkgjwt.New(pkgjwt.Options{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		Issuer:    cfg.JWT.Issuer,
		TTL:       time.Duration(cfg.JWT.Expiration) * time.Minute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build token codec")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// GrantAllScopes mirrors current behavior: routes declare scopes but
	// none are enforced yet. Swap here when enforcement lands.
	authUC := auth.NewAuthUseCase(userRepo, codec, auth.GrantAllScopes{})
	productUC := products.NewProductUseCase(productRepo)
	issueUC := issues.NewIssueUseCase(txRunner, issueRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Issuetrack API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ProductUC: productUC,
		IssueUC:   issueUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/advokit/outreach-api/internal/agent"
	"github.com/advokit/outreach-api/internal/analytics"
	"github.com/advokit/outreach-api/internal/auth"
	"github.com/advokit/outreach-api/internal/config"
	"github.com/advokit/outreach-api/internal/database"
	"github.com/advokit/outreach-api/internal/handler"
	"github.com/advokit/outreach-api/internal/llm"
	"github.com/advokit/outreach-api/internal/mailer"
	middlewarepkg "github.com/advokit/outreach-api/internal/middleware"
	"github.com/advokit/outreach-api/internal/prospect"
	"github.com/advokit/outreach-api/internal/repository"
	"github.com/advokit/outreach-api/internal/router"
	"github.com/advokit/outreach-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	extractionsRepo := repository.NewPGXExtractionsRepository(pool)
	sentEmailsRepo := repository.NewPGXSentEmailsRepository(pool)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	generator := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel, httpClient)
	sink := analytics.NewClient(cfg.AnalyticsEndpoint, cfg.AnalyticsAPIKey, httpClient)

	providerClient := prospect.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderAPISecret, httpClient)
	poller := prospect.NewPoller(httpClient, cfg.ProviderPollAttempts)
	discovery := prospect.NewDiscovery(providerClient, poller, cfg.DefaultPhoneRegion)

	extractionAgent := agent.NewExtractionAgent(generator, sink)
	draftAgent := agent.NewDraftAgent(generator)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	outreachService := service.NewOutreachService(
		extractionAgent,
		draftAgent,
		discovery,
		mailer.NewGmailSender(),
		extractionsRepo,
		sentEmailsRepo,
		sink,
	)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserAdminHandler(userService),
		Extract:  handler.NewExtractHandler(outreachService),
		Contacts: handler.NewContactsHandler(outreachService),
		Draft:    handler.NewDraftHandler(outreachService),
		Send:     handler.NewSendHandler(outreachService),
		History:  handler.NewHistoryHandler(outreachService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

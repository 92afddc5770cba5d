package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/TheTimMir/dnlit-quest-bot/internal/api/http"
	"github.com/TheTimMir/dnlit-quest-bot/internal/api/http/handlers"
	"github.com/TheTimMir/dnlit-quest-bot/internal/bot"
	"github.com/TheTimMir/dnlit-quest-bot/internal/config"
	"github.com/TheTimMir/dnlit-quest-bot/internal/dispatch"
	"github.com/TheTimMir/dnlit-quest-bot/internal/observability"
	"github.com/TheTimMir/dnlit-quest-bot/internal/quest"
	"github.com/TheTimMir/dnlit-quest-bot/internal/registry"
	"github.com/TheTimMir/dnlit-quest-bot/internal/storage"
	"github.com/TheTimMir/dnlit-quest-bot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	script, err := quest.Load(cfg.Quest.ScriptFile)
	if err != nil {
		logger.Fatal("failed to load quest script", zap.Error(err))
	}

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open registry store", zap.Error(err))
	}
	defer store.Close()

	reg, err := registry.New(ctx, store, cfg.Quest.TeamCodes, cfg.Bot.AdminID, logger)
	if err != nil {
		logger.Fatal("failed to init registry", zap.Error(err))
	}

	client, err := telegram.New(cfg.Bot, logger)
	if err != nil {
		logger.Fatal("failed to connect to telegram", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := dispatch.New(reg, client, logger, metrics)
	engine := bot.New(cfg.Bot.AdminID, cfg.Quest.TeamCodes, bot.Dependencies{
		Script:     script,
		Registry:   reg,
		Dispatcher: dispatcher,
		Transport:  client,
		Logger:     logger,
		Metrics:    metrics,
	})

	var app *fiber.App
	if cfg.HTTP.Enabled {
		app = fiber.New()
		httptransport.RegisterMiddlewares(app, logger)
		httptransport.RegisterRoutes(app, httptransport.RouteConfig{
			Health:  handlers.NewHealthHandler("dnlit-quest-bot", store),
			Teams:   handlers.NewTeamsHandler(reg),
			Metrics: handlers.NewMetricsHandler(metrics),
		})
		go func() {
			if err := app.Listen(cfg.HTTP.Addr()); err != nil {
				logger.Fatal("fiber listen", zap.Error(err))
			}
		}()
	}

	go engine.Run(ctx, client.Updates())

	waitForShutdown(logger)

	client.Stop()
	if app != nil {
		_ = app.Shutdown()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

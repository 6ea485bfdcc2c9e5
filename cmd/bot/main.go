package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rmoreira/steamwatch-bot/internal/discord"
	"github.com/rmoreira/steamwatch-bot/internal/ops"
	"github.com/rmoreira/steamwatch-bot/internal/steam"
	"github.com/rmoreira/steamwatch-bot/internal/watchlist"
	"github.com/rmoreira/steamwatch-bot/pkg/config"
	"github.com/rmoreira/steamwatch-bot/pkg/db"
	"github.com/rmoreira/steamwatch-bot/pkg/logger"
	"github.com/rmoreira/steamwatch-bot/pkg/metrics"
	"github.com/rmoreira/steamwatch-bot/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "bot"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "bot",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	sqlDB, err := dbClient.SQLDB()
	if err != nil {
		logg.Error(context.Background(), "failed to get raw db handle", err)
		os.Exit(1)
	}
	if err := migrate.Up(context.Background(), sqlDB); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	catalog, err := steam.NewClient(cfg.Steam, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create steam client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	commandMetrics := metrics.NewCommandMetrics(registry)

	service, err := watchlist.NewService(watchlist.ServiceParams{
		Repo:    watchlist.NewRepository(dbClient.DB()),
		Catalog: catalog,
		Logger:  logg,
		Metrics: commandMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create watchlist service", err)
		os.Exit(1)
	}

	bot, err := discord.New(cfg.Discord, service, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create discord bot", err)
		os.Exit(1)
	}

	if cfg.Ops.Port != "" {
		opsServer := &http.Server{
			Addr:    ":" + cfg.Ops.Port,
			Handler: ops.NewRouter(dbClient, registry),
		}
		go func() {
			if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logg.Error(context.Background(), "ops server stopped unexpectedly", err)
			}
		}()
		defer opsServer.Close()
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"db_path": cfg.DB.Path,
	})
	logg.Info(ctx, "starting discord bot")

	if err := bot.Open(); err != nil {
		logg.Error(ctx, "failed to open discord session", err)
		os.Exit(1)
	}
	defer func() {
		if err := bot.Close(); err != nil {
			logg.Error(ctx, "error closing discord session", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	logg.Info(ctx, "shutting down")
}

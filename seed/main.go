package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katseye-news/backend/internal/config"
	"github.com/katseye-news/backend/internal/logger"
	"github.com/katseye-news/backend/internal/models"
	"github.com/katseye-news/backend/internal/publish"
	"github.com/katseye-news/backend/internal/storage"
)

// One-shot job that publishes the built-in seed bundle. Run it once on first
// deploy so the feed has content before the research worker ever runs.
func main() {
	log := logger.New("seed")
	cfg, err := config.LoadSeed()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	store, err := storage.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, log)
	if err != nil {
		log.Error("init object store", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	bundle := models.SeedBundle()
	if err := publish.New(store, log).Publish(ctx, bundle, ""); err != nil {
		log.Error("publish seed bundle", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("seed data uploaded", slog.Int("items", len(bundle.NewsItems)))
}

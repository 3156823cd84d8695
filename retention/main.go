package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katseye-news/backend/internal/config"
	"github.com/katseye-news/backend/internal/logger"
	"github.com/katseye-news/backend/internal/storage"
)

func main() {
	log := logger.New("retention")
	cfg, err := config.LoadRetention()
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

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info("retention job running",
		slog.Duration("interval", cfg.Interval),
		slog.Duration("max_age", cfg.MaxAge),
	)

	// Run immediately on start; a failed pass retries on the next tick.
	runOnce(ctx, log, store, cfg.MaxAge)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return
		case <-ticker.C:
			runOnce(ctx, log, store, cfg.MaxAge)
		}
	}
}

// runOnce deletes archive objects whose encoded date is older than maxAge.
// The latest key is never touched.
func runOnce(ctx context.Context, log *slog.Logger, store *storage.Client, maxAge time.Duration) {
	subCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	keys, err := store.ListKeys(subCtx, storage.ArchivePrefix)
	if err != nil {
		log.Warn("retention run failed (will retry on next interval)", slog.Any("err", err))
		return
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	deleted := 0
	for _, key := range keys {
		date, ok := storage.ArchiveDate(key)
		if !ok {
			log.Debug("skipping non-archive key", slog.String("key", key))
			continue
		}
		if !date.Before(cutoff) {
			continue
		}
		if err := store.Remove(subCtx, key); err != nil {
			log.Warn("remove archive object", slog.String("key", key), slog.Any("err", err))
			continue
		}
		deleted++
	}

	if deleted > 0 {
		log.Info("retention run completed", slog.Int("deleted", deleted))
	} else {
		log.Debug("retention run completed, no old archives found")
	}
}

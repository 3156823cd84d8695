package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/katseye-news/backend/internal/config"
	"github.com/katseye-news/backend/internal/extract"
	"github.com/katseye-news/backend/internal/logger"
	"github.com/katseye-news/backend/internal/models"
	"github.com/katseye-news/backend/internal/publish"
	"github.com/katseye-news/backend/internal/research"
	"github.com/katseye-news/backend/internal/storage"
)

func main() {
	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := research.New(cfg.ResearchURL, cfg.ResearchToken, cfg.PollInterval, cfg.PollAttempts, log)
	if err != nil {
		log.Error("init research client", slog.Any("err", err))
		os.Exit(1)
	}

	store, err := storage.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, log)
	if err != nil {
		log.Error("init object store", slog.Any("err", err))
		os.Exit(1)
	}

	pub := publish.New(store, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if cfg.CronSpec == "" {
		if err := runOnce(ctx, log, cfg, client, pub); err != nil {
			log.Error("news update failed", slog.Any("err", err))
			os.Exit(1)
		}
		return
	}

	// Scheduled mode: first run immediately, then per the cron spec. A failed
	// run logs and waits for the next slot instead of killing the process.
	sched := cron.New()
	_, err = sched.AddFunc(cfg.CronSpec, func() {
		if err := runOnce(ctx, log, cfg, client, pub); err != nil {
			log.Error("scheduled news update failed", slog.Any("err", err))
		}
	})
	if err != nil {
		log.Error("invalid WORKER_CRON spec", slog.String("spec", cfg.CronSpec), slog.Any("err", err))
		os.Exit(1)
	}

	sched.Start()
	log.Info("worker scheduled", slog.String("cron", cfg.CronSpec))

	if err := runOnce(ctx, log, cfg, client, pub); err != nil {
		log.Error("initial news update failed", slog.Any("err", err))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	<-sched.Stop().Done()
}

type researchRunner interface {
	Submit(ctx context.Context, req research.SubmitRequest) (string, error)
	Await(ctx context.Context, jobID string) (*research.Job, error)
}

type bundlePublisher interface {
	Publish(ctx context.Context, bundle models.NewsBundle, jobID string) error
}

// runOnce executes one sequential pipeline pass: submit, poll, extract, publish.
func runOnce(ctx context.Context, log *slog.Logger, cfg *config.Worker, client researchRunner, pub bundlePublisher) error {
	rlog := log.With(slog.String("run_id", uuid.NewString()))
	rlog.Info("news update starting")

	jobID, err := client.Submit(ctx, research.SubmitRequest{
		Question:   cfg.Question,
		Depth:      cfg.Depth,
		Approach:   cfg.Approach,
		ExpertID:   cfg.ExpertID,
		JSONSchema: research.NewsSchema(),
	})
	if err != nil {
		return fmt.Errorf("submit research: %w", err)
	}

	job, err := client.Await(ctx, jobID)
	if err != nil {
		return fmt.Errorf("await research job %s: %w", jobID, err)
	}

	bundle := extract.Build(job, time.Now())
	rlog.Info("extracted news items",
		slog.String("job_id", jobID),
		slog.Int("items", len(bundle.NewsItems)),
		slog.Int("trending_topics", len(bundle.TrendingTopics)),
		slog.Int("upcoming_events", len(bundle.UpcomingEvents)),
	)

	if err := pub.Publish(ctx, bundle, jobID); err != nil {
		return fmt.Errorf("publish bundle for job %s: %w", jobID, err)
	}

	rlog.Info("news update complete", slog.String("job_id", jobID))
	return nil
}

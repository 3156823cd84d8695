package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katseye-news/backend/internal/models"
	"github.com/katseye-news/backend/internal/storage"
)

// ObjectStore is the storage surface the publisher writes through.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Publisher stamps a bundle with run metadata and persists it to the latest
// key and the dated archive key. Both writes carry the same payload; a
// failure on either aborts the run so no partial state is served.
type Publisher struct {
	store ObjectStore
	log   *slog.Logger
	now   func() time.Time
}

// New builds a publisher over the given store.
func New(store ObjectStore, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{store: store, log: logger, now: time.Now}
}

// Publish writes the bundle to latest.json and archive/<date>.json.
func (p *Publisher) Publish(ctx context.Context, bundle models.NewsBundle, jobID string) error {
	now := p.now().UTC()
	bundle.LastUpdated = now
	bundle.GeneratedAt = now
	bundle.ResearchJobID = jobID

	if bundle.NewsItems == nil {
		bundle.NewsItems = []models.NewsItem{}
	}
	if bundle.TrendingTopics == nil {
		bundle.TrendingTopics = []string{}
	}
	if bundle.UpcomingEvents == nil {
		bundle.UpcomingEvents = []models.UpcomingEvent{}
	}

	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	if err := p.store.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	if err := p.store.Put(ctx, storage.LatestKey, payload, storage.ContentTypeJSON); err != nil {
		return fmt.Errorf("write latest: %w", err)
	}
	p.log.Info("saved bundle", slog.String("key", storage.LatestKey), slog.Int("items", len(bundle.NewsItems)))

	archiveKey := storage.ArchiveKey(now)
	if err := p.store.Put(ctx, archiveKey, payload, storage.ContentTypeJSON); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	p.log.Info("saved bundle", slog.String("key", archiveKey))

	return nil
}

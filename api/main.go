package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katseye-news/backend/internal/cache"
	"github.com/katseye-news/backend/internal/config"
	"github.com/katseye-news/backend/internal/logger"
	"github.com/katseye-news/backend/internal/models"
	"github.com/katseye-news/backend/internal/storage"
)

const version = "1.0.0"

// responseCacheCapacity bounds the read-through cache: latest.json plus a
// handful of recently requested archive dates.
const responseCacheCapacity = 64

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	// Storage is optional on the read path. Without it every request is
	// answered from the built-in demo bundle.
	var store objectGetter
	if cfg.Endpoint != "" && cfg.AccessKey != "" && cfg.SecretKey != "" {
		client, err := storage.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, log)
		if err != nil {
			log.Error("init object store", slog.Any("err", err))
			os.Exit(1)
		}
		store = client
	} else {
		log.Warn("object store not configured, serving demo data")
	}

	srv := &server{
		log:   log,
		cfg:   cfg,
		store: store,
		cache: cache.New(responseCacheCapacity, cfg.CacheTTL),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Get("/api/status", srv.handleStatus)
	r.Get("/api/news", srv.handleLatest)
	r.Get("/api/news/archive/{date}", srv.handleArchive)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type objectGetter interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

type server struct {
	log   *slog.Logger
	cfg   *config.API
	store objectGetter
	cache *cache.Cache
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleLatest serves the newest bundle. Absent data, an unreachable store or
// no store at all degrade to the demo bundle; this path never errors.
func (s *server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if payload, ok := s.fetch(r.Context(), storage.LatestKey); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	writeJSON(w, http.StatusOK, models.DemoBundle(time.Now()))
}

// handleArchive serves one archived bundle by UTC date. Missing dates are a
// plain 404, with no demo fallback.
func (s *server) handleArchive(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	key, ok := storage.ArchiveKeyForDate(date)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "invalid date, expected YYYY-MM-DD"})
		return
	}

	if payload, ok := s.fetch(r.Context(), key); ok {
		writeRawJSON(w, http.StatusOK, payload)
		return
	}

	writeJSON(w, http.StatusNotFound, errorResponse{Error: "no archived news for " + date})
}

// fetch reads a key through the response cache with a bounded storage timeout.
// Any storage failure is logged and reported as a miss, never propagated.
func (s *server) fetch(ctx context.Context, key string) ([]byte, bool) {
	if payload, ok := s.cache.Get(key); ok {
		return payload, true
	}
	if s.store == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	payload, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("storage read failed", slog.String("key", key), slog.Any("err", err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	s.cache.Set(key, payload)
	return payload, true
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"service":            "katseye-news",
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
		"storage_configured": s.store != nil,
	})
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version,
		"bucket":  s.cfg.Bucket,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}

func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

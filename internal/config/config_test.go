package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katseye-news/backend/internal/config"
)

func setWorkerEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GREP_API_URL", "https://api.grep.ing")
	t.Setenv("GREP_API_TOKEN", "secret")
	t.Setenv("MINIO_ENDPOINT", "https://minio.example.com")
	t.Setenv("ACCESS_KEY", "ak")
	t.Setenv("SECRET_KEY", "sk")
}

func TestLoadWorkerDefaults(t *testing.T) {
	setWorkerEnv(t)
	t.Setenv("NEWS_BUCKET", "")
	t.Setenv("GREP_POLL_INTERVAL", "")
	t.Setenv("GREP_POLL_ATTEMPTS", "")
	t.Setenv("WORKER_CRON", "")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, "https://api.grep.ing", cfg.ResearchURL)
	require.Equal(t, "secret", cfg.ResearchToken)
	require.Equal(t, "katseye-news", cfg.Bucket)
	require.Equal(t, "deep", cfg.Depth)
	require.Equal(t, "general", cfg.Approach)
	require.Equal(t, "katseye-news-aggregator", cfg.ExpertID)
	require.Equal(t, config.DefaultQuestion, cfg.Question)
	require.Equal(t, 10*time.Second, cfg.PollInterval)
	require.Equal(t, 90, cfg.PollAttempts)
	require.Empty(t, cfg.CronSpec)
}

func TestLoadWorkerOverrides(t *testing.T) {
	setWorkerEnv(t)
	t.Setenv("NEWS_BUCKET", "custom-bucket")
	t.Setenv("RESEARCH_DEPTH", "ultra_deep")
	t.Setenv("RESEARCH_QUESTION", "what happened today?")
	t.Setenv("GREP_POLL_INTERVAL", "2s")
	t.Setenv("GREP_POLL_ATTEMPTS", "30")
	t.Setenv("WORKER_CRON", "0 6 * * *")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, "custom-bucket", cfg.Bucket)
	require.Equal(t, "ultra_deep", cfg.Depth)
	require.Equal(t, "what happened today?", cfg.Question)
	require.Equal(t, 2*time.Second, cfg.PollInterval)
	require.Equal(t, 30, cfg.PollAttempts)
	require.Equal(t, "0 6 * * *", cfg.CronSpec)
}

func TestLoadWorkerMissingRequired(t *testing.T) {
	keys := []string{"GREP_API_URL", "GREP_API_TOKEN", "MINIO_ENDPOINT", "ACCESS_KEY", "SECRET_KEY"}

	for _, missing := range keys {
		t.Run(missing, func(t *testing.T) {
			setWorkerEnv(t)
			t.Setenv(missing, "")

			_, err := config.LoadWorker()
			require.Error(t, err)
			require.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadWorkerRejectsBadDepth(t *testing.T) {
	setWorkerEnv(t)
	t.Setenv("RESEARCH_DEPTH", "shallow")

	_, err := config.LoadWorker()
	require.Error(t, err)
}

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("ACCESS_KEY", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("API_BIND_ADDR", "")
	t.Setenv("API_CACHE_TTL", "")
	t.Setenv("API_STORAGE_TIMEOUT", "")

	// Storage is optional on the read path.
	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, time.Minute, cfg.CacheTTL)
	require.Equal(t, 10*time.Second, cfg.ReadTimeout)
	require.Empty(t, cfg.Endpoint)
	require.Equal(t, "katseye-news", cfg.Bucket)
}

func TestLoadAPIOverrides(t *testing.T) {
	t.Setenv("API_BIND_ADDR", ":9090")
	t.Setenv("API_CACHE_TTL", "5s")
	t.Setenv("API_STORAGE_TIMEOUT", "3s")
	t.Setenv("MINIO_ENDPOINT", "http://localhost:9000")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.BindAddr)
	require.Equal(t, 5*time.Second, cfg.CacheTTL)
	require.Equal(t, 3*time.Second, cfg.ReadTimeout)
	require.Equal(t, "http://localhost:9000", cfg.Endpoint)
}

func TestLoadRetention(t *testing.T) {
	setWorkerEnv(t)
	t.Setenv("RETENTION_INTERVAL", "12h")
	t.Setenv("RETENTION_MAX_AGE", "240h")

	cfg, err := config.LoadRetention()
	require.NoError(t, err)

	require.Equal(t, 12*time.Hour, cfg.Interval)
	require.Equal(t, 240*time.Hour, cfg.MaxAge)
	require.Equal(t, "https://minio.example.com", cfg.Endpoint)
}

func TestLoadSeedRequiresStorage(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("ACCESS_KEY", "ak")
	t.Setenv("SECRET_KEY", "sk")

	_, err := config.LoadSeed()
	require.Error(t, err)
}

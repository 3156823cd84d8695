package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultQuestion drives the daily research run unless RESEARCH_QUESTION overrides it.
const DefaultQuestion = `What are the latest news, trending topics, social media moments, and upcoming events for KATSEYE (the K-pop group formed through Netflix's Pop Star Academy)?

Focus on:
- Recent music releases, chart performance, streaming milestones
- Social media updates from members (Daniela, Lara, Manon, Megan, Sophia, Yoonchae)
- TV appearances, interviews, variety shows
- Concert announcements, tour dates
- Fan community highlights

Return structured data with headlines, summaries, categories (music/social/appearance/fan/industry), source names, and relevance scores (1-10).`

// Storage contains object store parameters shared by every service.
// The write path requires all of Endpoint, AccessKey and SecretKey; the read
// path treats them as optional and degrades to demo data when absent.
type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Worker holds configuration for the research -> extract -> publish job.
type Worker struct {
	Storage
	ResearchURL   string
	ResearchToken string
	Question      string
	Depth         string
	Approach      string
	ExpertID      string
	PollInterval  time.Duration
	PollAttempts  int
	CronSpec      string // empty means run once and exit
}

// API describes HTTP-layer configuration.
type API struct {
	Storage
	BindAddr    string
	CacheTTL    time.Duration
	ReadTimeout time.Duration
}

// Retention configures the archive cleanup loop.
type Retention struct {
	Storage
	Interval time.Duration
	MaxAge   time.Duration
}

// LoadWorker builds a Worker config from environment variables. All research
// and storage connection parameters are required: a missing one aborts the
// run before any network call is made.
func LoadWorker() (*Worker, error) {
	storage, err := requireStorage()
	if err != nil {
		return nil, err
	}

	c := &Worker{
		Storage:       *storage,
		ResearchURL:   os.Getenv("GREP_API_URL"),
		ResearchToken: os.Getenv("GREP_API_TOKEN"),
		Question:      getEnv("RESEARCH_QUESTION", DefaultQuestion),
		Depth:         getEnv("RESEARCH_DEPTH", "deep"),
		Approach:      getEnv("RESEARCH_APPROACH", "general"),
		ExpertID:      getEnv("RESEARCH_EXPERT_ID", "katseye-news-aggregator"),
		PollInterval:  getDuration("GREP_POLL_INTERVAL", "10s"),
		PollAttempts:  getInt("GREP_POLL_ATTEMPTS", 90),
		CronSpec:      os.Getenv("WORKER_CRON"),
	}

	if c.ResearchURL == "" {
		return nil, fmt.Errorf("GREP_API_URL must be set")
	}
	if c.ResearchToken == "" {
		return nil, fmt.Errorf("GREP_API_TOKEN must be set")
	}
	if c.Depth != "deep" && c.Depth != "ultra_deep" {
		return nil, fmt.Errorf("RESEARCH_DEPTH must be deep or ultra_deep")
	}
	if c.PollInterval <= 0 {
		return nil, fmt.Errorf("GREP_POLL_INTERVAL must be positive")
	}
	if c.PollAttempts <= 0 {
		return nil, fmt.Errorf("GREP_POLL_ATTEMPTS must be positive")
	}

	return c, nil
}

// LoadAPI builds an API config from environment variables. Storage parameters
// are optional here: without them every read serves the demo bundle.
func LoadAPI() (*API, error) {
	c := &API{
		Storage:     optionalStorage(),
		BindAddr:    getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		CacheTTL:    getDuration("API_CACHE_TTL", "60s"),
		ReadTimeout: getDuration("API_STORAGE_TIMEOUT", "10s"),
	}

	if c.CacheTTL < 0 {
		return nil, fmt.Errorf("API_CACHE_TTL cannot be negative")
	}
	if c.ReadTimeout <= 0 {
		return nil, fmt.Errorf("API_STORAGE_TIMEOUT must be positive")
	}

	return c, nil
}

// LoadRetention builds a Retention config from environment variables.
func LoadRetention() (*Retention, error) {
	storage, err := requireStorage()
	if err != nil {
		return nil, err
	}

	c := &Retention{
		Storage:  *storage,
		Interval: getDuration("RETENTION_INTERVAL", "24h"),
		MaxAge:   getDuration("RETENTION_MAX_AGE", "720h"),
	}

	if c.Interval <= 0 {
		return nil, fmt.Errorf("RETENTION_INTERVAL must be positive")
	}
	if c.MaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_MAX_AGE must be positive")
	}

	return c, nil
}

// LoadSeed builds storage config for the one-shot seed job.
func LoadSeed() (*Storage, error) {
	return requireStorage()
}

func requireStorage() (*Storage, error) {
	s := optionalStorage()
	if s.Endpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT must be set")
	}
	if s.AccessKey == "" {
		return nil, fmt.Errorf("ACCESS_KEY must be set")
	}
	if s.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must be set")
	}
	return &s, nil
}

func optionalStorage() Storage {
	return Storage{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("ACCESS_KEY"),
		SecretKey: os.Getenv("SECRET_KEY"),
		Bucket:    getEnv("NEWS_BUCKET", "katseye-news"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

package research

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrPollTimeout marks a run whose polling budget ran out before the service
// reported a terminal status.
var ErrPollTimeout = errors.New("research job did not reach a terminal status")

// ServiceError carries a failure reported by the research service, either a
// failed job or a non-success HTTP response.
type ServiceError struct {
	JobID      string
	StatusCode int
	Payload    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("research service returned %d: %s", e.StatusCode, e.Payload)
	}
	return fmt.Sprintf("research job %s failed: %s", e.JobID, e.Payload)
}

// SubmitRequest is the body of a research submission.
type SubmitRequest struct {
	Question   string         `json:"question"`
	Depth      string         `json:"depth"`
	Approach   string         `json:"approach"`
	ExpertID   string         `json:"expert_id"`
	JSONSchema map[string]any `json:"json_schema,omitempty"`
}

// Client talks to the Grep research API: one submission, then status polls
// until the job is terminal.
type Client struct {
	httpc    *http.Client
	baseURL  string
	token    string
	interval time.Duration
	attempts int
	log      *slog.Logger
}

// New builds a research client. Endpoint and token are mandatory connection
// parameters; missing ones fail here, before any network call.
func New(baseURL, token string, interval time.Duration, attempts int, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("research endpoint URL must be set")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("research auth token must be set")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if attempts <= 0 {
		return nil, fmt.Errorf("poll attempt budget must be positive")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		httpc:    &http.Client{Timeout: 30 * time.Second},
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		interval: interval,
		attempts: attempts,
		log:      logger,
	}, nil
}

// Submit starts a research job and returns its id.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal submit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/grep/research", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build submit request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("submit research: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ServiceError{StatusCode: resp.StatusCode, Payload: readBody(resp.Body)}
	}

	var parsed struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode submit response: %w", err)
	}
	if parsed.JobID == "" {
		return "", fmt.Errorf("submit response contained no job_id")
	}

	c.log.Info("research job started", slog.String("job_id", parsed.JobID))
	return parsed.JobID, nil
}

// Await polls the job at the configured interval until it is terminal.
// A failed job or non-success response surfaces as *ServiceError; an
// exhausted attempt budget surfaces as ErrPollTimeout. Non-terminal statuses
// never yield partial results. The sleep between polls honours ctx, so a
// shutdown signal aborts the run cleanly.
func (c *Client) Await(ctx context.Context, jobID string) (*Job, error) {
	for attempt := 1; attempt <= c.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.interval):
		}

		job, raw, err := c.fetch(ctx, jobID)
		if err != nil {
			return nil, err
		}

		c.log.Info("research poll",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.attempts),
			slog.String("status", string(job.Status)),
		)

		switch job.Status {
		case StatusComplete:
			return job, nil
		case StatusFailed:
			return nil, &ServiceError{JobID: jobID, Payload: string(raw)}
		}
	}

	return nil, fmt.Errorf("job %s after %d polls: %w", jobID, c.attempts, ErrPollTimeout)
}

func (c *Client) fetch(ctx context.Context, jobID string) (*Job, []byte, error) {
	url := fmt.Sprintf("%s/grep/research/%s?include_check_results=true", c.baseURL, jobID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build status request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("poll research job %s: %w", jobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &ServiceError{JobID: jobID, StatusCode: resp.StatusCode, Payload: readBody(resp.Body)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("read status response for job %s: %w", jobID, err)
	}

	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, nil, fmt.Errorf("decode status response for job %s: %w", jobID, err)
	}
	if job.JobID == "" {
		job.JobID = jobID
	}

	return &job, raw, nil
}

func readBody(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(data))
}

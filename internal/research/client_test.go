package research_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katseye-news/backend/internal/research"
)

const testInterval = time.Millisecond

func newClient(t *testing.T, baseURL string, attempts int) *research.Client {
	t.Helper()
	c, err := research.New(baseURL, "test-token", testInterval, attempts, nil)
	require.NoError(t, err)
	return c
}

func TestNewRejectsMissingConnectionParams(t *testing.T) {
	_, err := research.New("", "token", testInterval, 1, nil)
	require.Error(t, err)

	_, err = research.New("http://grep", "", testInterval, 1, nil)
	require.Error(t, err)

	_, err = research.New("http://grep", "token", 0, 1, nil)
	require.Error(t, err)

	_, err = research.New("http://grep", "token", testInterval, 0, nil)
	require.Error(t, err)
}

func TestSubmit(t *testing.T) {
	var gotAuth string
	var gotBody research.SubmitRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/grep/research", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"job_id": "job-42"})
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5)
	jobID, err := client.Submit(context.Background(), research.SubmitRequest{
		Question:   "what's new",
		Depth:      "deep",
		Approach:   "general",
		ExpertID:   "katseye-news-aggregator",
		JSONSchema: research.NewsSchema(),
	})

	require.NoError(t, err)
	require.Equal(t, "job-42", jobID)
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "what's new", gotBody.Question)
	require.Equal(t, "deep", gotBody.Depth)
	require.NotNil(t, gotBody.JSONSchema)
}

func TestSubmitNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5)
	_, err := client.Submit(context.Background(), research.SubmitRequest{})

	var svcErr *research.ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusForbidden, svcErr.StatusCode)
}

func TestAwaitCompletes(t *testing.T) {
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/grep/research/job-1", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("include_check_results"))

		status := "running"
		if polls.Add(1) >= 3 {
			status = "complete"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":       status,
			"final_report": "done",
		})
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 10)
	job, err := client.Await(context.Background(), "job-1")

	require.NoError(t, err)
	require.Equal(t, research.StatusComplete, job.Status)
	require.Equal(t, "job-1", job.JobID)
	require.Equal(t, "done", job.FinalReport)
	require.Equal(t, int32(3), polls.Load())
}

func TestAwaitFailedJobStopsPolling(t *testing.T) {
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := "running"
		if polls.Add(1) >= 3 {
			status = "failed"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": status})
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 90)
	_, err := client.Await(context.Background(), "job-1")

	var svcErr *research.ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, "job-1", svcErr.JobID)
	// Aborts after exactly the poll that observed the failure.
	require.Equal(t, int32(3), polls.Load())
}

func TestAwaitExhaustsBudget(t *testing.T) {
	var polls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "pending"})
	}))
	defer srv.Close()

	const attempts = 7
	client := newClient(t, srv.URL, attempts)
	_, err := client.Await(context.Background(), "job-1")

	require.ErrorIs(t, err, research.ErrPollTimeout)
	require.Equal(t, int32(attempts), polls.Load())
}

func TestAwaitHonoursContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "running"})
	}))
	defer srv.Close()

	client, err := research.New(srv.URL, "token", time.Hour, 5, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Await(ctx, "job-1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestAwaitSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5)
	_, err := client.Await(context.Background(), "job-1")

	var svcErr *research.ServiceError
	require.True(t, errors.As(err, &svcErr))
	require.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}

func TestStatusTerminal(t *testing.T) {
	require.True(t, research.StatusComplete.Terminal())
	require.True(t, research.StatusFailed.Terminal())
	require.True(t, research.StatusTimeout.Terminal())
	require.False(t, research.StatusPending.Terminal())
	require.False(t, research.StatusRunning.Terminal())
}

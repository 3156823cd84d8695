package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katseye-news/backend/internal/config"
	"github.com/katseye-news/backend/internal/models"
	"github.com/katseye-news/backend/internal/research"
)

type stubRunner struct {
	job       *research.Job
	submitErr error
	awaitErr  error
	submits   int
	awaits    int
}

func (s *stubRunner) Submit(context.Context, research.SubmitRequest) (string, error) {
	s.submits++
	if s.submitErr != nil {
		return "", s.submitErr
	}
	return "job-1", nil
}

func (s *stubRunner) Await(context.Context, string) (*research.Job, error) {
	s.awaits++
	if s.awaitErr != nil {
		return nil, s.awaitErr
	}
	return s.job, nil
}

type stubPublisher struct {
	bundle *models.NewsBundle
	jobID  string
	err    error
}

func (s *stubPublisher) Publish(_ context.Context, bundle models.NewsBundle, jobID string) error {
	if s.err != nil {
		return s.err
	}
	s.bundle = &bundle
	s.jobID = jobID
	return nil
}

func testWorkerCfg() *config.Worker {
	return &config.Worker{
		ResearchURL:   "http://grep.test",
		ResearchToken: "token",
		Question:      "what's new",
		Depth:         "deep",
		Approach:      "general",
		ExpertID:      "katseye-news-aggregator",
		PollInterval:  time.Millisecond,
		PollAttempts:  3,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOncePublishesExtractedBundle(t *testing.T) {
	runner := &stubRunner{job: &research.Job{
		JobID:  "job-1",
		Status: research.StatusComplete,
		CheckResults: []research.CheckResult{
			{Passed: true, CheckName: "Chart update", Answer: strings.Repeat("a", 150)},
		},
	}}
	pub := &stubPublisher{}

	err := runOnce(context.Background(), discardLogger(), testWorkerCfg(), runner, pub)
	require.NoError(t, err)

	require.Equal(t, 1, runner.submits)
	require.Equal(t, 1, runner.awaits)
	require.NotNil(t, pub.bundle)
	require.Equal(t, "job-1", pub.jobID)
	require.Len(t, pub.bundle.NewsItems, 1)
	require.Equal(t, 6, pub.bundle.NewsItems[0].RelevanceScore)
}

func TestRunOnceSubmitFailureSkipsPollAndPublish(t *testing.T) {
	runner := &stubRunner{submitErr: errors.New("boom")}
	pub := &stubPublisher{}

	err := runOnce(context.Background(), discardLogger(), testWorkerCfg(), runner, pub)
	require.Error(t, err)
	require.Zero(t, runner.awaits)
	require.Nil(t, pub.bundle)
}

func TestRunOnceServiceFailureSkipsPublish(t *testing.T) {
	runner := &stubRunner{awaitErr: &research.ServiceError{JobID: "job-1", Payload: "failed"}}
	pub := &stubPublisher{}

	err := runOnce(context.Background(), discardLogger(), testWorkerCfg(), runner, pub)

	var svcErr *research.ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Nil(t, pub.bundle)
}

func TestRunOncePollTimeoutSkipsPublish(t *testing.T) {
	runner := &stubRunner{awaitErr: research.ErrPollTimeout}
	pub := &stubPublisher{}

	err := runOnce(context.Background(), discardLogger(), testWorkerCfg(), runner, pub)
	require.ErrorIs(t, err, research.ErrPollTimeout)
	require.Nil(t, pub.bundle)
}

func TestRunOncePublishFailureSurfaces(t *testing.T) {
	runner := &stubRunner{job: &research.Job{Status: research.StatusComplete, FinalReport: "Big news"}}
	pub := &stubPublisher{err: errors.New("storage rejected write")}

	err := runOnce(context.Background(), discardLogger(), testWorkerCfg(), runner, pub)
	require.Error(t, err)
}

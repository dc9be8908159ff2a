package notifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amishk599/jobfit/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSummary() model.RunSummary {
	return model.RunSummary{
		ResumeVersion: "v1",
		Ingested:      12,
		Duplicates:    2,
		Parsed:        10,
		Vectorized:    10,
		Ranked:        9,
		Failed:        1,
		TopJobs: []model.JobScore{
			{Rank: 1, CompositeScore: 0.9123, Company: "Acme", Title: "Data Engineer", URL: "https://example.com/1"},
			{Rank: 2, CompositeScore: 0.8541, Company: "Globex", Title: "Analyst"},
		},
		Duration: 95 * time.Second,
	}
}

func TestSlackNotifier_SendsSummary(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := n.NotifyRun(context.Background(), sampleSummary()); err != nil {
		t.Fatalf("NotifyRun() = %v, want nil", err)
	}

	var payload slackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	// header + 2 summary sections + 2 job sections + divider.
	if len(payload.Blocks) != 6 {
		t.Fatalf("got %d blocks, want 6", len(payload.Blocks))
	}

	header := payload.Blocks[0]
	if header.Type != "header" || !strings.Contains(header.Text.Text, "9 ranked, 1 failed") {
		t.Errorf("header = %+v, want ranked/failed counts", header)
	}

	versionField := payload.Blocks[1].Fields[0]
	if versionField.Text != "*Resume version:*\nv1" {
		t.Errorf("version field = %q", versionField.Text)
	}

	jobBlock := payload.Blocks[3]
	if !strings.Contains(jobBlock.Text.Text, "Acme") ||
		!strings.Contains(jobBlock.Text.Text, "0.9123") ||
		!strings.Contains(jobBlock.Text.Text, "https://example.com/1") {
		t.Errorf("job block = %q, want company, score, and link", jobBlock.Text.Text)
	}

	// Job without a URL gets no link line.
	if strings.Contains(payload.Blocks[4].Text.Text, "View posting") {
		t.Errorf("job block without URL = %q, want no link", payload.Blocks[4].Text.Text)
	}

	if payload.Blocks[5].Type != "divider" {
		t.Errorf("last block = %q, want divider", payload.Blocks[5].Type)
	}
}

func TestSlackNotifier_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := calls.Add(1)
		if c == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
		} else {
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := n.NotifyRun(context.Background(), sampleSummary()); err != nil {
		t.Fatalf("expected nil after retry, got %v", err)
	}
	if c := calls.Load(); c != 2 {
		t.Errorf("expected 2 HTTP calls (initial + retry), got %d", c)
	}
}

func TestSlackNotifier_RateLimitRetryFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := n.NotifyRun(context.Background(), sampleSummary()); err == nil {
		t.Error("expected error when retry is also rate limited")
	}
}

func TestSlackNotifier_SlackReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := n.NotifyRun(context.Background(), sampleSummary()); err == nil {
		t.Error("expected error on 500, got nil")
	}
}

func TestSlackNotifier_ContextCanceledDuringRetryWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	start := time.Now()
	err := n.NotifyRun(ctx, sampleSummary())
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancelled wait took %v, should return promptly", elapsed)
	}
}

func TestSendTestSummary(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL, srv.Client(), discardLogger())
	if err := SendTestSummary(context.Background(), n); err != nil {
		t.Fatalf("SendTestSummary() = %v, want nil", err)
	}
	if !strings.Contains(string(body), "JobFit Test") {
		t.Error("test summary payload missing canned company name")
	}
}

func TestSlackNotifier_Name(t *testing.T) {
	if got := NewSlackNotifier("", nil, discardLogger()).Name(); got != "slack" {
		t.Errorf("Name() = %q, want slack", got)
	}
}

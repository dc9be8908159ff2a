package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/amishk599/jobfit/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts the run summary to a Slack channel via Incoming
// Webhooks, one Block Kit message per run.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts run summaries to Slack.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// NotifyRun sends one summary message. A 429 from Slack is retried once
// after the advertised Retry-After.
func (s *SlackNotifier) NotifyRun(ctx context.Context, summary model.RunSummary) error {
	body, err := json.Marshal(buildPayload(summary))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	status, retryAfter, err := s.post(ctx, body)
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}

	if status == http.StatusTooManyRequests {
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		s.logger.Warn("slack rate limited, retrying", "delay", retryAfter)
		if err := sleepCtx(ctx, retryAfter); err != nil {
			return err
		}

		status, _, err = s.post(ctx, body)
		if err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", status)
		}
		s.logger.Info("slack summary sent", "ranked", summary.Ranked, "retried", true)
		return nil
	}

	if status != http.StatusOK {
		return fmt.Errorf("slack returned %d", status)
	}
	s.logger.Info("slack summary sent", "ranked", summary.Ranked, "top_jobs", len(summary.TopJobs))
	return nil
}

// Name identifies this notifier in config and logs.
func (s *SlackNotifier) Name() string { return "slack" }

func (s *SlackNotifier) post(ctx context.Context, body []byte) (status int, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs > 0 {
		retryAfter = time.Duration(secs) * time.Second
	}
	return resp.StatusCode, retryAfter, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func buildPayload(summary model.RunSummary) slackPayload {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{
				Type: "plain_text",
				Text: fmt.Sprintf("📊 Job ranking run: %d ranked, %d failed", summary.Ranked, summary.Failed),
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Resume version:*\n" + summary.ResumeVersion},
				{Type: "mrkdwn", Text: "*Duration:*\n" + summary.Duration.Round(time.Second).String()},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Ingested:*\n%d (%d duplicates)", summary.Ingested, summary.Duplicates)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Parsed / vectorized:*\n%d / %d", summary.Parsed, summary.Vectorized)},
			},
		},
	}

	for _, job := range summary.TopJobs {
		text := fmt.Sprintf("*%d. %s: %s*  (%.4f)", job.Rank, job.Company, job.Title, job.CompositeScore)
		if job.URL != "" {
			text += fmt.Sprintf("\n<%s|View posting>", job.URL)
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: text},
		})
	}

	blocks = append(blocks, slackBlock{Type: "divider"})
	return slackPayload{Blocks: blocks}
}

// SendTestSummary pushes a canned run summary through the notifier to
// verify the integration works.
func SendTestSummary(ctx context.Context, n model.Notifier) error {
	summary := model.RunSummary{
		ResumeVersion: "test",
		Ingested:      3,
		Parsed:        3,
		Vectorized:    3,
		Ranked:        3,
		TopJobs: []model.JobScore{
			{
				Rank:           1,
				CompositeScore: 0.9123,
				Company:        "JobFit Test",
				Title:          "Notification Check",
				URL:            "https://example.com/jobs/1",
			},
		},
		Duration:   90 * time.Second,
		FinishedAt: time.Now(),
	}
	return n.NotifyRun(ctx, summary)
}

package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/autoapply/internal/model"
)

// maxListed caps the per-application lines in one Slack message.
const maxListed = 20

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts a batch summary to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// NewSlackNotifier returns a notifier that posts one message per batch.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Notify sends the whole batch as a single Block Kit message. A 429 is
// retried once after the Retry-After delay.
func (s *SlackNotifier) Notify(apps []model.Application) error {
	if len(apps) == 0 {
		return nil
	}

	body, err := json.Marshal(buildPayload(apps))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	err = s.post(body)
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		s.logger.Warn("slack rate limited, retrying", "retry_after", httpErr.RetryAfter)
		s.sleep(httpErr.RetryAfter)
		if err = s.post(body); err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
		s.logger.Info("slack summary sent", "applications", len(apps), "retried", true)
		return nil
	}
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}

	s.logger.Info("slack summary sent", "applications", len(apps))
	return nil
}

func (s *SlackNotifier) post(body []byte) error {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	httpErr := &model.HTTPError{StatusCode: resp.StatusCode}
	if resp.StatusCode == http.StatusTooManyRequests {
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		if secs <= 0 {
			secs = 1
		}
		httpErr.RetryAfter = time.Duration(secs) * time.Second
	}
	return httpErr
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

// SendTestMessage sends SampleBatch to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	return n.Notify(SampleBatch(time.Now()))
}

// SampleBatch is a canned two-application batch: one applied, one failed.
func SampleBatch(now time.Time) []model.Application {
	return []model.Application{
		{
			ID:             "app-test-1",
			JobTitle:       "Healthcare Operations Manager",
			Company:        "Autoapply Test",
			Location:       "Everywhere",
			Status:         model.StatusApplied,
			AppliedAt:      now,
			Customizations: []string{"Integration verified"},
			JobURL:         "https://careers.autoapplytest.com/job-1",
		},
		{
			ID:        "app-test-2",
			JobTitle:  "Clinical Services Manager",
			Company:   "Autoapply Test",
			Location:  "Everywhere",
			Status:    model.StatusFailed,
			AppliedAt: now,
			JobURL:    "https://careers.autoapplytest.com/job-2",
		},
	}
}

func statusIcon(s model.ApplicationStatus) string {
	switch s {
	case model.StatusApplied:
		return "✅"
	case model.StatusFailed:
		return "❌"
	default:
		return "⏳"
	}
}

func buildPayload(apps []model.Application) slackPayload {
	applied := model.CountApplied(apps)

	var lines []string
	for i, a := range apps {
		if i == maxListed {
			lines = append(lines, fmt.Sprintf("…and %d more", len(apps)-maxListed))
			break
		}
		lines = append(lines, fmt.Sprintf("%s <%s|%s> at %s (%s)", statusIcon(a.Status), a.JobURL, a.JobTitle, a.Company, a.Location))
	}

	return slackPayload{Blocks: []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: fmt.Sprintf("📨 Applications submitted: %d of %d", applied, len(apps))},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Applied:*\n" + strconv.Itoa(applied)},
				{Type: "mrkdwn", Text: "*Failed:*\n" + strconv.Itoa(len(apps)-applied)},
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: strings.Join(lines, "\n")},
		},
		{Type: "divider"},
	}}
}

package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mhalder/jobsift/internal/pipeline"
)

// Ensure SlackNotifier implements Notifier.
var _ Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts a run summary to a Slack channel via Incoming Webhooks.
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

// slackMessage is the minimal webhook payload.
type slackMessage struct {
	Text string `json:"text"`
}

// maxListedRows caps how many rows appear in one Slack message.
const maxListedRows = 10

// Notify posts one message summarizing the run. Nothing is sent when no
// rows were appended.
func (s *SlackNotifier) Notify(result *pipeline.Result) error {
	if result.Appended == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*jobsift*: appended %d new jobs (fetched %d, fresh %d)\n",
		result.Appended, result.Fetched, result.Fresh)

	for i, r := range result.Rows {
		if i == maxListedRows {
			fmt.Fprintf(&b, "… and %d more\n", len(result.Rows)-maxListedRows)
			break
		}
		line := fmt.Sprintf("• <%s|%s> at %s", r.URL, r.Title, r.Company)
		if r.FitScore != "" {
			line += fmt.Sprintf(" (fit %s/10)", r.FitScore)
		}
		b.WriteString(line + "\n")
	}

	return s.send(slackMessage{Text: b.String()})
}

func (s *SlackNotifier) send(msg slackMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/crop-advisor/internal/metrics"
	"github.com/donaldgifford/crop-advisor/pkg/advisor"
)

const (
	colorRed    = 0xE74C3C // transport
	colorOrange = 0xE67E22 // extraction
	colorYellow = 0xF1C40F // schema, unknown

	// Discord rejects embed field values longer than this.
	maxFieldLen = 1024
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendFallbackAlert posts the alert as a single Discord embed.
func (d *DiscordNotifier) SendFallbackAlert(ctx context.Context, alert *FallbackAlert) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(alert *FallbackAlert) discordEmbed {
	embed := discordEmbed{
		Title:       "Fallback recommendations served",
		Color:       failureColor(alert.FailureKind),
		Description: fmt.Sprintf("All %d attempts failed; the static crop set was returned.", alert.Attempts),
		Fields: []discordEmbedField{
			{Name: "Location", Value: orDash(alert.Location), Inline: true},
			{Name: "Soil", Value: orDash(alert.Soil), Inline: true},
			{Name: "Failure", Value: alert.FailureKind, Inline: true},
			{Name: "Attempts", Value: fmt.Sprintf("%d", alert.Attempts), Inline: true},
			{Name: "Fingerprint", Value: "`" + alert.Fingerprint + "`"},
		},
	}

	if alert.Error != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  "Last error",
			Value: truncate(alert.Error, maxFieldLen),
		})
	}

	if !alert.OccurredAt.IsZero() {
		embed.Timestamp = alert.OccurredAt.UTC().Format(time.RFC3339)
	}

	return embed
}

func failureColor(kind string) int {
	switch advisor.FailureKind(kind) {
	case advisor.FailureTransport:
		return colorRed
	case advisor.FailureExtraction:
		return colorOrange
	default:
		return colorYellow
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// SlackAlerter posts a rendered summary of the alert to a Slack incoming
// webhook. Recipients are not used; the webhook's channel is the audience.
type SlackAlerter struct {
	webhookURL string
}

func NewSlackAlerter(webhookURL string) *SlackAlerter {
	return &SlackAlerter{webhookURL: webhookURL}
}

func (s *SlackAlerter) Send(ctx context.Context, message AlertMessage) error {
	if s.webhookURL == "" {
		return ErrAlerterNotConfigured
	}

	payload := map[string]string{"text": renderSlackText(message)}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(requestBody))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "kestrel-webhook/1.0")

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return err
	}
	defer func() {
		if response.Body != nil {
			_ = response.Body.Close()
		}
	}()

	if response.StatusCode == http.StatusTooManyRequests {
		return ErrAlerterRateLimited
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: received non-2xx response code %d", ErrAlerterDropped, response.StatusCode)
	}

	return nil
}

func renderSlackText(message AlertMessage) string {
	var builder strings.Builder

	switch message.Event {
	case AlertEventMonitorDown:
		fmt.Fprintf(&builder, ":red_circle: *%s* is down (%s)", message.Monitor.Name, message.Monitor.Url)
		if message.Incident != nil && message.Incident.CauseSummary != "" {
			fmt.Fprintf(&builder, "\n> %s", message.Incident.CauseSummary)
		}
	case AlertEventMonitorRecovered:
		fmt.Fprintf(&builder, ":large_green_circle: *%s* recovered (%s)", message.Monitor.Name, message.Monitor.Url)
		if message.Incident != nil {
			fmt.Fprintf(&builder, "\n> down for %d seconds", message.Incident.DowntimeSeconds)
		}
	case AlertEventSlaBreach:
		fmt.Fprintf(&builder, ":warning: *%s* breached its SLA target", message.Monitor.Name)
		if message.Sla != nil {
			fmt.Fprintf(&builder, "\n> uptime %.4f%% against a %.2f%% target over the last 30 days", message.Sla.UptimePct, message.Sla.TargetPct)
		}
	default:
		fmt.Fprintf(&builder, "*%s*: %s", message.Monitor.Name, message.Event)
	}

	return builder.String()
}

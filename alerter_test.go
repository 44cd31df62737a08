package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func sampleAlertMessage() AlertMessage {
	return AlertMessage{
		Event:      AlertEventMonitorDown,
		OccurredAt: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		Monitor: AlertMonitor{
			ID:     "mon-1",
			Name:   "API",
			Url:    "https://api.example.com/health",
			Status: MonitorStateDown,
			UserID: "u-1",
		},
		Incident: &AlertIncident{
			ID:           "inc-1",
			StartedAt:    time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
			CauseSummary: "HTTP 503",
			SlaCounted:   true,
		},
		Recipients: []string{"owner@example.com"},
	}
}

func TestWebhookAlerter_Send(t *testing.T) {
	t.Run("Signs And Delivers", func(t *testing.T) {
		var receivedBody []byte
		var receivedSignature string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			receivedBody, _ = io.ReadAll(r.Body)
			receivedSignature = r.Header.Get("X-Signature")
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		alerter := NewWebhookAlerter(server.URL, "topsecret", map[string]string{"X-Custom": "yes"})
		if err := alerter.Send(context.Background(), sampleAlertMessage()); err != nil {
			t.Fatalf("sending alert: %v", err)
		}

		signer := hmac.New(sha256.New, []byte("topsecret"))
		signer.Write(receivedBody)
		expected := fmt.Sprintf("%x", signer.Sum(nil))
		if receivedSignature != expected {
			t.Errorf("Expected signature %s, got %s", expected, receivedSignature)
		}

		var decoded AlertMessage
		if err := json.Unmarshal(receivedBody, &decoded); err != nil {
			t.Fatalf("decoding delivered payload: %v", err)
		}
		if decoded.Event != AlertEventMonitorDown || decoded.Monitor.ID != "mon-1" {
			t.Errorf("Unexpected payload %+v", decoded)
		}
	})

	t.Run("Rate Limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		alerter := NewWebhookAlerter(server.URL, "", nil)
		if err := alerter.Send(context.Background(), sampleAlertMessage()); !errors.Is(err, ErrAlerterRateLimited) {
			t.Errorf("Expected ErrAlerterRateLimited, got %v", err)
		}
	})

	t.Run("Non-2xx Dropped", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		alerter := NewWebhookAlerter(server.URL, "", nil)
		if err := alerter.Send(context.Background(), sampleAlertMessage()); !errors.Is(err, ErrAlerterDropped) {
			t.Errorf("Expected ErrAlerterDropped, got %v", err)
		}
	})

	t.Run("Not Configured", func(t *testing.T) {
		alerter := NewWebhookAlerter("", "", nil)
		if err := alerter.Send(context.Background(), sampleAlertMessage()); !errors.Is(err, ErrAlerterNotConfigured) {
			t.Errorf("Expected ErrAlerterNotConfigured, got %v", err)
		}
	})
}

func TestSlackAlerter_RendersEvents(t *testing.T) {
	message := sampleAlertMessage()
	text := renderSlackText(message)
	if !strings.Contains(text, "API") || !strings.Contains(text, "down") {
		t.Errorf("Expected down summary mentioning the monitor, got %q", text)
	}
	if !strings.Contains(text, "HTTP 503") {
		t.Errorf("Expected the cause summary, got %q", text)
	}

	message.Event = AlertEventSlaBreach
	message.Incident = nil
	message.Sla = &SlaBreachStats{UptimePct: 99.01, TargetPct: 99.9}
	text = renderSlackText(message)
	if !strings.Contains(text, "99.0100") || !strings.Contains(text, "99.90") {
		t.Errorf("Expected breach percentages in summary, got %q", text)
	}
}

func TestEmailAlerter_SkipsWithoutRecipients(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	alerter := NewEmailAlerter(server.URL, "secret")

	message := sampleAlertMessage()
	message.Recipients = nil
	if err := alerter.Send(context.Background(), message); err != nil {
		t.Fatalf("sending without recipients: %v", err)
	}
	if called {
		t.Error("Expected no bridge call without recipients")
	}

	message.Recipients = []string{"owner@example.com"}
	if err := alerter.Send(context.Background(), message); err != nil {
		t.Fatalf("sending with recipients: %v", err)
	}
	if !called {
		t.Error("Expected bridge call with recipients")
	}
}

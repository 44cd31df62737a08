package main

import (
	"context"
	"errors"
	"time"

	"github.com/guregu/null/v5"
)

type AlertEvent string

const (
	AlertEventMonitorDown      AlertEvent = "monitor.down"
	AlertEventMonitorRecovered AlertEvent = "monitor.recovered"
	AlertEventSlaBreach        AlertEvent = "sla.breach"
)

type AlertMonitor struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Url      string      `json:"url"`
	Status   string      `json:"status"`
	TeamID   null.String `json:"team_id,omitempty"`
	UserID   string      `json:"user_id"`
	IsPublic bool        `json:"is_public"`
}

type AlertIncident struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	RecoveredAt     null.Time `json:"recovered_at"`
	DowntimeSeconds int64     `json:"downtime_seconds"`
	CauseSummary    string    `json:"cause_summary"`
	SlaCounted      bool      `json:"sla_counted"`
}

type SlaBreachStats struct {
	UptimePct       float64    `json:"uptime_pct"`
	DowntimeSeconds int64      `json:"downtime_seconds"`
	IncidentCount   int        `json:"incident_count"`
	MttrSeconds     null.Float `json:"mttr_seconds"`
	TargetPct       float64    `json:"target_pct"`
}

// AlertMessage is the payload handed to the transport layer. Incident is set
// for down/recovered events, Sla for breach events.
type AlertMessage struct {
	Event      AlertEvent      `json:"event"`
	OccurredAt time.Time       `json:"occurred_at"`
	Monitor    AlertMonitor    `json:"monitor"`
	Incident   *AlertIncident  `json:"incident,omitempty"`
	Sla        *SlaBreachStats `json:"sla,omitempty"`
	Recipients []string        `json:"recipients"`
}

// ErrAlerterNotConfigured is returned when an alerter operation is attempted
// but the alerter has not been properly configured or initialized.
var ErrAlerterNotConfigured = errors.New("alerter not configured")

// ErrAlerterRateLimited is returned when an alerter has been rate limited
// and cannot send additional alerts until the rate limit period has passed.
var ErrAlerterRateLimited = errors.New("alerter rate limited")

// ErrAlerterDropped is returned when an alert message cannot be successfully
// delivered, for example when a downstream webhook returns a non-2xx
// response.
var ErrAlerterDropped = errors.New("alerter message dropped")

// Alerter is a delivery sink for alert payloads. Delivery is fire-and-forget
// from the engine's point of view: a failed delivery never invalidates the
// check, incident or SLA data the alert was derived from.
type Alerter interface {
	Send(ctx context.Context, message AlertMessage) error
}

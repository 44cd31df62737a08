package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
)

// IncidentManager owns the incident ledger. All three operations are
// idempotent with respect to concurrent invocation: callers hold the
// per-monitor check lock, and the read-then-write inside a transaction closes
// the remaining gap, so at most one open incident can exist per monitor.
type IncidentManager struct {
	db             *sql.DB
	maxCauseLength int
}

type IncidentManagerOptions struct {
	Database       *sql.DB
	MaxCauseLength int
}

func NewIncidentManager(options IncidentManagerOptions) *IncidentManager {
	maxCauseLength := options.MaxCauseLength
	if maxCauseLength == 0 {
		maxCauseLength = 250
	}
	return &IncidentManager{db: options.Database, maxCauseLength: maxCauseLength}
}

// CauseSummary derives the incident cause from the triggering check, in
// priority order: HTTP status, then error code, then error message.
func (m *IncidentManager) CauseSummary(result CheckResult) string {
	var cause string
	switch {
	case result.StatusCode.Valid:
		cause = fmt.Sprintf("HTTP %d", result.StatusCode.Int64)
		if result.ErrorMessage.Valid {
			cause += ": " + result.ErrorMessage.String
		}
	case result.ErrorCode.Valid:
		cause = result.ErrorCode.String
		if result.ErrorMessage.Valid {
			cause += ": " + result.ErrorMessage.String
		}
	case result.ErrorMessage.Valid:
		cause = result.ErrorMessage.String
	default:
		cause = "check failed"
	}

	if len(cause) > m.maxCauseLength {
		cause = cause[:m.maxCauseLength]
	}
	return cause
}

const incidentColumns = `id, monitor_id, started_at, recovered_at, downtime_seconds, cause_summary, sla_counted`

func scanIncident(row interface{ Scan(...any) error }) (Incident, error) {
	var incident Incident
	err := row.Scan(&incident.ID, &incident.MonitorID, &incident.StartedAt, &incident.RecoveredAt,
		&incident.DowntimeSeconds, &incident.CauseSummary, &incident.SlaCounted)
	return incident, err
}

// Open creates an incident for the monitor unless one is already open, in
// which case the existing incident is returned and created is false. Only a
// freshly created incident should trigger outbound alerting.
func (m *IncidentManager) Open(ctx context.Context, monitorID string, causeSummary string, now time.Time) (Incident, bool, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return Incident{}, false, fmt.Errorf("beginning incident transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+incidentColumns+`
		FROM incidents
		WHERE monitor_id = ? AND recovered_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`, monitorID)

	existing, err := scanIncident(row)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Incident{}, false, fmt.Errorf("querying open incident: %w", err)
	}

	incident := Incident{
		ID:           uuid.NewString(),
		MonitorID:    monitorID,
		StartedAt:    now,
		CauseSummary: causeSummary,
		SlaCounted:   true,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO incidents (id, monitor_id, started_at, recovered_at, downtime_seconds, cause_summary, sla_counted)
		VALUES (?, ?, ?, NULL, 0, ?, TRUE)
	`, incident.ID, incident.MonitorID, incident.StartedAt, incident.CauseSummary)
	if err != nil {
		return Incident{}, false, fmt.Errorf("inserting incident: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Incident{}, false, fmt.Errorf("committing incident: %w", err)
	}

	return incident, true, nil
}

// Update refreshes the running downtime on every open incident so displayed
// downtime stays current during long outages. It never closes anything.
func (m *IncidentManager) Update(ctx context.Context, now time.Time) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("getting db connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `SELECT id, started_at FROM incidents WHERE recovered_at IS NULL`)
	if err != nil {
		return fmt.Errorf("querying open incidents: %w", err)
	}

	type openIncident struct {
		id        string
		startedAt time.Time
	}
	var open []openIncident
	for rows.Next() {
		var incident openIncident
		if err := rows.Scan(&incident.id, &incident.startedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning open incident: %w", err)
		}
		open = append(open, incident)
	}
	rows.Close()

	for _, incident := range open {
		downtime := int64(now.Sub(incident.startedAt).Seconds())
		if downtime < 0 {
			downtime = 0
		}
		_, err := conn.ExecContext(ctx, `UPDATE incidents SET downtime_seconds = ? WHERE id = ? AND recovered_at IS NULL`, downtime, incident.id)
		if err != nil {
			return fmt.Errorf("updating incident downtime: %w", err)
		}
	}

	return nil
}

// Resolve closes the most recent open incident for the monitor. A missing
// open incident is not an error: the incident may legitimately be gone by the
// time a recovery lands, in which case resolved is false.
func (m *IncidentManager) Resolve(ctx context.Context, monitorID string, now time.Time) (Incident, bool, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return Incident{}, false, fmt.Errorf("beginning incident transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+incidentColumns+`
		FROM incidents
		WHERE monitor_id = ? AND recovered_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`, monitorID)

	incident, err := scanIncident(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Incident{}, false, nil
		}
		return Incident{}, false, fmt.Errorf("querying open incident: %w", err)
	}

	downtime := int64(now.Sub(incident.StartedAt).Seconds())
	if downtime < 0 {
		downtime = 0
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE incidents SET recovered_at = ?, downtime_seconds = ? WHERE id = ?
	`, now, downtime, incident.ID)
	if err != nil {
		return Incident{}, false, fmt.Errorf("resolving incident: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Incident{}, false, fmt.Errorf("committing incident resolution: %w", err)
	}

	incident.RecoveredAt = null.NewTime(now, true)
	incident.DowntimeSeconds = downtime
	return incident, true, nil
}

// OpenIncidentCount reports the number of open incidents for a monitor. Used
// by tests asserting the at-most-one-open invariant.
func (m *IncidentManager) OpenIncidentCount(ctx context.Context, monitorID string) (int, error) {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("getting db connection: %w", err)
	}
	defer conn.Close()

	var count int
	err = conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM incidents WHERE monitor_id = ? AND recovered_at IS NULL
	`, monitorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting open incidents: %w", err)
	}

	return count, nil
}

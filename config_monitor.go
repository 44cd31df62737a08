package main

import (
	"github.com/guregu/null/v5"
)

// MonitorSeed is one monitor definition from monitor.yaml. Seeds are upserted
// into the store on boot; runtime state (health, counters, SLA snapshot) is
// owned by the store and never overwritten by re-seeding.
type MonitorSeed struct {
	ID              string      `yaml:"id"`
	Name            string      `yaml:"name"`
	Url             string      `yaml:"url"`
	OwnerUserID     string      `yaml:"owner_user_id"`
	TeamID          null.String `yaml:"team_id"`
	Paused          bool        `yaml:"paused"`
	IsPublic        bool        `yaml:"is_public"`
	IntervalMinutes int         `yaml:"interval_minutes"`
	AlertEmail      bool        `yaml:"alert_email" default:"true"`
	AlertSlack      bool        `yaml:"alert_slack"`
	AlertWebhook    bool        `yaml:"alert_webhook"`
}

type MonitorSeedConfig struct {
	Monitors []MonitorSeed `yaml:"monitors"`
}

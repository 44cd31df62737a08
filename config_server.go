package main

import "log/slog"

type ServerConfig struct {
	Server struct {
		Host string `yaml:"host" envconfig:"SERVER_HOST"`
		Port int    `yaml:"port" default:"8700" envconfig:"SERVER_PORT"`

		LogLevel slog.Level `yaml:"log_level"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path" default:"kestrel.db" envconfig:"DATABASE_PATH"`
	} `yaml:"database"`
	Lock struct {
		// RedisAddress empty means an in-process lock, which is only safe
		// when a single worker process is running.
		RedisAddress  string `yaml:"redis_address" envconfig:"LOCK_REDIS_ADDRESS"`
		RedisPassword string `yaml:"redis_password" envconfig:"LOCK_REDIS_PASSWORD"`
		RedisDB       int    `yaml:"redis_db" envconfig:"LOCK_REDIS_DB"`
		TTLSeconds    int    `yaml:"ttl_seconds" default:"55"`
	} `yaml:"lock"`
	TaskQueue struct {
		ChecksPriority struct {
			ProducerAddress string `yaml:"producer_address" default:"mem://checks_priority"`
			ConsumerAddress string `yaml:"consumer_address" default:"mem://checks_priority"`
		} `yaml:"checks_priority"`
		ChecksStandard struct {
			ProducerAddress string `yaml:"producer_address" default:"mem://checks_standard"`
			ConsumerAddress string `yaml:"consumer_address" default:"mem://checks_standard"`
		} `yaml:"checks_standard"`
		Sla struct {
			ProducerAddress string `yaml:"producer_address" default:"mem://sla_tasks"`
			ConsumerAddress string `yaml:"consumer_address" default:"mem://sla_tasks"`
		} `yaml:"sla"`
		Alerts struct {
			ProducerAddress string `yaml:"producer_address" default:"mem://alert_tasks"`
			ConsumerAddress string `yaml:"consumer_address" default:"mem://alert_tasks"`
		} `yaml:"alerts"`
	} `yaml:"task_queue"`
	Dispatch struct {
		BatchLimit         int `yaml:"batch_limit" default:"500"`
		MaxConcurrentRuns  int `yaml:"max_concurrent_runs" default:"10"`
		SlaSweepBatchLimit int `yaml:"sla_sweep_batch_limit" default:"1000"`
	} `yaml:"dispatch"`
	Prober struct {
		UserAgent             string `yaml:"user_agent" default:"kestrel-prober/1.0"`
		ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds" default:"10"`
		TotalTimeoutSeconds   int    `yaml:"total_timeout_seconds" default:"30"`
		MaxRedirects          int    `yaml:"max_redirects" default:"5"`
		MaxErrorLength        int    `yaml:"max_error_length" default:"250"`
	} `yaml:"prober"`
	Alerting struct {
		Webhook struct {
			Enabled    bool   `yaml:"enabled"`
			Url        string `yaml:"url"`
			HmacSecret string `yaml:"hmac_secret"`
		} `yaml:"webhook"`
		Slack struct {
			Enabled bool   `yaml:"enabled"`
			Url     string `yaml:"url"`
		} `yaml:"slack"`
		Email struct {
			Enabled    bool   `yaml:"enabled"`
			BridgeUrl  string `yaml:"bridge_url"`
			HmacSecret string `yaml:"hmac_secret"`
		} `yaml:"email"`
	} `yaml:"alerting"`
	Plans    PlanConfig    `yaml:"plans"`
	Accounts AccountConfig `yaml:"accounts"`
	Sentry   struct {
		Dsn                   string  `yaml:"dsn" envconfig:"SENTRY_DSN"`
		ErrorSampleRate       float64 `yaml:"error_sample_rate" default:"1.0"`
		TracesSampleRate      float64 `yaml:"traces_sample_rate" default:"1.0"`
		Debug                 bool    `yaml:"debug" default:"false"`
		TraceOutgoingRequests bool    `yaml:"trace_outgoing_requests" default:"false"`
	} `yaml:"sentry"`
}

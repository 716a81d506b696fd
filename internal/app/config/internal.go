package config

import "time"

type InternalConfig struct {
	App        App        `mapstructure:"app"`
	Harvest    Harvest    `mapstructure:"harvest"`
	Checkpoint Checkpoint `mapstructure:"checkpoint"`
	Publisher  Publisher  `mapstructure:"publisher"`
}

type App struct {
	Env                       string `mapstructure:"env"`
	Port                      string `mapstructure:"port"`
	Version                   string `mapstructure:"version"`
	EndpointPrefix            string `mapstructure:"endpoint_prefix"`
	MaxRequests               int    `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds int    `mapstructure:"max_time_requests_per_seconds"`
	ShutdownTimeout           int    `mapstructure:"shutdown_timeout"`
	// AdminAPIKey guards the admin routes; empty disables them
	AdminAPIKey string `mapstructure:"admin_api_key"`
}

// Harvest controls a single invocation of the orchestrator.
type Harvest struct {
	Deadline time.Duration `mapstructure:"deadline"`
	Workers  int           `mapstructure:"workers"`
	// RefineRatePerSecond caps refine dispatches; 0 means unlimited
	RefineRatePerSecond float64 `mapstructure:"refine_rate_per_second"`
	// MaxRefineAttempts abandons a course after that many failed refines; 0 retries forever
	MaxRefineAttempts int           `mapstructure:"max_refine_attempts"`
	CronSpec          string        `mapstructure:"cron_spec"`
	ScrapersFile      string        `mapstructure:"scrapers_file"`
	LockTTL           time.Duration `mapstructure:"lock_ttl"`
}

type Checkpoint struct {
	Backend  string        `mapstructure:"backend"`
	Dir      string        `mapstructure:"dir"`
	RedisTTL time.Duration `mapstructure:"redis_ttl"`
}

type Publisher struct {
	Enabled bool   `mapstructure:"enabled"`
	Bucket  string `mapstructure:"bucket"`
	Queue   string `mapstructure:"queue"`
}

package responses

import "time"

type ScraperSummary struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

type CheckpointSummary struct {
	ScraperID   string         `json:"scraper_id"`
	RunID       string         `json:"run_id"`
	TermCode    string         `json:"term_code"`
	CourseCount int            `json:"course_count"`
	Pending     []string       `json:"pending"`
	Attempts    map[string]int `json:"attempts,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type HarvestAccepted struct {
	RunID     string `json:"run_id"`
	ScraperID string `json:"scraper_id"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

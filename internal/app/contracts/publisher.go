package contracts

import (
	"context"
	"hyperschedule-service/internal/app/models"
	"time"
)

// ResultPublisher makes a finished harvest available to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, scraperID, runID string, result *models.ScraperResult) (string, error)
}

// HarvestEvent announces the outcome of one invocation.
type HarvestEvent struct {
	RunID       string        `json:"run_id"`
	ScraperID   string        `json:"scraper_id"`
	TermCode    string        `json:"term_code"`
	State       string        `json:"state"`
	CourseCount int           `json:"course_count"`
	Pending     int           `json:"pending"`
	Refined     int           `json:"refined"`
	Failed      int           `json:"failed"`
	ObjectKey   string        `json:"object_key,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
	FinishedAt  time.Time     `json:"finished_at"`
}

type HarvestNotifier interface {
	Notify(ctx context.Context, event HarvestEvent) error
}

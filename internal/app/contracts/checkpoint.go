package contracts

import (
	"context"
	"hyperschedule-service/internal/app/models"
)

// CheckpointStore persists refinement progress per scraper. Save replaces the
// whole record atomically; a concurrent Load sees the old or the new record,
// never a mix. Load returns a KindNotFound error when nothing is stored.
type CheckpointStore interface {
	Load(ctx context.Context, scraperID string) (*models.Checkpoint, error)
	Save(ctx context.Context, scraperID string, checkpoint *models.Checkpoint) error
	Delete(ctx context.Context, scraperID string) error
}

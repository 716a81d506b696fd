package checkpoint

import (
	"context"
	"fmt"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"time"
)

// redisStore keeps one JSON record per scraper. A single SET replaces it
// atomically.
type redisStore struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
}

// NewRedisStore builds a store on the redis repository. A ttl of zero keeps
// checkpoints until they are deleted.
func NewRedisStore(redisRepo contracts.RedisRepository, ttl time.Duration) contracts.CheckpointStore {
	return &redisStore{redisRepo: redisRepo, ttl: ttl}
}

func redisKey(scraperID string) string {
	return fmt.Sprintf(constvars.RedisCheckpointKeyFormat, scraperID)
}

func (s *redisStore) Load(ctx context.Context, scraperID string) (*models.Checkpoint, error) {
	raw, err := s.redisRepo.Get(ctx, redisKey(scraperID))
	if err != nil {
		return nil, exceptions.ErrCheckpointLoad(err, scraperID)
	}
	if raw == "" {
		return nil, exceptions.ErrCheckpointNotFound(scraperID)
	}
	return decode(scraperID, []byte(raw))
}

func (s *redisStore) Save(ctx context.Context, scraperID string, checkpoint *models.Checkpoint) error {
	data, err := encode(scraperID, checkpoint)
	if err != nil {
		return err
	}
	if err := s.redisRepo.SetRaw(ctx, redisKey(scraperID), data, s.ttl); err != nil {
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, scraperID string) error {
	if err := s.redisRepo.Delete(ctx, redisKey(scraperID)); err != nil {
		return exceptions.ErrCheckpointDelete(err, scraperID)
	}
	return nil
}

package checkpoint

import (
	"context"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/exceptions"
	"sync"
)

// MemoryStore holds checkpoints in process memory. It counts writes so callers
// can tell whether an invocation persisted anything.
type MemoryStore struct {
	mu          sync.Mutex
	checkpoints map[string]*models.Checkpoint
	saves       int
	deletes     int
}

var _ contracts.CheckpointStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{checkpoints: make(map[string]*models.Checkpoint)}
}

func (s *MemoryStore) Load(ctx context.Context, scraperID string) (*models.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	checkpoint, ok := s.checkpoints[scraperID]
	if !ok {
		return nil, exceptions.ErrCheckpointNotFound(scraperID)
	}
	return checkpoint.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, scraperID string, checkpoint *models.Checkpoint) error {
	stored := checkpoint.Clone()
	stored.ScraperID = scraperID
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints[scraperID] = stored
	s.saves++
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, scraperID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.checkpoints[scraperID]; ok {
		delete(s.checkpoints, scraperID)
		s.deletes++
	}
	return nil
}

func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Deletes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletes
}

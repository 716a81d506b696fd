package redis

import (
	"context"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryRepository is a process-local RedisRepository with the same value
// encoding as the redis-backed one. Used when no redis is configured.
type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRepository() contracts.RedisRepository {
	return &memoryRepository{entries: make(map[string]memoryEntry), now: time.Now}
}

func (r *memoryRepository) live(key string) (memoryEntry, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
		delete(r.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (r *memoryRepository) expiry(exp time.Duration) time.Time {
	if exp <= 0 {
		return time.Time{}
	}
	return r.now().Add(exp)
}

func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *memoryRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return r.SetRaw(ctx, key, jsonValue, exp)
}

func (r *memoryRepository) SetRaw(ctx context.Context, key string, value []byte, exp time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = memoryEntry{value: string(value), expiresAt: r.expiry(exp)}
	return nil
}

func (r *memoryRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, _ := r.live(key)
	return entry.value, nil
}

func (r *memoryRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.live(key); exists {
		return false, nil
	}
	r.entries[key] = memoryEntry{value: string(jsonValue), expiresAt: r.expiry(exp)}
	return true, nil
}

func (r *memoryRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.live(key)
	if !exists {
		return false, nil
	}
	entry.expiresAt = r.expiry(exp)
	r.entries[key] = entry
	return true, nil
}

package checkpoint

import (
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type StoreDependencies struct {
	RedisRepo contracts.RedisRepository
	RedisTTL  time.Duration
	MongoDB   *mongo.Database
	Dir       string
}

// NewStore selects a backend by name: redis, mongo, file or memory.
func NewStore(backend string, deps StoreDependencies) (contracts.CheckpointStore, error) {
	switch backend {
	case constvars.CheckpointBackendRedis:
		if deps.RedisRepo == nil {
			return nil, exceptions.ErrCheckpointBackendUnknown(backend + " (no redis client)")
		}
		return NewRedisStore(deps.RedisRepo, deps.RedisTTL), nil
	case constvars.CheckpointBackendMongo:
		if deps.MongoDB == nil {
			return nil, exceptions.ErrCheckpointBackendUnknown(backend + " (no mongo database)")
		}
		return NewMongoStore(deps.MongoDB), nil
	case constvars.CheckpointBackendFile:
		return NewFileStore(deps.Dir)
	case constvars.CheckpointBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, exceptions.ErrCheckpointBackendUnknown(backend)
	}
}

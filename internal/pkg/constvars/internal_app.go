package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_RUN_ID_KEY     ContextKey = "run_id"
)

const (
	ResourceScrapers    = "scrapers"
	ResourceCheckpoint  = "checkpoint"
	ResourceHarvests    = "harvests"
	ResourceHealthCheck = "healthz"
)

const (
	CheckpointBackendRedis  = "redis"
	CheckpointBackendMongo  = "mongo"
	CheckpointBackendFile   = "file"
	CheckpointBackendMemory = "memory"
)

const (
	ScraperKindHTMLCatalog = "html-catalog"
)

const (
	DefaultHarvestDeadline     = 15 * time.Minute
	DefaultHarvestWorkers      = 4
	DefaultHarvestCronSpec     = "@hourly"
	DefaultHarvestUserAgent    = "hyperschedule-harvester/1.0"
	DefaultScraperHTTPTimeout  = 30 * time.Second
	DefaultLockRefreshFraction = 2
)

const (
	RedisCheckpointKeyFormat = "harvest:checkpoint:%s"
	RedisHarvestLockFormat   = "harvest:lock:%s"
	MinioResultObjectFormat  = "%s/latest.json"
	MinioRunObjectFormat     = "%s/runs/%s.json"
	MongoCheckpointColl      = "harvest_checkpoints"
)

package config

import (
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "hyperschedule"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:    utils.GetEnvString("RABBITMQ_VHOST", "/"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 10),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			AdminAPIKey:               utils.GetEnvString("APP_ADMIN_API_KEY", ""),
		},
		Harvest: Harvest{
			Deadline:            utils.GetEnvDuration("HARVEST_DEADLINE", constvars.DefaultHarvestDeadline),
			Workers:             utils.GetEnvInt("HARVEST_WORKERS", constvars.DefaultHarvestWorkers),
			RefineRatePerSecond: utils.GetEnvFloat("HARVEST_REFINE_RATE_PER_SECOND", 0),
			MaxRefineAttempts:   utils.GetEnvInt("HARVEST_MAX_REFINE_ATTEMPTS", 0),
			CronSpec:            utils.GetEnvString("HARVEST_CRON_SPEC", constvars.DefaultHarvestCronSpec),
			ScrapersFile:        utils.GetEnvString("HARVEST_SCRAPERS_FILE", "scrapers.json"),
			LockTTL:             utils.GetEnvDuration("HARVEST_LOCK_TTL", constvars.DefaultHarvestDeadline+constvars.DefaultHarvestDeadline/2),
		},
		Checkpoint: Checkpoint{
			Backend:  utils.GetEnvString("CHECKPOINT_BACKEND", constvars.CheckpointBackendRedis),
			Dir:      utils.GetEnvString("CHECKPOINT_DIR", "checkpoints"),
			RedisTTL: utils.GetEnvDuration("CHECKPOINT_REDIS_TTL", 0),
		},
		Publisher: Publisher{
			Enabled: utils.GetEnvBool("PUBLISHER_ENABLED", false),
			Bucket:  utils.GetEnvString("PUBLISHER_MINIO_BUCKET", "harvests"),
			Queue:   utils.GetEnvString("PUBLISHER_RABBITMQ_QUEUE", "harvest_events"),
		},
	}
}

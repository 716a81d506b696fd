package main

import (
	"context"
	"flag"
	"fmt"
	"hyperschedule-service/internal/app/config"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/drivers/database"
	"hyperschedule-service/internal/app/drivers/logger"
	"hyperschedule-service/internal/app/services/core/harvest"
	"hyperschedule-service/internal/app/services/scrapers"
	"hyperschedule-service/internal/app/services/shared/checkpoint"
	"hyperschedule-service/internal/app/services/shared/locker"
	redisRepo "hyperschedule-service/internal/app/services/shared/redis"
	"hyperschedule-service/internal/pkg/constvars"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// harvest runs one invocation per selected scraper and prints the outcomes.
// Publishing is left to the http service; this binary only advances checkpoints
// and optionally writes the final result to a file.
func main() {
	os.Exit(run())
}

func run() int {
	scraperID := flag.String("scraper", "", "scraper id to harvest; all enabled scrapers when empty")
	scrapersFile := flag.String("config", "", "path to the scrapers file; overrides HARVEST_SCRAPERS_FILE")
	backend := flag.String("checkpoint", "", "checkpoint backend (redis, mongo, file, memory); overrides CHECKPOINT_BACKEND")
	outputFile := flag.String("out", "", "write the merged result of the last harvest to this file")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if *scrapersFile != "" {
		internalConfig.Harvest.ScrapersFile = *scrapersFile
	}
	if *backend != "" {
		internalConfig.Checkpoint.Backend = *backend
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer func() { _ = zapLogger.Sync() }()

	scrapersConfig, err := config.LoadScrapersConfig(internalConfig.Harvest.ScrapersFile)
	if err != nil {
		log.Fatalf("Failed to load scrapers config: %s", err.Error())
	}

	var redisRepository contracts.RedisRepository
	storeDeps := checkpoint.StoreDependencies{
		RedisTTL: internalConfig.Checkpoint.RedisTTL,
		Dir:      internalConfig.Checkpoint.Dir,
	}
	switch internalConfig.Checkpoint.Backend {
	case constvars.CheckpointBackendRedis:
		redisClient := database.NewRedisClient(driverConfig)
		defer redisClient.Close()
		redisRepository = redisRepo.NewRedisRepository(redisClient)
	case constvars.CheckpointBackendMongo:
		mongoClient := database.NewMongoDB(driverConfig)
		defer mongoClient.Disconnect(context.Background())
		storeDeps.MongoDB = mongoClient.Database(driverConfig.MongoDB.DbName)
	}
	if redisRepository == nil {
		redisRepository = redisRepo.NewMemoryRepository()
	}
	storeDeps.RedisRepo = redisRepository

	checkpointStore, err := checkpoint.NewStore(internalConfig.Checkpoint.Backend, storeDeps)
	if err != nil {
		log.Fatalf("Failed to create checkpoint store: %s", err.Error())
	}

	orchestrator := harvest.NewOrchestrator(checkpointStore, zapLogger, harvest.Options{
		Deadline:            internalConfig.Harvest.Deadline,
		Workers:             internalConfig.Harvest.Workers,
		RefineRatePerSecond: internalConfig.Harvest.RefineRatePerSecond,
		MaxRefineAttempts:   internalConfig.Harvest.MaxRefineAttempts,
	})
	harvestService := harvest.NewService(harvest.ServiceDependencies{
		Scrapers:     scrapers.NewRegistry(scrapersConfig, zapLogger),
		Orchestrator: orchestrator,
		Store:        checkpointStore,
		Locker:       locker.NewLockService(redisRepository, zapLogger),
		LockTTL:      internalConfig.Harvest.LockTTL,
		Log:          zapLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scraperIDs := harvestService.EnabledScraperIDs()
	if *scraperID != "" {
		scraperIDs = []string{*scraperID}
	}

	exitCode := 0
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	for _, id := range scraperIDs {
		out, err := harvestService.HarvestByID(ctx, "", id)
		if err != nil {
			zapLogger.Error("Harvest failed", zap.String(constvars.LoggingScraperIDKey, id), zap.Error(err))
			exitCode = 1
			continue
		}
		if out.State == harvest.StateFailed {
			exitCode = 1
		}
		_ = encoder.Encode(out)

		if *outputFile != "" && out.Result != nil {
			err = writeResult(*outputFile, out)
			if err != nil {
				zapLogger.Error("Failed to write result", zap.String("path", *outputFile), zap.Error(err))
				exitCode = 1
			}
		}
	}
	return exitCode
}

func writeResult(path string, out *harvest.HarvestOutput) error {
	data, err := json.MarshalIndent(out.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result of %s: %w", out.ScraperID, err)
	}
	return os.WriteFile(path, data, 0o644)
}

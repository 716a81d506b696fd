package main

import (
	"context"
	"hyperschedule-service/internal/app/config"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/delivery/http/controllers"
	"hyperschedule-service/internal/app/delivery/http/middlewares"
	"hyperschedule-service/internal/app/delivery/http/routers"
	"hyperschedule-service/internal/app/drivers/database"
	"hyperschedule-service/internal/app/drivers/logger"
	"hyperschedule-service/internal/app/drivers/messaging"
	"hyperschedule-service/internal/app/drivers/storage"
	"hyperschedule-service/internal/app/services/core/harvest"
	"hyperschedule-service/internal/app/services/scrapers"
	"hyperschedule-service/internal/app/services/shared/checkpoint"
	"hyperschedule-service/internal/app/services/shared/harvestqueue"
	"hyperschedule-service/internal/app/services/shared/locker"
	redisRepo "hyperschedule-service/internal/app/services/shared/redis"
	sharedStorage "hyperschedule-service/internal/app/services/shared/storage"
	"hyperschedule-service/internal/pkg/constvars"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting hyperschedule harvester",
		zap.String("version", Version),
		zap.String("tag", Tag),
	)

	scrapersConfig, err := config.LoadScrapersConfig(internalConfig.Harvest.ScrapersFile)
	if err != nil {
		log.Fatalf("Failed to load scrapers config: %s", err.Error())
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
		Scrapers:       scrapersConfig,
	}
	if driverConfig.Redis.Host != "" {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}
	if internalConfig.Checkpoint.Backend == constvars.CheckpointBackendMongo {
		bootstrap.MongoClient = database.NewMongoDB(driverConfig)
	}
	if internalConfig.Publisher.Enabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Failed to bootstrap the app: %s", err.Error())
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	zapLogger.Info("Server is listening", zap.String("port", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx := context.Background()
	cfg := bootstrap.InternalConfig

	// Redis
	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redisRepo.NewRedisRepository(bootstrap.Redis)
	} else {
		redisRepository = redisRepo.NewMemoryRepository()
	}

	// Checkpoint store
	storeDeps := checkpoint.StoreDependencies{
		RedisRepo: redisRepository,
		RedisTTL:  cfg.Checkpoint.RedisTTL,
		Dir:       cfg.Checkpoint.Dir,
	}
	if bootstrap.MongoClient != nil {
		storeDeps.MongoDB = bootstrap.MongoClient.Database(bootstrap.DriverConfig.MongoDB.DbName)
	}
	checkpointStore, err := checkpoint.NewStore(cfg.Checkpoint.Backend, storeDeps)
	if err != nil {
		return err
	}

	// Locker
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Publisher and notifier
	var (
		resultPublisher contracts.ResultPublisher
		harvestNotifier contracts.HarvestNotifier
	)
	if cfg.Publisher.Enabled {
		minioClient := storage.NewMinio(bootstrap.DriverConfig)
		err = storage.EnsureBucket(ctx, minioClient, cfg.Publisher.Bucket)
		if err != nil {
			return err
		}
		resultPublisher = sharedStorage.NewMinioResultPublisher(minioClient, cfg.Publisher.Bucket, bootstrap.Logger)

		queueService, err := harvestqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, cfg.Publisher.Queue)
		if err != nil {
			return err
		}
		harvestNotifier = queueService
	}

	// Harvest
	scraperRegistry := scrapers.NewRegistry(bootstrap.Scrapers, bootstrap.Logger)
	orchestrator := harvest.NewOrchestrator(checkpointStore, bootstrap.Logger, harvest.Options{
		Deadline:            cfg.Harvest.Deadline,
		Workers:             cfg.Harvest.Workers,
		RefineRatePerSecond: cfg.Harvest.RefineRatePerSecond,
		MaxRefineAttempts:   cfg.Harvest.MaxRefineAttempts,
	})
	harvestService := harvest.NewService(harvest.ServiceDependencies{
		Scrapers:     scraperRegistry,
		Orchestrator: orchestrator,
		Store:        checkpointStore,
		Locker:       lockService,
		Publisher:    resultPublisher,
		Notifier:     harvestNotifier,
		LockTTL:      cfg.Harvest.LockTTL,
		Log:          bootstrap.Logger,
	})

	worker := harvest.NewWorker(bootstrap.Logger, cfg.Harvest.CronSpec, harvestService)
	worker.Start(ctx)
	bootstrap.WorkerStop = func(ctx context.Context) error {
		err := harvestService.Shutdown(ctx)
		worker.Stop()
		return err
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, cfg)

	// Controllers
	harvestController := controllers.NewHarvestController(bootstrap.Logger, harvestService, cfg.App.Version)

	routers.SetupRoutes(bootstrap.Router, cfg, middlewares, harvestController)
	return nil
}

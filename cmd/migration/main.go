package main

import (
	"context"
	"hyperschedule-service/internal/app/config"
	"hyperschedule-service/internal/app/drivers/database"
	"hyperschedule-service/internal/app/drivers/storage"
	"hyperschedule-service/internal/app/services/shared/checkpoint"
	"hyperschedule-service/internal/pkg/constvars"
	"log"
	"os"
	"time"
)

const migrationTimeout = time.Minute

// migration prepares the backing stores the harvester writes to: checkpoint
// indexes when checkpoints live in mongo, the result bucket when publishing
// is enabled and the checkpoint directory for the file backend.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	switch internalConfig.Checkpoint.Backend {
	case constvars.CheckpointBackendMongo:
		mongoClient := database.NewMongoDB(driverConfig)
		defer mongoClient.Disconnect(context.Background())

		names, err := checkpoint.EnsureMongoIndexes(ctx, mongoClient.Database(driverConfig.MongoDB.DbName))
		if err != nil {
			log.Fatalf("Error creating checkpoint indexes: %v", err)
		}
		log.Printf("Applied %d checkpoint indexes!\n", len(names))
	case constvars.CheckpointBackendFile:
		err := os.MkdirAll(internalConfig.Checkpoint.Dir, 0o755)
		if err != nil {
			log.Fatalf("Error creating checkpoint directory: %v", err)
		}
		log.Printf("Checkpoint directory %s is ready\n", internalConfig.Checkpoint.Dir)
	}

	if internalConfig.Publisher.Enabled {
		minioClient := storage.NewMinio(driverConfig)
		err := storage.EnsureBucket(ctx, minioClient, internalConfig.Publisher.Bucket)
		if err != nil {
			log.Fatalf("Error creating result bucket: %v", err)
		}
		log.Printf("Result bucket %s is ready\n", internalConfig.Publisher.Bucket)
	}
}

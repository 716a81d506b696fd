package checkpoint

import (
	"context"
	"errors"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRecord struct {
	ScraperID string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	Pending   int       `bson:"pending"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// mongoStore keeps one document per scraper keyed by scraper id. ReplaceOne
// swaps the whole document, which mongo applies atomically.
type mongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) contracts.CheckpointStore {
	return &mongoStore{collection: db.Collection(constvars.MongoCheckpointColl)}
}

func (s *mongoStore) Load(ctx context.Context, scraperID string) (*models.Checkpoint, error) {
	var record mongoRecord
	err := s.collection.FindOne(ctx, bson.M{"_id": scraperID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, exceptions.ErrCheckpointNotFound(scraperID)
	}
	if err != nil {
		return nil, exceptions.ErrCheckpointLoad(err, scraperID)
	}
	return decode(scraperID, []byte(record.Payload))
}

func (s *mongoStore) Save(ctx context.Context, scraperID string, checkpoint *models.Checkpoint) error {
	data, err := encode(scraperID, checkpoint)
	if err != nil {
		return err
	}
	record := mongoRecord{
		ScraperID: scraperID,
		Payload:   string(data),
		Pending:   len(checkpoint.Pending),
		UpdatedAt: checkpoint.UpdatedAt,
	}
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": scraperID}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, scraperID string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": scraperID}); err != nil {
		return exceptions.ErrCheckpointDelete(err, scraperID)
	}
	return nil
}

// EnsureMongoIndexes creates the secondary indexes operators use to find stale
// or unfinished checkpoints. It is idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "pending", Value: 1}}},
	}
	return db.Collection(constvars.MongoCheckpointColl).Indexes().CreateMany(ctx, indexes)
}

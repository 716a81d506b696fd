package checkpoint

import (
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

func encode(scraperID string, checkpoint *models.Checkpoint) ([]byte, error) {
	record := *checkpoint
	record.ScraperID = scraperID
	data, err := json.Marshal(&record)
	if err != nil {
		return nil, exceptions.ErrCheckpointSave(exceptions.ErrCannotMarshalJSON(err), scraperID)
	}
	return data, nil
}

func decode(scraperID string, data []byte) (*models.Checkpoint, error) {
	var checkpoint models.Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, exceptions.ErrCheckpointLoad(exceptions.ErrCannotParseJSON(err), scraperID)
	}
	if checkpoint.Snapshot.Courses == nil {
		checkpoint.Snapshot.Courses = make(map[string]models.Course)
	}
	return &checkpoint, nil
}

package checkpoint

import (
	"context"
	"errors"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/exceptions"
	"io/fs"
	"os"
	"path/filepath"
)

// fileStore writes <dir>/<scraperID>.json through a temp file and rename, so
// a reader sees either the previous file or the new one.
type fileStore struct {
	dir string
}

func NewFileStore(dir string) (contracts.CheckpointStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, exceptions.ErrCheckpointSave(err, dir)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(scraperID string) string {
	return filepath.Join(s.dir, filepath.Base(scraperID)+".json")
}

func (s *fileStore) Load(ctx context.Context, scraperID string) (*models.Checkpoint, error) {
	data, err := os.ReadFile(s.path(scraperID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, exceptions.ErrCheckpointNotFound(scraperID)
	}
	if err != nil {
		return nil, exceptions.ErrCheckpointLoad(err, scraperID)
	}
	return decode(scraperID, data)
}

func (s *fileStore) Save(ctx context.Context, scraperID string, checkpoint *models.Checkpoint) error {
	data, err := encode(scraperID, checkpoint)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(scraperID)+".*.tmp")
	if err != nil {
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	if err := tmp.Close(); err != nil {
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	if err := os.Rename(tmpName, s.path(scraperID)); err != nil {
		return exceptions.ErrCheckpointSave(err, scraperID)
	}
	return nil
}

func (s *fileStore) Delete(ctx context.Context, scraperID string) error {
	err := os.Remove(s.path(scraperID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return exceptions.ErrCheckpointDelete(err, scraperID)
	}
	return nil
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"hyperschedule-service/internal/app/contracts"
	"hyperschedule-service/internal/app/models"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"io"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStorage struct {
	client     objectPutter
	bucketName string
	log        *zap.Logger
}

// NewMinioResultPublisher writes each harvest twice: once under the run id for
// history and once as <scraper>/latest.json for consumers.
func NewMinioResultPublisher(minioClient *minio.Client, bucketName string, log *zap.Logger) contracts.ResultPublisher {
	return &minioStorage{client: minioClient, bucketName: bucketName, log: log}
}

func (m *minioStorage) Publish(ctx context.Context, scraperID, runID string, result *models.ScraperResult) (string, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	runObject := fmt.Sprintf(constvars.MinioRunObjectFormat, scraperID, runID)
	latestObject := fmt.Sprintf(constvars.MinioResultObjectFormat, scraperID)

	for _, objectName := range []string{runObject, latestObject} {
		_, err := m.client.PutObject(
			ctx,
			m.bucketName,
			objectName,
			bytes.NewReader(body),
			int64(len(body)),
			minio.PutObjectOptions{
				ContentType: constvars.MIMEApplicationJSON,
			},
		)
		if err != nil {
			return "", exceptions.ErrMinioCreateObject(err, m.bucketName)
		}
		m.log.Info("minioStorage.Publish wrote object",
			zap.String(constvars.LoggingScraperIDKey, scraperID),
			zap.String(constvars.LoggingBucketKey, m.bucketName),
			zap.String(constvars.LoggingObjectKey, objectName),
		)
	}

	return latestObject, nil
}

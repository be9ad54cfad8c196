package storage

import (
	"bytes"
	"context"
	"roombook-service/internal/app/contracts"
	"roombook-service/internal/pkg/constvars"
	"roombook-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
	URLExpiry   time.Duration
}

func NewMinioStorage(minioClient *minio.Client, bucketName string, urlExpiry time.Duration) contracts.ScheduleExporter {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
		URLExpiry:   urlExpiry,
	}
}

func (m *minioStorage) UploadScheduleExport(ctx context.Context, objectName string, content []byte) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(content),
		int64(len(content)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return objectName, nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, objectName string) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, m.BucketName, objectName, m.URLExpiry, nil)
	if err != nil {
		return "", exceptions.ErrMinioFindObjectPresignedURL(err, m.BucketName)
	}
	return presignedURL.String(), nil
}

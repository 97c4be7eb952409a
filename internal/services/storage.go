package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
)

// StorageService implements AttachmentStore on a Cloud Storage bucket.
// Uploads go through V4-signed PUT URLs with a bounded lifetime;
// retrieval uses the plain object URL, so the bucket must allow reads.
type StorageService struct {
	client    *storage.Client
	bucket    string
	uploadTTL time.Duration
}

func NewStorageService(ctx context.Context, bucket string, uploadTTL time.Duration) (*StorageService, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &StorageService{
		client:    client,
		bucket:    bucket,
		uploadTTL: uploadTTL,
	}, nil
}

func (ss *StorageService) Close() error {
	return ss.client.Close()
}

func (ss *StorageService) UploadURL(attachmentID string) (string, error) {
	url, err := ss.client.Bucket(ss.bucket).SignedURL(attachmentID, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodPut,
		Expires: time.Now().Add(ss.uploadTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign upload URL: %v", err)
	}

	return url, nil
}

func (ss *StorageService) RetrievalURL(attachmentID string) (string, error) {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", ss.bucket, attachmentID), nil
}

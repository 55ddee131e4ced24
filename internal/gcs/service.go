package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// Service talks to Google Cloud Storage. It assumes Application Default
// Credentials are configured (gcloud auth application-default login).
type Service struct{}

// NewService creates a Service.
func NewService() *Service {
	return &Service{}
}

// Fetch downloads the object bytes behind a GCS URI of the form
// "gs://bucket/path/to/scan.pdf".
func (s *Service) Fetch(ctx context.Context, gcsURI string) ([]byte, error) {
	bucketName, objectPath, err := splitURI(gcsURI)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("gcs: reading bytes: %w", err)
	}

	return data, nil
}

// ObjectName extracts the base filename from a GCS URI.
// e.g. "gs://bucket/folder/scan.pdf" → "scan.pdf"
func (s *Service) ObjectName(gcsURI string) string {
	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}
	return path.Base(parts[1])
}

// UploadFile uploads a local file to a GCS bucket under the given object
// name. Used by the upload-pdf command to stage scans for auditing.
func (s *Service) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("gcs: open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("gcs: creating storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs: copying file to writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: finalizing upload: %w", err)
	}

	return nil
}

func splitURI(gcsURI string) (bucket, object string, err error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return "", "", fmt.Errorf("gcs: invalid URI: %s", gcsURI)
	}
	trimmed := strings.TrimPrefix(gcsURI, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("gcs: URI has no object path: %s", gcsURI)
	}
	return parts[0], parts[1], nil
}

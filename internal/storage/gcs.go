package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

var _ Stager = (*GCSStager)(nil)

type GCSStager struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStager(ctx context.Context, bucket, prefix string) (*GCSStager, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStager{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSStager) Close() error {
	return s.client.Close()
}

// Stage uploads a local video to the staging bucket and returns its public
// URL. The bucket must allow public reads for Instagram to fetch the object.
func (s *GCSStager) Stage(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := s.objectName(localPath, time.Now().UTC())

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentTypeFor(localPath)

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return PublicURL(s.bucket, name), nil
}

// ListStaged returns the staged video objects under the configured prefix.
func (s *GCSStager) ListStaged(ctx context.Context) ([]string, error) {
	bkt := s.client.Bucket(s.bucket)
	query := &storage.Query{Prefix: s.prefix}

	var objects []string
	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if isVideoObject(attrs.Name) {
			objects = append(objects, attrs.Name)
		}
	}

	return objects, nil
}

// ClearStaged deletes every staged video under the configured prefix and
// returns how many were removed.
func (s *GCSStager) ClearStaged(ctx context.Context) (int, error) {
	objects, err := s.ListStaged(ctx)
	if err != nil {
		return 0, err
	}

	bkt := s.client.Bucket(s.bucket)
	for i, name := range objects {
		if err := bkt.Object(name).Delete(ctx); err != nil {
			return i, fmt.Errorf("failed to delete %s: %w", name, err)
		}
	}

	return len(objects), nil
}

func (s *GCSStager) objectName(localPath string, now time.Time) string {
	name := fmt.Sprintf("%s-%s", now.Format("20060102-150405"), filepath.Base(localPath))
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

func isVideoObject(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".mov", ".mkv":
		return true
	}
	return false
}

func contentTypeFor(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	}
	return "application/octet-stream"
}

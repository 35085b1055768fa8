package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/go-employee-directory/internal/domain/repository"
	"github.com/oksasatya/go-employee-directory/pkg/helpers"
)

// GCSStore keeps assets as objects under prefix in a Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCSStore(client *gcs.Client, bucket, prefix string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *GCSStore) object(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *GCSStore) Store(ctx context.Context, u repository.Upload) (string, error) {
	name := NewFilename(u.Filename)
	ct := u.ContentType
	if ct == "" {
		ct = contentTypeFor(name)
	}
	if err := helpers.UploadObject(ctx, s.client, s.bucket, s.object(name), ct, u.Body); err != nil {
		return "", fmt.Errorf("upload asset: %w", err)
	}
	return name, nil
}

func (s *GCSStore) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	if err := CheckFilename(filename); err != nil {
		return nil, "", err
	}
	r, err := s.client.Bucket(s.bucket).Object(s.object(filename)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, "", repository.ErrAssetNotFound
		}
		return nil, "", fmt.Errorf("open asset: %w", err)
	}
	ct := r.Attrs.ContentType
	if ct == "" {
		ct = contentTypeFor(filename)
	}
	return r, ct, nil
}

func (s *GCSStore) Remove(ctx context.Context, filename string) repository.RemovalResult {
	res := repository.RemovalResult{Filename: filename}
	if err := CheckFilename(filename); err != nil {
		res.Err = err
		return res
	}
	err := s.client.Bucket(s.bucket).Object(s.object(filename)).Delete(ctx)
	switch {
	case err == nil:
		res.Removed = true
	case errors.Is(err, gcs.ErrObjectNotExist):
		res.Absent = true
	default:
		res.Err = err
	}
	return res
}

var _ repository.AssetStore = (*GCSStore)(nil)

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oksasatya/go-employee-directory/internal/domain/repository"
)

// LocalStore keeps assets as files in a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Store(ctx context.Context, u repository.Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := NewFilename(u.Filename)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}
	if _, err := io.Copy(f, u.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close asset: %w", err)
	}
	return name, nil
}

func (s *LocalStore) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	if err := CheckFilename(filename); err != nil {
		return nil, "", err
	}
	f, err := os.Open(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", repository.ErrAssetNotFound
		}
		return nil, "", fmt.Errorf("open asset: %w", err)
	}
	return f, contentTypeFor(filename), nil
}

func (s *LocalStore) Remove(ctx context.Context, filename string) repository.RemovalResult {
	res := repository.RemovalResult{Filename: filename}
	if err := CheckFilename(filename); err != nil {
		res.Err = err
		return res
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	switch {
	case err == nil:
		res.Removed = true
	case errors.Is(err, fs.ErrNotExist):
		res.Absent = true
	default:
		res.Err = err
	}
	return res
}

var _ repository.AssetStore = (*LocalStore)(nil)

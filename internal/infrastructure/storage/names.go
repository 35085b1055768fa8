package storage

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/go-employee-directory/internal/domain/repository"
)

// NewFilename returns a unique name that keeps the lower-cased extension of original.
func NewFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return uuid.NewString() + ext
}

// CheckFilename rejects anything that could escape the store's namespace.
func CheckFilename(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return repository.ErrInvalidFilename
	}
	return nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Package media implements the ImageStore port on the local filesystem.
// Stored files are served back by the HTTP layer's file server under the
// configured base URL path.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ImageStore = (*Store)(nil)

// Store writes uploaded images beneath a root directory, grouped by
// destination folder. Filenames are generated, never taken from the upload,
// so a caller cannot influence the path.
type Store struct {
	dir     string
	baseURL string
}

// NewStore creates a Store rooted at dir, returning URLs under baseURL
// (e.g. "/media"). The root directory is created if missing.
func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}

	return &Store{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir returns the root directory files are stored under, for the file server.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores the image under folder with a generated name, keeping only the
// original extension, and returns the URL path it will be served from.
func (s *Store) Save(ctx context.Context, image driven.ImageUpload, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	destDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", folder, err)
	}

	ext := strings.ToLower(filepath.Ext(image.Filename))
	name := uuid.NewString() + ext
	dest := filepath.Join(destDir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(f, image.Content); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return "", fmt.Errorf("write image file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("close image file: %w", err)
	}

	return path.Join(s.baseURL, folder, name), nil
}

package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore abstracts where attachment bytes live
type FileStore interface {
	// GenerateKey derives a collision-free storage key from the
	// original file name.
	GenerateKey(fileName string) string
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// LocalFileStore keeps attachments on the local disk. Suitable for
// single-instance deployments and development.
type LocalFileStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalFileStore creates the upload directory if needed
func NewLocalFileStore(dir string, logger *zap.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{dir: dir, logger: logger}, nil
}

func (s *LocalFileStore) GenerateKey(fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], ext)
}

func (s *LocalFileStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	// Keys are generated server-side, but refuse anything that could
	// escape the upload directory.
	if strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (s *LocalFileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalFileStore) URL(key string) string {
	return "/uploads/" + key
}

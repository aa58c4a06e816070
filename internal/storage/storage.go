package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/formlytic/formlytic-api/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned when a stored object does not exist
var ErrObjectNotFound = errors.New("stored object not found")

// Storage defines the interface for answer attachment storage.
// Objects are grouped under a prefix, typically "forms/<form id>".
type Storage interface {
	Upload(ctx context.Context, prefix, filename, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local", "":
		return NewLocalStorage(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(ctx, cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// objectKey builds a unique slash separated key keeping the file extension
func objectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	prefix = strings.Trim(path.Clean("/"+prefix), "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// LocalStorage implements Storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "./uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// resolve maps a storage key to a path inside the base directory
func (s *LocalStorage) resolve(storagePath string) (string, error) {
	full := filepath.Join(s.basePath, filepath.FromSlash(path.Clean("/"+storagePath)))
	if full != s.basePath && !strings.HasPrefix(full, s.basePath+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid storage path: %s", storagePath)
	}
	return full, nil
}

// Upload writes data under prefix and returns the storage key and size
func (s *LocalStorage) Upload(ctx context.Context, prefix, filename, contentType string, data io.Reader) (string, int64, error) {
	key := objectKey(prefix, filename)
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return key, size, nil
}

// Download opens a stored file
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file; missing files are ignored
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath, err := s.resolve(storagePath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

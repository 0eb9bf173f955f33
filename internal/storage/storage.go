// Package storage abstracts blob storage for task batches and archived
// analysis results. Locations are a filesystem path, s3://bucket/prefix or
// gs://bucket/prefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsupportedScheme is returned for locations with an unknown URI scheme.
var ErrUnsupportedScheme = errors.New("unsupported storage scheme")

// ObjectStore reads and writes blobs by key.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Location is a parsed storage location.
type Location struct {
	Scheme string // "file", "s3" or "gs"
	Bucket string // empty for file
	Prefix string // directory for file, key prefix otherwise
}

// ParseLocation splits a location into scheme, bucket and prefix.
func ParseLocation(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("empty storage location")
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return Location{Scheme: "file", Prefix: uri}, nil
	}

	switch scheme {
	case "file":
		return Location{Scheme: "file", Prefix: rest}, nil
	case "s3", "gs":
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return Location{}, fmt.Errorf("storage location %q: missing bucket", uri)
		}
		return Location{Scheme: scheme, Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
	}
	return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}

// Open returns the store rooted at a location.
func Open(ctx context.Context, uri string) (ObjectStore, error) {
	loc, err := ParseLocation(uri)
	if err != nil {
		return nil, err
	}

	switch loc.Scheme {
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:    loc.Bucket,
			Prefix:    loc.Prefix,
			Region:    os.Getenv("AWS_REGION"),
			Endpoint:  os.Getenv("TASKRANK_S3_ENDPOINT"),
			AccessKey: os.Getenv("TASKRANK_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("TASKRANK_S3_SECRET_KEY"),
		})
	case "gs":
		return NewGCSStorage(ctx, loc.Bucket, loc.Prefix)
	default:
		return NewLocalStorage(loc.Prefix), nil
	}
}

// ReadObject reads a single blob addressed by a full location such as
// s3://bucket/batches/today.json or ./tasks.json.
func ReadObject(ctx context.Context, uri string) ([]byte, error) {
	dir, key := splitObject(uri)
	store, err := Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, key)
}

func splitObject(uri string) (dir, key string) {
	if strings.Contains(uri, "://") {
		i := strings.LastIndex(uri, "/")
		return uri[:i], uri[i+1:]
	}
	return filepath.Dir(uri), filepath.Base(uri)
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// LocalStorage implements ObjectStore using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(key))
}

// Get reads the blob stored under key.
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put writes data under key, creating parent directories.
func (s *LocalStorage) Put(ctx context.Context, key string, data []byte) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

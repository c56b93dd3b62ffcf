// pkg/storage/storage.go

// Package storage keeps binary objects such as receipts, logos and archived
// exports in a local directory, S3 or Google Cloud Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bizbooks-service/pkg/config"
	"github.com/google/uuid"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// Store is a flat key/value object store.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// Object kinds used as the second key segment.
const (
	KindLogos     = "logos"
	KindReceipts  = "receipts"
	KindDocuments = "documents"
)

// ObjectKey builds "<user>/<kind>/<name>".
func ObjectKey(userID, kind, name string) (string, error) {
	base := path.Base(name)
	if base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("%w: file name %q", ErrInvalidKey, name)
	}
	key := path.Join(userID, kind, base)
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// UploadKey is like ObjectKey but prefixes the file name with a random id so
// repeated uploads never overwrite each other.
func UploadKey(userID, kind, name string) (string, error) {
	return ObjectKey(userID, kind, uuid.NewString()+"-"+path.Base(name))
}

// ValidateKey rejects absolute keys and any "." or ".." segment. Dots inside
// a file name such as "receipt..v2.png" are fine.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// New returns the store configured by cfg.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Provider {
	case config.StorageLocal, "":
		return NewLocalStore(cfg.BaseDir)
	case config.StorageS3:
		return NewS3Store(cfg.Bucket, cfg.Region)
	case config.StorageGCS:
		return NewGCSStore(ctx, cfg.Bucket, cfg.CredentialsJSON)
	}
	return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
}

// Package storage reads documents uploaded to a deed's file area.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"lexdesk.app/deedwatch/core/config"
)

// MaxDocumentSize caps downloads; registry receipts and protocol exports are small.
const MaxDocumentSize = 20 << 20

var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidPath   = errors.New("invalid document path")
	ErrPathTraversal = errors.New("path traversal not allowed")
	ErrTooLarge      = errors.New("document exceeds maximum size")
)

// FileStore downloads documents by their storage-relative path.
type FileStore interface {
	Download(ctx context.Context, path string) ([]byte, error)
}

// New returns the backend selected by cfg.
func New(cfg config.StorageConfig) (FileStore, error) {
	switch cfg.Backend {
	case "http":
		return NewHTTPStore(cfg.URL, cfg.Bucket, cfg.Token, nil), nil
	case "local", "":
		return NewLocalStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// cleanPath rejects empty, absolute and escaping paths and returns the cleaned
// slash-separated form.
func cleanPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrInvalidPath
	}
	if strings.Contains(path, "..") {
		return "", ErrPathTraversal
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return "", ErrPathTraversal
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned == "." {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

func tooLarge() error {
	return fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxDocumentSize)
}

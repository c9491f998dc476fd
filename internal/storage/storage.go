// Package storage archives uploaded import files so a submitted batch can
// always be traced back to the exact bytes the user selected.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Archive stores uploaded files. Implementations may be local filesystem or
// object storage.
type Archive interface {
	// Put stores the file content under the run ID and returns the storage
	// key and content checksum.
	Put(ctx context.Context, runID, filename string, content []byte) (key, checksum string, err error)

	// Get retrieves archived content by key.
	Get(ctx context.Context, key string) ([]byte, error)
}

// LocalArchive keeps archived uploads on the local filesystem, one
// date-partitioned directory per day.
type LocalArchive struct {
	basePath string
}

// NewLocalArchive creates the base directory if needed.
func NewLocalArchive(basePath string) (*LocalArchive, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &LocalArchive{basePath: basePath}, nil
}

// Put writes content to <base>/<yyyy-mm-dd>/<runID>_<filename>.
func (a *LocalArchive) Put(_ context.Context, runID, filename string, content []byte) (string, string, error) {
	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	day := time.Now().UTC().Format("2006-01-02")
	key := filepath.Join(day, runID+"_"+sanitize(filename))
	fullPath := filepath.Join(a.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create archive partition: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to archive upload: %w", err)
	}
	return key, checksum, nil
}

// Get reads archived content back by key.
func (a *LocalArchive) Get(_ context.Context, key string) ([]byte, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("invalid archive key %q", key)
	}
	return os.ReadFile(filepath.Join(a.basePath, clean))
}

func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

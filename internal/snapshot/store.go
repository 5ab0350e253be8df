// Package snapshot persists the published feed as immutable, date-keyed
// JSON artifacts. Two keys are written per run: the run's UTC date
// (YYYY-MM-DD) and "latest", a pointer overwritten each run so readers can
// ask for "today" or "latest" without re-running the aggregation.
package snapshot

import (
	"context"
	"errors"
	"strings"
	"time"
)

// KeyLatest is the literal key of the most recent snapshot.
const KeyLatest = "latest"

// defaultLatestName is the blob/file name backing KeyLatest unless
// overridden in config.
const defaultLatestName = "latest.json"

// ErrNotFound is returned by Get when no snapshot exists under the key.
var ErrNotFound = errors.New("snapshot: not found")

// ErrInvalidKey is returned by Put for keys that are neither KeyLatest nor
// a YYYY-MM-DD date. Keys come from URLs and config, so stores refuse
// anything that could name an object outside the snapshot set.
var ErrInvalidKey = errors.New("snapshot: invalid key")

// IsDateKey reports whether key has the YYYY-MM-DD shape date snapshots
// are stored under.
func IsDateKey(key string) bool {
	if len(key) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", key)
	return err == nil
}

// Store is the narrow storage interface the aggregation core consumes.
type Store interface {
	// Put writes the payload under the key, overwriting any previous value.
	Put(ctx context.Context, key string, payload []byte) error
	// Get returns the payload stored under the key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// ListKeys returns the stored date keys, newest first. The "latest"
	// pointer is not a date key and is excluded.
	ListKeys(ctx context.Context) ([]string, error)
}

// objectName maps a store key to its backing object name.
func objectName(key, latestName string) string {
	if latestName == "" {
		latestName = defaultLatestName
	}
	if key == KeyLatest {
		return latestName
	}
	return key + ".json"
}

// keyFromObject is the inverse of objectName; ok is false for the latest
// pointer and for names that are not snapshot objects.
func keyFromObject(name, latestName string) (string, bool) {
	if latestName == "" {
		latestName = defaultLatestName
	}
	if name == latestName || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	key := strings.TrimSuffix(name, ".json")
	// Stray files in the directory/container are not snapshots; only
	// date-shaped names count as keys.
	if !IsDateKey(key) {
		return "", false
	}
	return key, true
}

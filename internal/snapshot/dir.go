package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirStore keeps snapshots as files in a local directory. Used for local
// runs and tests; the blob store is the production backend.
type DirStore struct {
	dir        string
	latestName string
}

func NewDirStore(dir, latestName string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &DirStore{dir: dir, latestName: latestName}, nil
}

func (d *DirStore) Put(ctx context.Context, key string, payload []byte) error {
	if key != KeyLatest && !IsDateKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	path := filepath.Join(d.dir, objectName(key, d.latestName))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", key, err)
	}
	return nil
}

func (d *DirStore) Get(ctx context.Context, key string) ([]byte, error) {
	// A non-date key would join into a path outside the snapshot set
	// (e.g. "../secret"); treat it as absent rather than resolve it.
	if key != KeyLatest && !IsDateKey(key) {
		return nil, ErrNotFound
	}
	path := filepath.Join(d.dir, objectName(key, d.latestName))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return data, nil
}

func (d *DirStore) ListKeys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if key, ok := keyFromObject(e.Name(), d.latestName); ok {
			keys = append(keys, key)
		}
	}

	// Date keys sort lexically in chronological order; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}

package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// dumpMaxPosts caps how many posts a cached scrape dump may contribute,
// matching the hard limit the scrape jobs were run with.
const dumpMaxPosts = 5

// loadDump reads a cached scrape result (a JSON array of post objects).
// A missing file is not an error: the adapter simply has nothing cached.
// Individual malformed entries are skipped with a warning so one bad
// record never discards the rest of the dump.
func loadDump(path string) ([]RawPost, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dump %s: %w", filepath.Base(path), err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse dump %s: %w", filepath.Base(path), err)
	}

	posts := make([]RawPost, 0, len(entries))
	for i, e := range entries {
		var p RawPost
		if err := json.Unmarshal(e, &p); err != nil {
			log.Printf("dump %s: skip entry %d: %v", filepath.Base(path), i, err)
			continue
		}
		posts = append(posts, p)
	}

	if len(posts) > dumpMaxPosts {
		posts = posts[:dumpMaxPosts]
	}
	return posts, nil
}

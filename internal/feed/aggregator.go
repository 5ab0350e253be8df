package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/skinsight/skinfeed/internal/collector"
	"github.com/skinsight/skinfeed/internal/snapshot"
)

// DefaultAdapterTimeout bounds a single adapter call; a slow platform
// degrades to an empty contribution instead of stalling the run.
const DefaultAdapterTimeout = 20 * time.Second

// SourceResult reports how one adapter fared during a run, so the driver
// can say which platforms degraded instead of swallowing failures.
type SourceResult struct {
	Name  string
	Posts int
	Err   error
}

// Archiver persists individual posts of a run for later date queries.
// Implemented by the optional relational archive.
type Archiver interface {
	SaveBatch(posts []Post, date string) error
}

// Options configures an Aggregator. Zero values fall back to defaults.
type Options struct {
	Threshold int           // minimum score, exclusive; 0 means DefaultThreshold
	Timeout   time.Duration // per-adapter call budget
	Store     snapshot.Store
	Archive   Archiver
}

// Aggregator drives one aggregation run: invoke each adapter in a fixed
// order, concatenate, then normalize -> filter -> rank.
type Aggregator struct {
	fetchers  []collector.Fetcher
	store     snapshot.Store
	archive   Archiver
	threshold int
	timeout   time.Duration

	now func() time.Time
}

func NewAggregator(fetchers []collector.Fetcher, opts Options) *Aggregator {
	a := &Aggregator{
		fetchers:  fetchers,
		store:     opts.Store,
		archive:   opts.Archive,
		threshold: opts.Threshold,
		timeout:   opts.Timeout,
		now:       time.Now,
	}
	if a.threshold <= 0 {
		a.threshold = DefaultThreshold
	}
	if a.timeout <= 0 {
		a.timeout = DefaultAdapterTimeout
	}
	return a
}

// LoadFeed runs the full pipeline and returns the published feed plus a
// per-adapter report. Adapters are called sequentially in registration
// order; an adapter error is recorded and treated as an empty contribution.
// When every adapter comes back empty and a "latest" snapshot exists, the
// snapshot is served instead: stale data beats no data.
func (a *Aggregator) LoadFeed(ctx context.Context) ([]Post, []SourceResult) {
	var (
		raw     []collector.RawPost
		results = make([]SourceResult, 0, len(a.fetchers))
	)

	for _, f := range a.fetchers {
		fctx, cancel := context.WithTimeout(ctx, a.timeout)
		posts, err := f.Fetch(fctx)
		cancel()

		if err != nil {
			log.Printf("fetch %s error: %v", f.Name(), err)
		}
		results = append(results, SourceResult{Name: f.Name(), Posts: len(posts), Err: err})
		raw = append(raw, posts...)
	}

	if len(raw) == 0 {
		if posts, ok := a.loadFallback(ctx); ok {
			return posts, results
		}
		return []Post{}, results
	}

	return Rank(Filter(Normalize(raw), a.threshold)), results
}

// loadFallback reads the "latest" snapshot, which already holds a
// filtered and ranked feed.
func (a *Aggregator) loadFallback(ctx context.Context) ([]Post, bool) {
	if a.store == nil {
		return nil, false
	}
	payload, err := a.store.Get(ctx, snapshot.KeyLatest)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			log.Printf("fallback snapshot read error: %v", err)
		}
		return nil, false
	}
	var posts []Post
	if err := json.Unmarshal(payload, &posts); err != nil {
		log.Printf("fallback snapshot malformed: %v", err)
		return nil, false
	}
	log.Printf("all adapters empty, serving %d posts from latest snapshot", len(posts))
	return posts, true
}

// Run executes one aggregation run and persists the feed under both the
// "latest" key and the run's UTC date. A snapshot write failure fails the
// run loudly; the archive write afterwards is best-effort.
func (a *Aggregator) Run(ctx context.Context) ([]Post, error) {
	posts, results := a.LoadFeed(ctx)
	for _, r := range results {
		if r.Err != nil {
			log.Printf("run: %s degraded: %v", r.Name, r.Err)
		} else {
			log.Printf("run: %s contributed %d raw posts", r.Name, r.Posts)
		}
	}

	if a.store == nil {
		return nil, errors.New("aggregator: no snapshot store configured")
	}

	payload, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}

	date := a.now().UTC().Format("2006-01-02")
	if err := a.store.Put(ctx, snapshot.KeyLatest, payload); err != nil {
		return nil, fmt.Errorf("put latest snapshot: %w", err)
	}
	if err := a.store.Put(ctx, date, payload); err != nil {
		return nil, fmt.Errorf("put %s snapshot: %w", date, err)
	}
	log.Printf("run: snapshot written (%d posts, keys latest and %s)", len(posts), date)

	if a.archive != nil {
		if err := a.archive.SaveBatch(posts, date); err != nil {
			log.Printf("warn: archive batch failed: %v", err)
		}
	}

	return posts, nil
}

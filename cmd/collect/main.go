package main

import (
	"context"
	"log"
	"time"

	"github.com/skinsight/skinfeed/internal/archive"
	"github.com/skinsight/skinfeed/internal/collector"
	"github.com/skinsight/skinfeed/internal/config"
	"github.com/skinsight/skinfeed/internal/feed"
	"github.com/skinsight/skinfeed/internal/snapshot"
)

// One-shot aggregation run: fetch, rank, write the latest and dated
// snapshots, then exit. Suitable for an external scheduler or a timer
// trigger; a snapshot write failure exits non-zero so the scheduler can
// alert and retry next cycle.
func main() {
	cfg := config.Load()

	var (
		store snapshot.Store
		err   error
	)
	if cfg.StorageConnString != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		store, err = snapshot.NewBlobStore(ctx, cfg.StorageConnString, cfg.FeedContainer, cfg.LatestBlobName)
		cancel()
	} else {
		store, err = snapshot.NewDirStore(cfg.SnapshotDir, cfg.LatestBlobName)
	}
	if err != nil {
		log.Fatalf("init snapshot store failed: %v", err)
	}

	opts := feed.Options{
		Threshold: cfg.ScoreThreshold,
		Timeout:   cfg.AdapterTimeout,
		Store:     store,
	}
	if cfg.PostgresDSN != "" {
		arc, err := archive.New(cfg.PostgresDSN)
		if err != nil {
			log.Printf("warn: archive disabled: %v", err)
		} else {
			opts.Archive = arc
		}
	}

	fetchers := []collector.Fetcher{
		collector.NewReddit(cfg.RedditUserAgent),
		collector.NewTwitter(cfg.DumpDir, cfg.TwitterBearerToken),
		collector.NewInstagram(cfg.DumpDir),
		collector.NewLinkedIn(cfg.DumpDir),
	}
	agg := feed.NewAggregator(fetchers, opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	posts, err := agg.Run(ctx)
	if err != nil {
		log.Fatalf("aggregation run failed: %v", err)
	}
	log.Printf("collect done, %d posts published", len(posts))
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/skinsight/skinfeed/internal/archive"
	"github.com/skinsight/skinfeed/internal/collector"
	"github.com/skinsight/skinfeed/internal/config"
	"github.com/skinsight/skinfeed/internal/feed"
	"github.com/skinsight/skinfeed/internal/mailer"
	"github.com/skinsight/skinfeed/internal/scheduler"
	"github.com/skinsight/skinfeed/internal/snapshot"
	"github.com/skinsight/skinfeed/internal/web"
)

func main() {
	cfg := config.Load()

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("init snapshot store failed: %v", err)
	}

	// Optional relational archive; the feed works without it.
	var arc *archive.Archive
	if cfg.PostgresDSN != "" {
		arc, err = archive.New(cfg.PostgresDSN)
		if err != nil {
			log.Printf("warn: archive disabled: %v", err)
			arc = nil
		}
	}

	// Adapter order is fixed; ranking is only reproducible because the
	// pre-sort concatenation order never changes.
	fetchers := []collector.Fetcher{
		collector.NewReddit(cfg.RedditUserAgent),
		collector.NewTwitter(cfg.DumpDir, cfg.TwitterBearerToken),
		collector.NewInstagram(cfg.DumpDir),
		collector.NewLinkedIn(cfg.DumpDir),
	}

	opts := feed.Options{
		Threshold: cfg.ScoreThreshold,
		Timeout:   cfg.AdapterTimeout,
		Store:     store,
	}
	if arc != nil {
		opts.Archive = arc
	}
	agg := feed.NewAggregator(fetchers, opts)

	var m *mailer.Mailer
	if cfg.EmailAddress != "" && cfg.RecipientEmail != "" {
		m = mailer.New(cfg.SMTPServer, cfg.SMTPPort, cfg.EmailAddress, cfg.EmailPassword,
			cfg.EmailAddress, cfg.RecipientEmail)
	} else {
		log.Println("email not configured, digest delivery disabled")
	}

	s, err := scheduler.New(cfg.CronSpec, agg, m)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	r := gin.Default()
	r.SetHTMLTemplate(web.PageTemplate())

	var dates web.DateLister
	if arc != nil {
		dates = arc
	}
	server := web.NewServer(store, agg, m, dates)
	server.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting feed server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

func newStore(cfg *config.Config) (snapshot.Store, error) {
	var (
		store snapshot.Store
		err   error
	)

	if cfg.StorageConnString != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		store, err = snapshot.NewBlobStore(ctx, cfg.StorageConnString, cfg.FeedContainer, cfg.LatestBlobName)
	} else {
		store, err = snapshot.NewDirStore(cfg.SnapshotDir, cfg.LatestBlobName)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
		store = snapshot.NewCachedStore(store, rdb)
	}

	return store, nil
}

package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skinsight/skinfeed/internal/collector"
	"github.com/skinsight/skinfeed/internal/feed"
	"github.com/skinsight/skinfeed/internal/mailer"
	"github.com/skinsight/skinfeed/internal/snapshot"
)

// DateLister lists run dates that have data, newest first. Implemented by
// the relational archive when configured.
type DateLister interface {
	ListDates(limit int) ([]string, error)
}

type Server struct {
	store  snapshot.Store
	agg    *feed.Aggregator
	mailer *mailer.Mailer
	dates  DateLister
	topics func() []collector.Topic

	now func() time.Time

	// Trending topics are scraped from an external page; cache them so a
	// page view never waits on (or hammers) the scrape.
	topicsMu      sync.Mutex
	cachedTopics  []collector.Topic
	topicsFetched time.Time
}

// topicsCacheTTL matches the snapshot read cache.
const topicsCacheTTL = 5 * time.Minute

func NewServer(store snapshot.Store, agg *feed.Aggregator, m *mailer.Mailer, dates DateLister) *Server {
	return &Server{
		store:  store,
		agg:    agg,
		mailer: m,
		dates:  dates,
		topics: collector.FetchTrendingTopics,
		now:    time.Now,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/", s.index)
	r.GET("/api/posts", s.apiPosts)
	r.GET("/api/dates", s.apiDates)
	r.GET("/send-test-email", s.sendTestEmail)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveFeed walks the read chain: requested date's snapshot, then the
// "latest" snapshot, then a live aggregation run. The date defaults to the
// current UTC date. The date comes straight off the query string, so
// anything that is not YYYY-MM-DD is never used as a snapshot key.
func (s *Server) resolveFeed(ctx context.Context, date string) ([]feed.Post, string) {
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}

	if snapshot.IsDateKey(date) {
		if posts, ok := s.readSnapshot(ctx, date); ok {
			return posts, date
		}
	}
	if posts, ok := s.readSnapshot(ctx, snapshot.KeyLatest); ok {
		return posts, snapshot.KeyLatest
	}

	posts, _ := s.agg.LoadFeed(ctx)
	return posts, "live"
}

func (s *Server) readSnapshot(ctx context.Context, key string) ([]feed.Post, bool) {
	if s.store == nil {
		return nil, false
	}
	payload, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			log.Printf("web: snapshot %s read error: %v", key, err)
		}
		return nil, false
	}
	var posts []feed.Post
	if err := json.Unmarshal(payload, &posts); err != nil {
		log.Printf("web: snapshot %s malformed: %v", key, err)
		return nil, false
	}
	return posts, true
}

func (s *Server) trendingTopics() []collector.Topic {
	s.topicsMu.Lock()
	defer s.topicsMu.Unlock()

	if !s.topicsFetched.IsZero() && s.now().Sub(s.topicsFetched) < topicsCacheTTL {
		return s.cachedTopics
	}
	s.cachedTopics = s.topics()
	s.topicsFetched = s.now()
	return s.cachedTopics
}

func (s *Server) index(c *gin.Context) {
	posts, servedFrom := s.resolveFeed(c.Request.Context(), c.Query("date"))

	var dates []string
	if s.dates != nil {
		if ds, err := s.dates.ListDates(31); err == nil {
			dates = ds
		}
	} else if s.store != nil {
		if ds, err := s.store.ListKeys(c.Request.Context()); err == nil {
			dates = ds
		}
	}

	c.HTML(http.StatusOK, "feed.html", gin.H{
		"Posts":      posts,
		"Dates":      dates,
		"Topics":     s.trendingTopics(),
		"ServedFrom": servedFrom,
		"Date":       s.now().UTC().Format("January 2, 2006"),
	})
}

// apiPosts returns the published feed as a plain JSON array, the same
// payload a snapshot holds.
func (s *Server) apiPosts(c *gin.Context) {
	posts, _ := s.resolveFeed(c.Request.Context(), c.Query("date"))
	c.JSON(http.StatusOK, posts)
}

func (s *Server) apiDates(c *gin.Context) {
	var (
		dates []string
		err   error
	)
	if s.dates != nil {
		dates, err = s.dates.ListDates(31)
	} else if s.store != nil {
		dates, err = s.store.ListKeys(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    dates,
	})
}

// sendTestEmail triggers an on-demand digest from a live aggregation run.
func (s *Server) sendTestEmail(c *gin.Context) {
	if s.mailer == nil {
		c.String(http.StatusServiceUnavailable, "Email is not configured.")
		return
	}

	posts, _ := s.agg.LoadFeed(c.Request.Context())
	if err := s.mailer.Send(posts); err != nil {
		log.Printf("web: test email failed: %v", err)
		c.String(http.StatusInternalServerError, "Sending test email failed: %v", err)
		return
	}
	c.String(http.StatusOK, "Test email sent! Check your inbox.")
}

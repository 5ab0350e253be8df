package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode"
)

const (
	redditBaseURL          = "https://www.reddit.com"
	redditPerSubLimit      = 50
	redditMaxResponseBytes = 4 << 20 // 4MB
	redditDefaultUserAgent = "skinfeed/1.0"
)

// defaultSubreddits are the AI-skincare communities the feed watches.
var defaultSubreddits = []string{
	"SkincareAddiction",
	"AsianBeauty",
	"SkincareAddicts",
	"30PlusSkinCare",
}

// aiKeywords narrow subreddit hot lists down to AI-skincare discussions.
var aiKeywords = []string{
	"ai", "artificial intelligence", "skin analysis", "app", "technology",
	"scanner", "diagnostic", "personalized", "algorithm", "smart mirror",
	"virtual", "digital", "automated", "machine learning",
}

// RedditFetcher pulls hot threads from public subreddit JSON listings and
// keeps the ones matching the AI-skincare keyword list.
type RedditFetcher struct {
	Subreddits []string
	UserAgent  string

	client  *http.Client
	baseURL string
}

func NewReddit(userAgent string) *RedditFetcher {
	if userAgent == "" {
		userAgent = redditDefaultUserAgent
	}
	return &RedditFetcher{
		Subreddits: defaultSubreddits,
		UserAgent:  userAgent,
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    redditBaseURL,
	}
}

func (r *RedditFetcher) Name() string {
	return "reddit"
}

func (r *RedditFetcher) Fetch(ctx context.Context) ([]RawPost, error) {
	var (
		posts   []RawPost
		lastErr error
	)

	for _, sub := range r.Subreddits {
		items, err := r.fetchSubreddit(ctx, sub)
		if err != nil {
			log.Printf("reddit: r/%s: %v", sub, err)
			lastErr = err
			continue
		}
		posts = append(posts, items...)
	}

	// Only report failure when no subreddit contributed anything, so one
	// flaky community does not mark the whole platform as degraded.
	if len(posts) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return posts, nil
}

func (r *RedditFetcher) fetchSubreddit(ctx context.Context, subreddit string) ([]RawPost, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.baseURL, subreddit, redditPerSubLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(io.LimitReader(resp.Body, redditMaxResponseBytes)).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	posts := make([]RawPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		p := child.Data
		if !matchesAIKeywords(p.Title + " " + p.Selftext) {
			continue
		}

		posts = append(posts, RawPost{
			"title":       p.Title,
			"author":      p.Author,
			"url":         redditBaseURL + p.Permalink,
			"score":       p.Score,
			"comments":    p.NumComments,
			"engagement":  p.Score + p.NumComments,
			"source":      "Reddit",
			"subreddit":   subreddit,
			"content":     p.Selftext,
			"created_utc": time.Unix(int64(p.CreatedUTC), 0).UTC().Format(time.RFC3339),
		})
	}
	return posts, nil
}

func matchesAIKeywords(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range aiKeywords {
		// Phrases match as substrings; single words need word boundaries,
		// otherwise "ai" matches inside "hair" or "grail".
		if strings.Contains(kw, " ") {
			if strings.Contains(text, kw) {
				return true
			}
			continue
		}
		if containsWord(text, kw) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, f := range fields {
		if f == word {
			return true
		}
	}
	return false
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

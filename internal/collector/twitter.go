package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"time"
)

const (
	twitterBaseURL          = "https://api.twitter.com"
	twitterDumpFile         = "twitter_apify_posts.json"
	twitterSearchQuery      = `("ai skincare" OR "skin analysis app" OR "ai skin") -is:retweet lang:en`
	twitterMaxResults       = 20
	twitterMaxResponseBytes = 2 << 20
)

// TwitterFetcher prefers a cached scrape dump and falls back to the v2
// recent-search API when a bearer token is configured. Twitter engagement
// counts retweets and quotes on top of likes and replies; the other
// platforms only have score+comments. That asymmetry is deliberate.
type TwitterFetcher struct {
	DumpDir     string
	BearerToken string

	client  *http.Client
	baseURL string
}

func NewTwitter(dumpDir, bearerToken string) *TwitterFetcher {
	return &TwitterFetcher{
		DumpDir:     dumpDir,
		BearerToken: bearerToken,
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     twitterBaseURL,
	}
}

func (t *TwitterFetcher) Name() string {
	return "twitter"
}

func (t *TwitterFetcher) Fetch(ctx context.Context) ([]RawPost, error) {
	posts, err := loadDump(filepath.Join(t.DumpDir, twitterDumpFile))
	if err != nil {
		return nil, err
	}
	if len(posts) > 0 {
		log.Printf("twitter: loaded %d posts from cached scrape", len(posts))
		return posts, nil
	}

	if t.BearerToken == "" {
		log.Println("twitter: no cached posts and no bearer token, skipping")
		return nil, nil
	}
	return t.searchRecent(ctx)
}

func (t *TwitterFetcher) searchRecent(ctx context.Context) ([]RawPost, error) {
	q := url.Values{}
	q.Set("query", twitterSearchQuery)
	q.Set("max_results", fmt.Sprintf("%d", twitterMaxResults))
	q.Set("tweet.fields", "public_metrics,created_at,author_id")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "username")

	reqURL := t.baseURL + "/2/tweets/search/recent?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("twitter: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.BearerToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter: search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter: search status %d", resp.StatusCode)
	}

	var sr twitterSearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, twitterMaxResponseBytes)).Decode(&sr); err != nil {
		return nil, fmt.Errorf("twitter: decode search: %w", err)
	}

	usernames := make(map[string]string, len(sr.Includes.Users))
	for _, u := range sr.Includes.Users {
		usernames[u.ID] = u.Username
	}

	posts := make([]RawPost, 0, len(sr.Data))
	for _, tw := range sr.Data {
		author := usernames[tw.AuthorID]
		if author == "" {
			author = tw.AuthorID
		}
		m := tw.PublicMetrics
		posts = append(posts, RawPost{
			"title":       truncateTitle(tw.Text),
			"author":      author,
			"url":         fmt.Sprintf("https://x.com/%s/status/%s", author, tw.ID),
			"score":       m.LikeCount,
			"comments":    m.ReplyCount,
			"engagement":  m.LikeCount + m.ReplyCount + m.RetweetCount + m.QuoteCount,
			"source":      "Twitter",
			"content":     tw.Text,
			"created_utc": tw.CreatedAt,
		})
	}
	return posts, nil
}

// truncateTitle shortens tweet text into a headline.
func truncateTitle(s string) string {
	const max = 80
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max]) + "…"
}

type twitterSearchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		AuthorID      string `json:"author_id"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			LikeCount    int `json:"like_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTwitterPrefersCachedDump(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, twitterDumpFile, `[
		{"title":"cached tweet","score":300,"comments":12,"engagement":410,"source":"Twitter"}
	]`)

	// No bearer token and no server: the dump must be enough.
	tw := NewTwitter(dir, "")
	posts, err := tw.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(posts) != 1 || posts[0]["title"] != "cached tweet" {
		t.Fatalf("expected cached dump posts, got %v", posts)
	}
}

func TestTwitterWithoutDumpOrTokenIsEmpty(t *testing.T) {
	tw := NewTwitter(t.TempDir(), "")
	posts, err := tw.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty contribution, got %v", posts)
	}
}

func TestTwitterSearchParsesMetricsAndAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/tweets/search/recent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token123" {
			t.Errorf("bearer token not set: %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [{
				"id": "111",
				"text": "AI skincare scanner actually works",
				"author_id": "u1",
				"created_at": "2026-08-20T08:00:00.000Z",
				"public_metrics": {"retweet_count": 40, "reply_count": 25, "like_count": 600, "quote_count": 5}
			}],
			"includes": {"users": [{"id": "u1", "username": "derma_dev"}]}
		}`))
	}))
	defer srv.Close()

	tw := &TwitterFetcher{
		DumpDir:     t.TempDir(),
		BearerToken: "token123",
		client:      &http.Client{Timeout: 5 * time.Second},
		baseURL:     srv.URL,
	}

	posts, err := tw.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}

	p := posts[0]
	if p["score"] != 600 || p["comments"] != 25 {
		t.Fatalf("metrics wrong: score=%v comments=%v", p["score"], p["comments"])
	}
	// Twitter engagement adds retweets and quotes on top of score+comments.
	if p["engagement"] != 670 {
		t.Fatalf("engagement = %v, want 600+25+40+5 = 670", p["engagement"])
	}
	if p["author"] != "derma_dev" {
		t.Fatalf("author = %v, want resolved username", p["author"])
	}
	if p["url"] != "https://x.com/derma_dev/status/111" {
		t.Fatalf("url wrong: %v", p["url"])
	}
	if p["source"] != "Twitter" {
		t.Fatalf("source = %v", p["source"])
	}
}

func TestTruncateTitle(t *testing.T) {
	short := "short tweet"
	if got := truncateTitle(short); got != short {
		t.Fatalf("short text must pass through, got %q", got)
	}

	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}
	got := truncateTitle(string(long))
	if len([]rune(got)) != 81 { // 80 runes + ellipsis
		t.Fatalf("truncated length = %d runes, want 81", len([]rune(got)))
	}
}

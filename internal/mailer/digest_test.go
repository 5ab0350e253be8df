package mailer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/skinsight/skinfeed/internal/feed"
	"gopkg.in/gomail.v2"
)

func digestPosts(n int) []feed.Post {
	posts := make([]feed.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, feed.Post{
			Title:      fmt.Sprintf("Post %02d", i),
			Author:     "author",
			URL:        fmt.Sprintf("https://example.com/%d", i),
			Score:      1000 - i,
			Comments:   10,
			Engagement: 1010 - i,
			Source:     "Reddit",
		})
	}
	return posts
}

func TestBuildHTMLEmbedsTopFifteenOnly(t *testing.T) {
	posts := digestPosts(20)
	html, err := BuildHTML(posts, time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}

	if !strings.Contains(html, "Post 14") {
		t.Fatalf("15th post missing from digest")
	}
	if strings.Contains(html, "Post 15") {
		t.Fatalf("digest must embed at most %d posts", digestMaxPosts)
	}
}

func TestBuildHTMLStatsCoverFullFeed(t *testing.T) {
	posts := []feed.Post{
		{Title: "a", Source: "Reddit", Engagement: 1000},
		{Title: "b", Source: "Twitter", Engagement: 500},
		{Title: "c", Source: "Reddit", Engagement: 234},
	}

	html, err := BuildHTML(posts, time.Now())
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}

	// 1734 total engagement, comma formatted.
	if !strings.Contains(html, "1,734") {
		t.Fatalf("total engagement missing or unformatted")
	}
	// 2 distinct sources.
	if !strings.Contains(html, `<div class="stat-number">2</div>`) {
		t.Fatalf("distinct source count missing")
	}
	// 3 posts overall.
	if !strings.Contains(html, `<div class="stat-number">3</div>`) {
		t.Fatalf("post count missing")
	}
}

func TestBuildHTMLTruncatesContent(t *testing.T) {
	long := strings.Repeat("a", 400)
	posts := []feed.Post{{Title: "t", Source: "Reddit", Content: long, Engagement: 1}}

	html, err := BuildHTML(posts, time.Now())
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}
	if strings.Contains(html, long) {
		t.Fatalf("content should be truncated at %d runes", digestContentRunes)
	}
	if !strings.Contains(html, strings.Repeat("a", digestContentRunes)+"...") {
		t.Fatalf("truncated content with ellipsis missing")
	}
}

func TestBuildHTMLUsesSourceBadges(t *testing.T) {
	posts := []feed.Post{
		{Title: "t", Source: "LinkedIn", Engagement: 1},
	}
	html, err := BuildHTML(posts, time.Now())
	if err != nil {
		t.Fatalf("BuildHTML: %v", err)
	}
	if !strings.Contains(html, "badge-linkedin") {
		t.Fatalf("source badge class missing")
	}
}

func TestSendSkipsEmptyFeed(t *testing.T) {
	m := New("smtp.example.com", 587, "u", "p", "from@example.com", "to@example.com")
	called := false
	m.send = func(*gomail.Message) error {
		called = true
		return nil
	}

	if err := m.Send(nil); err != nil {
		t.Fatalf("Send on empty feed must not error: %v", err)
	}
	if called {
		t.Fatalf("no mail should go out for an empty feed")
	}
}

func TestSendSubjectIncludesDate(t *testing.T) {
	m := New("smtp.example.com", 587, "u", "p", "from@example.com", "to@example.com")
	m.now = func() time.Time { return time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC) }

	var subject string
	m.send = func(msg *gomail.Message) error {
		subject = msg.GetHeader("Subject")[0]
		return nil
	}

	if err := m.Send(digestPosts(1)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(subject, "Aug 24, 2026") {
		t.Fatalf("subject missing date: %q", subject)
	}
}

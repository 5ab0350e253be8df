package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

// A small helper service that renders a JavaScript-heavy social page in a
// headless browser and emits post records in the cached-dump shape the
// feed adapters read (twitter_apify_posts.json and friends). Operators
// point it at a search/hashtag page and save the response next to the
// aggregator.

type captureRequest struct {
	URL      string `json:"url"`
	Source   string `json:"source"`
	MaxPosts int    `json:"maxPosts"`
}

type capturedPost struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	URL        string `json:"url"`
	Score      int    `json:"score"`
	Comments   int    `json:"comments"`
	Engagement int    `json:"engagement"`
	Source     string `json:"source"`
	Content    string `json:"content"`
	CreatedUTC string `json:"created_utc"`
}

type captureResponse struct {
	OK    bool           `json:"ok"`
	Posts []capturedPost `json:"posts,omitempty"`
	Error string         `json:"error,omitempty"`
}

func main() {
	// One headless instance for the whole process; each request gets its
	// own timeout context on top of it.
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx); err != nil {
		log.Printf("warn: warmup chromedp failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/capture", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req captureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, captureResponse{OK: false, Error: "invalid json"})
			return
		}
		if req.URL == "" {
			writeJSON(w, http.StatusBadRequest, captureResponse{OK: false, Error: "url is required"})
			return
		}
		if req.Source == "" {
			req.Source = "Unknown"
		}
		if req.MaxPosts <= 0 || req.MaxPosts > 50 {
			req.MaxPosts = 20
		}

		ctx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
		defer cancel()

		var rawPosts []map[string]any
		err := chromedp.Run(ctx,
			chromedp.Navigate(req.URL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(2*time.Second), // let lazy post lists render
			chromedp.Evaluate(captureJS(), &rawPosts),
		)
		if err != nil {
			log.Printf("capture error: %v (url=%s)", err, req.URL)
			writeJSON(w, http.StatusOK, captureResponse{OK: false, Error: err.Error()})
			return
		}

		posts := toCapturedPosts(rawPosts, req.Source, req.MaxPosts)
		if len(posts) == 0 {
			writeJSON(w, http.StatusOK, captureResponse{OK: false, Error: "no posts found"})
			return
		}
		writeJSON(w, http.StatusOK, captureResponse{OK: true, Posts: posts})
	})

	addr := ":" + getEnv("PORT", "4000")
	log.Printf("browser-scraper listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

func toCapturedPosts(raw []map[string]any, source string, max int) []capturedPost {
	now := time.Now().UTC().Format(time.RFC3339)
	posts := make([]capturedPost, 0, len(raw))
	for _, m := range raw {
		p := capturedPost{
			Title:      asString(m["title"]),
			Author:     asString(m["author"]),
			URL:        asString(m["url"]),
			Score:      asInt(m["score"]),
			Comments:   asInt(m["comments"]),
			Source:     source,
			Content:    asString(m["content"]),
			CreatedUTC: now,
		}
		if p.Title == "" && p.Content == "" {
			continue
		}
		p.Engagement = p.Score + p.Comments
		posts = append(posts, p)
		if len(posts) >= max {
			break
		}
	}
	return posts
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	f, _ := v.(float64)
	if f < 0 {
		return 0
	}
	return int(f)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// captureJS walks post-like containers on the rendered page and pulls out
// text, links and whatever counters are visible. Selectors cover the
// common article/list layouts; pages without them yield an empty array.
func captureJS() string {
	return `(function () {
  function text(el, sel) {
    var n = sel ? el.querySelector(sel) : el;
    return n ? (n.innerText || "").trim() : "";
  }
  function num(s) {
    var m = (s || "").replace(/,/g, "").match(/([\d.]+)\s*([kKmM]?)/);
    if (!m) return 0;
    var v = parseFloat(m[1]);
    if (m[2] === "k" || m[2] === "K") v *= 1000;
    if (m[2] === "m" || m[2] === "M") v *= 1000000;
    return Math.round(v);
  }

  var selectors = ["article", "div[data-testid='tweet']", "div.feed-shared-update-v2", "li.post", "div.post"];
  var nodes = [];
  for (var i = 0; i < selectors.length && nodes.length === 0; i++) {
    nodes = Array.prototype.slice.call(document.querySelectorAll(selectors[i]));
  }

  var posts = [];
  for (var j = 0; j < nodes.length; j++) {
    var el = nodes[j];
    var body = text(el);
    if (body.length < 20) continue;

    var link = el.querySelector("a[href*='/status/'], a[href*='/p/'], a[href*='/posts/'], a[href*='/comments/']");
    var counters = Array.prototype.slice.call(
      el.querySelectorAll("[aria-label*='like' i], [aria-label*='repl' i], [aria-label*='comment' i]"));

    var score = 0, comments = 0;
    for (var k = 0; k < counters.length; k++) {
      var label = counters[k].getAttribute("aria-label") || "";
      if (/like/i.test(label)) score = num(label);
      if (/repl|comment/i.test(label)) comments = num(label);
    }

    posts.push({
      title: body.split("\n")[0].slice(0, 120),
      author: text(el, "a[href^='/'] span, span.feed-shared-actor__name, [data-testid='User-Name']"),
      url: link ? link.href : location.href,
      score: score,
      comments: comments,
      content: body.slice(0, 1000)
    });
  }
  return posts;
})();`
}

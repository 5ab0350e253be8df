package collector

import (
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const (
	topicsURL          = "https://trends24.in/"
	topicsMaxItems     = 10
	topicsMaxBodyBytes = 2 << 20
)

// beautyTopicKeywords pick skincare/beauty-adjacent trends out of the
// global list for the sidebar.
var beautyTopicKeywords = []string{
	"skin", "skincare", "beauty", "derm", "glow", "serum", "spf",
	"retinol", "cosmetic", "makeup", "ai",
}

// Topic is one trending topic shown in the web sidebar. Topics are a side
// signal only; they never enter the ranked feed.
type Topic struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Rank  int    `json:"rank"`
}

// FetchTrendingTopics scrapes the global X trend list and keeps
// beauty-adjacent entries. Best effort: any failure yields an empty list.
func FetchTrendingTopics() []Topic {
	list := topicsWithColly()
	if len(list) == 0 {
		list = topicsWithHTTP()
	}
	if len(list) == 0 {
		log.Println("topics: no trending topics scraped")
		return nil
	}
	if len(list) > topicsMaxItems {
		list = list[:topicsMaxItems]
	}
	return list
}

func topicsWithColly() []Topic {
	c := colly.NewCollector(
		colly.AllowedDomains("trends24.in", "www.trends24.in"),
		colly.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	c.SetRequestTimeout(15 * time.Second)

	var list []Topic
	seen := make(map[string]bool)

	c.OnHTML("ol.trend-card__list li", func(e *colly.HTMLElement) {
		title, ok := trendTitle(e.DOM)
		if !ok || seen[strings.ToLower(title)] {
			return
		}
		if !matchesBeautyTopic(title) {
			return
		}
		seen[strings.ToLower(title)] = true
		list = append(list, Topic{
			Title: title,
			URL:   searchURL(title),
			Rank:  len(list) + 1,
		})
	})

	if err := c.Visit(topicsURL); err != nil {
		log.Printf("topics: colly visit failed: %v", err)
		return nil
	}
	return list
}

// trendTitle extracts the topic text from a trend list item, preferring
// the anchor text over the raw list-item text (which may carry counts).
func trendTitle(sel *goquery.Selection) (string, bool) {
	title := strings.TrimSpace(sel.Find("a").First().Text())
	if title == "" {
		title = strings.TrimSpace(sel.Text())
	}
	if title == "" {
		return "", false
	}
	return title, true
}

var topicAnchorRe = regexp.MustCompile(`<li[^>]*>\s*<a[^>]*>([^<]+)</a>`)

// topicsWithHTTP is the fallback parser for when the colly pass comes back
// empty (page variant without the expected list classes).
func topicsWithHTTP() []Topic {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(topicsURL)
	if err != nil {
		log.Printf("topics: http fallback failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, topicsMaxBodyBytes))
	if err != nil {
		return nil
	}

	var list []Topic
	seen := make(map[string]bool)
	for _, m := range topicAnchorRe.FindAllStringSubmatch(string(body), -1) {
		title := strings.TrimSpace(m[1])
		if title == "" || seen[strings.ToLower(title)] || !matchesBeautyTopic(title) {
			continue
		}
		seen[strings.ToLower(title)] = true
		list = append(list, Topic{Title: title, URL: searchURL(title), Rank: len(list) + 1})
	}
	return list
}

func matchesBeautyTopic(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range beautyTopicKeywords {
		// Hashtags run words together, so longer keywords match as
		// substrings. "ai" is too short for that; require a whole word.
		if kw == "ai" {
			if containsWord(t, kw) {
				return true
			}
			continue
		}
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func searchURL(topic string) string {
	return "https://x.com/search?q=" + url.QueryEscape(topic)
}

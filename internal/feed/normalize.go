package feed

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/skinsight/skinfeed/internal/collector"
)

// Defaults substituted for missing or uncoercible fields.
const (
	defaultAuthor = "Unknown"
	defaultURL    = "#"
	defaultTitle  = "Untitled"
)

// Normalize coerces heterogeneous raw records into canonical Posts.
// A record that is not an object at all is skipped with a warning; a record
// with missing or wrongly-typed fields gets defaults instead. One bad record
// never aborts the batch. Normalization is idempotent: feeding it records
// that already have the canonical shape yields the same posts.
func Normalize(raw []collector.RawPost) []Post {
	out := make([]Post, 0, len(raw))
	for i, r := range raw {
		if len(r) == 0 {
			log.Printf("normalize: skip record %d: not an object", i)
			continue
		}

		score := intField(r, "score")
		comments := intField(r, "comments")

		engagement := score + comments
		if v, ok := lookupInt(r, "engagement"); ok {
			// Adapters define their own engagement formula (Twitter adds
			// retweets and quotes); an explicit value always wins.
			engagement = v
		}

		out = append(out, Post{
			Title:      stringField(r, "title", defaultTitle),
			Author:     stringField(r, "author", defaultAuthor),
			URL:        stringField(r, "url", defaultURL),
			Score:      score,
			Comments:   comments,
			Engagement: engagement,
			Source:     stringField(r, "source", ""),
			Content:    stringField(r, "content", ""),
			CreatedUTC: stringField(r, "created_utc", ""),
		})
	}
	return out
}

func stringField(r collector.RawPost, key, def string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// intField returns the field coerced to a non-negative int, or 0.
func intField(r collector.RawPost, key string) int {
	v, _ := lookupInt(r, key)
	return v
}

func lookupInt(r collector.RawPost, key string) (int, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}

	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		n = int(f)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		n = int(f)
	default:
		return 0, false
	}

	if n < 0 {
		n = 0
	}
	return n, true
}

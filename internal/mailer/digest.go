package mailer

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/skinsight/skinfeed/internal/feed"
)

// digestMaxPosts caps how many posts the email embeds; the stats above
// them still cover the full feed.
const digestMaxPosts = 15

// digestContentRunes truncates post content for the email cards.
const digestContentRunes = 300

type digestData struct {
	Date            string
	PostCount       int
	TotalEngagement string
	SourceCount     int
	Posts           []feed.Post
}

// BuildHTML renders the digest newsletter: header, summary stats (post
// count, total engagement across the whole feed, distinct sources), then
// the top posts.
func BuildHTML(posts []feed.Post, now time.Time) (string, error) {
	total := 0
	sources := make(map[string]struct{})
	for _, p := range posts {
		total += p.Engagement
		sources[p.Source] = struct{}{}
	}

	top := posts
	if len(top) > digestMaxPosts {
		top = top[:digestMaxPosts]
	}

	data := digestData{
		Date:            now.Format("Monday, January 2, 2006"),
		PostCount:       len(posts),
		TotalEngagement: humanize.Comma(int64(total)),
		SourceCount:     len(sources),
		Posts:           top,
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var digestTmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"badgeClass": func(source string) string {
		return "badge-" + strings.ToLower(source)
	},
	"snippet": func(s string) string {
		rs := []rune(s)
		if len(rs) <= digestContentRunes {
			return s
		}
		return string(rs[:digestContentRunes]) + "..."
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; background: #f8f9fa; }
  .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px; border-radius: 15px; text-align: center; margin-bottom: 30px; }
  .header h1 { margin: 0; font-size: 32px; }
  .date { opacity: 0.95; margin-top: 10px; font-size: 16px; }
  .stats { display: flex; justify-content: space-around; background: white; border-radius: 12px; padding: 25px; margin-bottom: 30px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); }
  .stat { text-align: center; }
  .stat-number { font-size: 36px; font-weight: bold; color: #667eea; }
  .stat-label { color: #666; font-size: 14px; margin-top: 5px; }
  .post-card { background: white; border-radius: 12px; padding: 25px; margin-bottom: 20px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); border-left: 4px solid #667eea; }
  .post-title { font-size: 20px; font-weight: 600; color: #333; margin-bottom: 12px; }
  .source-badge { display: inline-block; padding: 4px 12px; border-radius: 12px; font-size: 12px; font-weight: 600; margin-right: 8px; background: #667eea; color: white; }
  .badge-reddit { background: #ff4500; }
  .badge-twitter { background: #1da1f2; }
  .badge-instagram { background: #e4405f; }
  .badge-linkedin { background: #0a66c2; }
  .post-meta { color: #666; font-size: 14px; margin-bottom: 12px; }
  .engagement { background: #f0f0f0; padding: 6px 12px; border-radius: 15px; font-size: 13px; display: inline-block; }
  .engagement.high { background: #d4edda; color: #155724; }
  .post-content { color: #555; line-height: 1.6; margin: 12px 0; }
  .post-link { color: #667eea; text-decoration: none; font-weight: 500; }
  .footer { text-align: center; color: #999; padding: 30px; margin-top: 40px; border-top: 2px solid #eee; }
</style>
</head>
<body>
  <div class="header">
    <h1>AI Skincare Analysis Daily Digest</h1>
    <div class="date">{{.Date}}</div>
  </div>

  <div class="stats">
    <div class="stat">
      <div class="stat-number">{{.PostCount}}</div>
      <div class="stat-label">Hot Posts</div>
    </div>
    <div class="stat">
      <div class="stat-number">{{.TotalEngagement}}</div>
      <div class="stat-label">Total Engagement</div>
    </div>
    <div class="stat">
      <div class="stat-number">{{.SourceCount}}</div>
      <div class="stat-label">Sources</div>
    </div>
  </div>

{{range .Posts}}
  <div class="post-card">
    <span class="source-badge {{badgeClass .Source}}">{{.Source}}</span>
    <div class="post-title">{{.Title}}</div>
    <div class="post-meta">
      <span class="engagement{{if gt .Engagement 500}} high{{end}}">
        {{comma .Score}} likes &middot; {{comma .Comments}} comments &middot; {{comma .Engagement}} engagement
      </span>
      <br>
      by {{.Author}}
    </div>
    {{if .Content}}<div class="post-content">{{snippet .Content}}</div>{{end}}
    <a href="{{.URL}}" class="post-link">Read full discussion &rarr;</a>
  </div>
{{end}}

  <div class="footer">
    <p><strong>AI Skincare Analysis Feed</strong></p>
    <p>Your daily digest of trending AI-driven skincare discussions</p>
  </div>
</body>
</html>
`))

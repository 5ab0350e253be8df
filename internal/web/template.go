package web

import (
	"html/template"
	"strings"

	"github.com/dustin/go-humanize"
)

// PageTemplate returns the server-rendered feed page. It is compiled once
// here so both cmd/api and the handler tests can install it with
// gin's SetHTMLTemplate.
func PageTemplate() *template.Template {
	return pageTmpl
}

var pageTmpl = template.Must(template.New("feed.html").Funcs(template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"badgeClass": func(source string) string {
		return "badge-" + strings.ToLower(source)
	},
	"snippet": func(s string) string {
		const max = 300
		rs := []rune(s)
		if len(rs) <= max {
			return s
		}
		return string(rs[:max]) + "..."
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AI Skincare Feed</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 960px; margin: 0 auto; padding: 20px; background: #f8f9fa; }
  .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 15px; text-align: center; margin-bottom: 24px; }
  .header h1 { margin: 0; font-size: 28px; }
  .date { opacity: 0.95; margin-top: 8px; }
  .dates { margin-bottom: 20px; font-size: 14px; }
  .dates a { color: #667eea; text-decoration: none; margin-right: 10px; }
  .topics { background: white; border-radius: 12px; padding: 16px 20px; margin-bottom: 20px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); font-size: 14px; }
  .topics a { color: #667eea; text-decoration: none; margin-right: 12px; }
  .post-card { background: white; border-radius: 12px; padding: 20px; margin-bottom: 16px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); border-left: 4px solid #667eea; }
  .post-title { font-size: 18px; font-weight: 600; margin-bottom: 10px; }
  .source-badge { display: inline-block; padding: 3px 10px; border-radius: 12px; font-size: 12px; font-weight: 600; margin-right: 8px; background: #667eea; color: white; }
  .badge-reddit { background: #ff4500; }
  .badge-twitter { background: #1da1f2; }
  .badge-instagram { background: #e4405f; }
  .badge-linkedin { background: #0a66c2; }
  .post-meta { color: #666; font-size: 13px; margin-bottom: 10px; }
  .post-content { color: #555; margin: 10px 0; }
  .post-link { color: #667eea; text-decoration: none; font-weight: 500; }
  .empty { text-align: center; color: #999; padding: 60px 0; }
</style>
</head>
<body>
  <div class="header">
    <h1>AI Skincare Analysis Feed</h1>
    <div class="date">{{.Date}}{{if ne .ServedFrom "live"}} &middot; snapshot: {{.ServedFrom}}{{end}}</div>
  </div>

  {{if .Dates}}
  <div class="dates">
    Browse by date:
    {{range .Dates}}<a href="/?date={{.}}">{{.}}</a>{{end}}
  </div>
  {{end}}

  {{if .Topics}}
  <div class="topics">
    Trending now:
    {{range .Topics}}<a href="{{.URL}}">{{.Title}}</a>{{end}}
  </div>
  {{end}}

  {{if .Posts}}
  {{range .Posts}}
  <div class="post-card">
    <span class="source-badge {{badgeClass .Source}}">{{.Source}}</span>
    <div class="post-title">{{.Title}}</div>
    <div class="post-meta">
      {{comma .Score}} likes &middot; {{comma .Comments}} comments &middot; {{comma .Engagement}} engagement &middot; by {{.Author}}
    </div>
    {{if .Content}}<div class="post-content">{{snippet .Content}}</div>{{end}}
    <a href="{{.URL}}" class="post-link">Read full discussion &rarr;</a>
  </div>
  {{end}}
  {{else}}
  <div class="empty">No posts in the feed yet. Check back after the next aggregation run.</div>
  {{end}}
</body>
</html>
`))

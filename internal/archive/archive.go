// Package archive keeps a relational copy of every published post per run
// date. The snapshot store remains the source of truth for the feed; the
// archive powers date listings and lets posts be queried across runs.
package archive

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/skinsight/skinfeed/internal/feed"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ArchivedPost is one feed post as stored for a given run date.
type ArchivedPost struct {
	// ID is sha1(date|url): the same post re-published on a later date is
	// a new row, but re-running the same date stays idempotent.
	ID          string            `gorm:"primaryKey;size:40" json:"id"`
	Title       string            `gorm:"size:512" json:"title"`
	Author      string            `gorm:"size:256" json:"author"`
	URL         string            `gorm:"size:1024;index" json:"url"`
	Score       int               `json:"score"`
	Comments    int               `json:"comments"`
	Engagement  int               `gorm:"index" json:"engagement"`
	Source      string            `gorm:"size:64;index" json:"source"`
	Content     string            `gorm:"size:2000" json:"content"`
	CreatedUTC  string            `gorm:"size:64" json:"createdUtc"`
	FetchedDate string            `gorm:"size:10;index" json:"fetchedDate"`
	Extra       datatypes.JSONMap `gorm:"type:jsonb" json:"extra"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ArchivedPost) TableName() string {
	return "archived_posts"
}

type Archive struct {
	db *gorm.DB
}

func New(dsn string) (*Archive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&ArchivedPost{}); err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

// SaveBatch stores the run's feed under its date. Existing rows are
// refreshed so a re-run with newer engagement numbers updates in place.
func (a *Archive) SaveBatch(posts []feed.Post, date string) error {
	for _, p := range posts {
		row := &ArchivedPost{
			ID:          postID(date, p.URL),
			Title:       p.Title,
			Author:      p.Author,
			URL:         p.URL,
			Score:       p.Score,
			Comments:    p.Comments,
			Engagement:  p.Engagement,
			Source:      p.Source,
			Content:     truncateRunes(p.Content, 2000),
			CreatedUTC:  p.CreatedUTC,
			FetchedDate: date,
		}

		if err := a.db.Where("id = ?", row.ID).FirstOrCreate(row).Error; err != nil {
			return fmt.Errorf("archive %s: %w", p.URL, err)
		}
		_ = a.db.Model(row).Updates(map[string]any{
			"score":      p.Score,
			"comments":   p.Comments,
			"engagement": p.Engagement,
			"content":    truncateRunes(p.Content, 2000),
		}).Error
	}
	return nil
}

// ListDates returns the run dates with archived data, newest first.
func (a *Archive) ListDates(limit int) ([]string, error) {
	if limit <= 0 || limit > 365 {
		limit = 31
	}

	var rows []struct{ D string }
	err := a.db.Raw(
		`SELECT DISTINCT fetched_date AS d FROM archived_posts ORDER BY d DESC LIMIT ?`, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.D != "" {
			dates = append(dates, r.D)
		}
	}
	return dates, nil
}

func postID(date, url string) string {
	h := sha1.New()
	h.Write([]byte(date + "|" + url))
	return hex.EncodeToString(h.Sum(nil))
}

// truncateRunes caps text at the column limit without splitting a rune.
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

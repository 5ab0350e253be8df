package feed

// Post is the canonical record every adapter output is coerced into.
// JSON field names are the snapshot wire format; a snapshot is a plain
// JSON array of these objects with no envelope.
type Post struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	URL        string `json:"url"`
	Score      int    `json:"score"`
	Comments   int    `json:"comments"`
	Engagement int    `json:"engagement"`
	Source     string `json:"source"`
	Content    string `json:"content"`
	// CreatedUTC is kept verbatim from the adapter. Platforms disagree on
	// timestamp formats, so it is not required to be uniformly parseable.
	CreatedUTC string `json:"created_utc"`
}

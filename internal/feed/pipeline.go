package feed

import "sort"

// DefaultThreshold is the minimum score (exclusive) a post must exceed to
// appear in the published feed.
const DefaultThreshold = 100

// Filter keeps posts with score strictly greater than threshold. A post
// sitting exactly on the threshold is excluded. Relative order of survivors
// is unchanged.
func Filter(posts []Post, threshold int) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Score > threshold {
			out = append(out, p)
		}
	}
	return out
}

// Rank returns the posts sorted by engagement descending. The sort is
// stable, so equal-engagement posts keep their pre-sort relative order;
// with adapters invoked in a fixed order that makes the output
// reproducible across runs. The input slice is not modified.
func Rank(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Engagement > out[j].Engagement
	})
	return out
}

package collector

import "context"

// RawPost is whatever shape an upstream API or cached dump returns for one
// post. Coercion into the canonical feed schema happens once, at the
// aggregation boundary, never inside an adapter.
type RawPost map[string]any

// Fetcher abstracts a single platform adapter.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]RawPost, error)
}

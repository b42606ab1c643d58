package preview

import "context"

// Preview is the link metadata attached to posts and events that carry a URL.
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Fetcher resolves a URL to preview metadata. A nil preview with a nil error
// means the URL yielded nothing useful; callers must treat fetch errors the
// same way and never fail the parent operation over them.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Preview, error)
}

// Cache stores fetched previews keyed by URL.
type Cache interface {
	Get(ctx context.Context, url string) (*Preview, error)
	Set(ctx context.Context, url string, p *Preview) error
}

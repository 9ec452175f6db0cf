package ports

import "context"

// ImageFetcher downloads image bytes referenced by URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

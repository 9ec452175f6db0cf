package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/captionbox/pkg/ports"
)

// ImageFetcher is a mock implementation of ports.ImageFetcher serving
// canned responses by URL.
type ImageFetcher struct {
	FetchFunc func(ctx context.Context, rawURL string) ([]byte, error)

	mu        sync.Mutex
	responses map[string][]byte
	Requested []string
}

// NewImageFetcher creates a fetcher that serves responses.
func NewImageFetcher(responses map[string][]byte) *ImageFetcher {
	return &ImageFetcher{responses: responses}
}

func (m *ImageFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	m.mu.Lock()
	m.Requested = append(m.Requested, rawURL)
	m.mu.Unlock()
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, rawURL)
	}
	if data, ok := m.responses[rawURL]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("no response for %s", rawURL)
}

var _ ports.ImageFetcher = (*ImageFetcher)(nil)

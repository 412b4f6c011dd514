package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// httpTimeout bounds a single resource fetch end to end.
const httpTimeout = 30 * time.Second

// HTTPResolver resolves http:// and https:// URLs with an identifying
// User-Agent and the same size ceiling as the file strategy.
type HTTPResolver struct {
	client    *http.Client
	limit     int64
	userAgent string
}

// NewHTTPResolver creates a network resolver with the given size ceiling and
// client label (typically "program/version").
func NewHTTPResolver(limit int64, userAgent string) *HTTPResolver {
	return &HTTPResolver{
		client:    &http.Client{Timeout: httpTimeout},
		limit:     limit,
		userAgent: userAgent,
	}
}

// Resolve implements Resolver.
func (r *HTTPResolver) Resolve(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ErrNotApplicable, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := readLimited(resp.Body, r.limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return data, nil
}

var _ Resolver = (*HTTPResolver)(nil)

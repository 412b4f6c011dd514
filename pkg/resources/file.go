package resources

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
)

// FileResolver resolves file:// URLs and plain filesystem paths, honoring a
// maximum read size.
type FileResolver struct {
	limit int64
}

// NewFileResolver creates a file resolver with the given size ceiling.
func NewFileResolver(limit int64) *FileResolver {
	return &FileResolver{limit: limit}
}

// Resolve implements Resolver.
func (r *FileResolver) Resolve(ctx context.Context, rawURL string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("resolve %s: %w", rawURL, ctx.Err())
	default:
	}

	path, ok := localPath(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotApplicable, rawURL)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, r.limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// localPath extracts a filesystem path from rawURL, declining URLs with a
// non-file scheme.
func localPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Not URL-shaped at all; treat it as a plain path.
		return rawURL, true
	}

	switch u.Scheme {
	case "":
		return rawURL, true
	case "file":
		path := u.Path
		if path == "" {
			path = u.Host
		}
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
		return path, true
	default:
		// Single-letter schemes on Windows-style paths (c:\...) are paths.
		if len(u.Scheme) == 1 {
			return rawURL, true
		}
		return "", false
	}
}

// readLimited reads at most limit bytes from r, failing with ErrTooLarge
// when the source holds more.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrTooLarge, limit)
	}
	return data, nil
}

// compile-time interface check
var _ Resolver = (*FileResolver)(nil)

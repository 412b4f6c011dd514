package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/mdtty/internal/logging"
)

// Dispatcher tries an ordered chain of resolver strategies against a URL.
//
// The first strategy that resolves wins. A strategy that declines with
// ErrNotApplicable passes the URL to the next one; any other failure stops
// the dispatch and propagates.
type Dispatcher struct {
	access    Access
	resolvers []Resolver
}

// NewDispatcher creates a dispatcher over an explicit strategy chain.
// The chain owns its strategies for the lifetime of one pipeline run.
func NewDispatcher(access Access, resolvers ...Resolver) *Dispatcher {
	return &Dispatcher{access: access, resolvers: resolvers}
}

// ForAccess builds the standard chain for the given policy: the file
// strategy always, plus the network strategy when remote access is
// permitted. userAgent labels outgoing requests, typically "program/version".
func ForAccess(access Access, limit int64, userAgent string) *Dispatcher {
	resolvers := []Resolver{NewFileResolver(limit)}
	if access == Remote {
		logging.Default().Debug("remote resource access permitted",
			logging.FieldUserAgent, userAgent,
			logging.FieldLimit, limit,
		)
		resolvers = append(resolvers, NewHTTPResolver(limit, userAgent))
	}
	return NewDispatcher(access, resolvers...)
}

// Resolve implements Resolver by trying each strategy in construction order.
func (d *Dispatcher) Resolve(ctx context.Context, rawURL string) ([]byte, error) {
	for _, r := range d.resolvers {
		data, err := r.Resolve(ctx, rawURL)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, ErrNotApplicable) {
			continue
		}
		return nil, err
	}

	if d.access == LocalOnly && isRemoteURL(rawURL) {
		return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, rawURL)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, rawURL)
}

var _ Resolver = (*Dispatcher)(nil)

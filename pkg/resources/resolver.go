// Package resources turns resource URLs into bytes on behalf of the
// renderer, subject to an access policy and a per-resource size ceiling.
package resources

import (
	"context"
	"errors"
	"net/url"
)

// DefaultReadLimit is the default per-resource size ceiling in bytes.
const DefaultReadLimit = 104_857_600

// Access is the resource-access policy: whether the renderer may fetch
// remote resources such as images.
type Access int

const (
	// LocalOnly permits only local file resources.
	LocalOnly Access = iota
	// Remote additionally permits network resources.
	Remote
)

// AccessFor derives the policy from the local-only configuration flag.
func AccessFor(localOnly bool) Access {
	if localOnly {
		return LocalOnly
	}
	return Remote
}

// String implements fmt.Stringer for log output.
func (a Access) String() string {
	if a == LocalOnly {
		return "local-only"
	}
	return "remote"
}

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotApplicable signals that a resolver does not handle the URL's
	// scheme or shape; the dispatcher moves on to the next strategy.
	ErrNotApplicable = errors.New("resolver not applicable")

	// ErrRemoteDisabled is returned for URLs only a network strategy could
	// resolve while the policy is LocalOnly.
	ErrRemoteDisabled = errors.New("remote resource access disabled")

	// ErrTooLarge is returned when a resource exceeds the size ceiling.
	// Exceeding the ceiling is a failure, never a silent truncation.
	ErrTooLarge = errors.New("resource exceeds size limit")

	// ErrUnsupportedScheme is returned when no strategy in the chain
	// handles the URL.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// Resolver is one strategy for turning a URL into bytes.
//
// Resolve returns the resource content, ErrNotApplicable when the strategy
// does not handle the URL at all, or any other error for a genuine failure
// (which stops the dispatch; failures never fall through to later
// strategies).
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) ([]byte, error)
}

// isRemoteURL reports whether only a network strategy could resolve rawURL.
func isRemoteURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return true
	}
	return false
}

package feed

import (
	"fmt"
)

// SourceError reports a feed source whose URL is missing from the
// configuration at sync time.
type SourceError struct {
	Category string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("feed URL is not configured for source %q", e.Category)
}

// InvalidURLError reports a feed URL that is rejected before any network
// call is made.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid feed URL %q: scheme must be http or https", e.URL)
}

// FetchError reports a non-2xx HTTP response from a feed source.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed %s: HTTP %d %s", e.URL, e.StatusCode, e.Status)
}

// NetworkError reports a transport-level failure (DNS, timeout, connection
// reset) while fetching a feed source.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching feed %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports malformed feed markup. The underlying parser message
// is preserved, never replaced with a generic one.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse feed: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse feed: %s", e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

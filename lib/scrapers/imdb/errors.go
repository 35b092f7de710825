package imdb

import "fmt"

// ErrInvalidSource means the base url does not resolve to a recognizable
// show page at all. It is the only fatal failure the fetch layer
// produces besides an unreachable episode index.
var ErrInvalidSource = fmt.Errorf("url does not resolve to a recognizable show page")

// FetchError is a non-fatal per-season failure: network error, timeout
// or non-2xx response. The season it belongs to is carried so callers
// can surface "season N failed" warnings.
type FetchError struct {
	Season int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch season %d: %s", e.Season, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError is a non-fatal per-season failure: the page fetched fine
// but its structure is not recognizable as an episode listing.
type ParseError struct {
	Season int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse season %d: %s", e.Season, e.Reason)
}

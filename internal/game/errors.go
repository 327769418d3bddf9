package game

import (
	"errors"
	"fmt"
)

// ErrNotFoundOrChanged means no extraction strategy matched the page: the game
// does not exist or the page layout changed. Callers should skip, not retry.
var ErrNotFoundOrChanged = errors.New("page not found or layout changed")

// ErrMalformedKey is returned when a box URL lacks a usable game number,
// year or kind.
var ErrMalformedKey = errors.New("malformed game key")

// TransportError captures a failed page retrieval.
// A non-zero StatusCode means the server answered with a failure status;
// otherwise Err holds the network-level cause.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether the server responded with a failure status
func (e *TransportError) IsStatus() bool {
	return e.StatusCode > 0
}

// IsNetwork reports whether the request could not complete
func (e *TransportError) IsNetwork() bool {
	return e.StatusCode == 0
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

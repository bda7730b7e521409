package catalog

import (
	"errors"
	"fmt"
)

// ErrNetwork matches every fetch failure via errors.Is.
var ErrNetwork = errors.New("catalog: network error")

// ErrNoPageRef is returned when FetchPage is called without a page reference.
var ErrNoPageRef = errors.New("catalog: empty page reference")

// NetworkError describes a failed listing or detail request.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Op         string // "list" or "detail"
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s %s: HTTP %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrNetwork) match any NetworkError.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

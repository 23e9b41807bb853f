package cms

import "fmt"

// TransportError covers network failures, non-2xx answers and bodies that
// cannot be decoded.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cms: %s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("cms: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

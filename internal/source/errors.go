package source

import "fmt"

// Kind classifies an adapter failure. The orchestrator's handling policy is
// decided by kind, not re-derived from log text.
type Kind int

const (
	// ClientRejected: the provider declined the request itself for this
	// instrument/window. Expected for some listings, not retried within
	// the run.
	ClientRejected Kind = iota

	// Transient: network failure or upstream 5xx. Not retried within the
	// run either; the next run covers the gap via its two-day window.
	Transient

	// Malformed: a response arrived but could not be decoded.
	Malformed
)

func (k Kind) String() string {
	switch k {
	case ClientRejected:
		return "client_rejected"
	case Transient:
		return "transient"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is a classified failure from a source adapter.
type FetchError struct {
	Kind       Kind
	StatusCode int // >0 when an HTTP status was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Classify maps a non-2xx HTTP status to a FetchError. Only 400 means the
// provider rejected the request for this instrument; everything else is
// treated as transient.
func Classify(status int, err error) *FetchError {
	kind := Transient
	if status == 400 {
		kind = ClientRejected
	}
	return &FetchError{Kind: kind, StatusCode: status, Err: err}
}

// Transientf wraps a network-level failure.
func Transientf(format string, args ...any) *FetchError {
	return &FetchError{Kind: Transient, Err: fmt.Errorf(format, args...)}
}

// Malformedf wraps a decode failure.
func Malformedf(format string, args ...any) *FetchError {
	return &FetchError{Kind: Malformed, Err: fmt.Errorf(format, args...)}
}

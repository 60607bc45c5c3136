package audio

import (
	"errors"
	"fmt"
)

// FormatWAV is the container every provider returns
const FormatWAV = "wav"

// Request is one synthesis call
type Request struct {
	Text string

	// Language is accepted for every provider but the inference endpoint
	// does not receive it. The hosted model has no language selector.
	Language string
}

// Result is the outcome of a request that reached the backend.
//
// On success StatusCode is 200 and Audio holds the body. On any other
// status Audio is nil. A request that never produced a response has no
// Result at all.
type Result struct {
	StatusCode int
	Text       string
	Audio      []byte
	Format     string
}

// OK reports whether the backend answered with audio
func (r *Result) OK() bool {
	return r != nil && r.StatusCode == 200 && r.Audio != nil
}

// ErrorKind classifies a failed request
type ErrorKind int

const (
	// KindTransport means no response was received
	KindTransport ErrorKind = iota + 1
	// KindStatus means the backend answered with a non-200 status
	KindStatus
	// KindResponse means the response body could not be read
	KindResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// SpeechError is returned by every provider when a request fails
type SpeechError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Err        error
}

func (e *SpeechError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Err != nil {
			return fmt.Sprintf("%s: status code %d: %v", e.Provider, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("%s: status code %d", e.Provider, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
	}
}

func (e *SpeechError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a SpeechError in err's chain, or 0
func KindOf(err error) ErrorKind {
	var se *SpeechError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsStatus reports whether err is a non-200 response
func IsStatus(err error) bool {
	return KindOf(err) == KindStatus
}

// IsTransport reports whether err is a failure to reach the backend
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// StatusCode extracts the response status from err
func StatusCode(err error) (int, bool) {
	var se *SpeechError
	if errors.As(err, &se) && se.Kind == KindStatus {
		return se.StatusCode, true
	}
	return 0, false
}

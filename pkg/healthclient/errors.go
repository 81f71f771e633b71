package healthclient

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failed health request.
type Kind int

const (
	// NetworkError means the request never produced a response.
	NetworkError Kind = iota + 1
	// TimeoutError means the per-request deadline fired.
	TimeoutError
	// HTTPError means the server answered with a non-2xx status.
	HTTPError
	// DecodeError means a 2xx body could not be decoded.
	DecodeError
)

func (k Kind) String() string {
	switch k {
	case NetworkError:
		return "network"
	case TimeoutError:
		return "timeout"
	case HTTPError:
		return "http"
	case DecodeError:
		return "decode"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrNetwork    = errors.New("network error")
	ErrTimeout    = errors.New("request timed out")
	ErrHTTPStatus = errors.New("health check failed")
	ErrDecode     = errors.New("invalid health response")
)

// Error is returned by every Client method.
type Error struct {
	Kind Kind
	// StatusCode is set for HTTPError.
	StatusCode int
	Err        error
	timeout    time.Duration
}

func (e *Error) Error() string {
	switch e.Kind {
	case HTTPError:
		return fmt.Sprintf("health check failed: %d", e.StatusCode)
	case TimeoutError:
		return fmt.Sprintf("request timed out after %s", e.timeout)
	case DecodeError:
		return fmt.Sprintf("invalid health response: %v", e.Err)
	default:
		return fmt.Sprintf("network error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case NetworkError:
		return ErrNetwork
	case TimeoutError:
		return ErrTimeout
	case HTTPError:
		return ErrHTTPStatus
	case DecodeError:
		return ErrDecode
	default:
		return nil
	}
}

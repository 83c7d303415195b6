package lexapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies a failed API call.
type ErrorKind string

const (
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindTimeout            ErrorKind = "timeout"
	KindHTTP               ErrorKind = "http"
	KindUnknown            ErrorKind = "unknown"
)

// ErrUnauthorized matches (via errors.Is) any APIError carrying HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is the single shape every client failure is reported in.
// Status is zero when no HTTP response was received.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Normalize converts any error into an APIError. Errors that already are
// APIErrors (possibly wrapped) are returned as is.
func Normalize(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return transportError(err)
}

func transportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTimeout, Message: "the server did not respond in time", Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: "the server did not respond in time", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &APIError{Kind: KindUnknown, Message: "request canceled", Err: err}
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return &APIError{Kind: KindNetworkUnavailable, Message: "network unavailable", Err: err}
	}
	return &APIError{Kind: KindUnknown, Message: err.Error(), Err: err}
}

func isRetryable(err *APIError) bool {
	return err.Status == http.StatusTooManyRequests || err.Status >= 500
}

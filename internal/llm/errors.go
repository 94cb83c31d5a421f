package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrUnavailable     = errors.New("llm provider unavailable")
	ErrRateLimited     = errors.New("llm rate limited")
	ErrInvalidResponse = errors.New("invalid llm response")
	ErrTruncated       = errors.New("llm response truncated at max tokens")
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	KindUnavailable ErrorKind = iota
	KindRateLimited
	KindInvalidResponse
	KindTruncated
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindRateLimited:
		return ErrRateLimited
	case KindInvalidResponse:
		return ErrInvalidResponse
	case KindTruncated:
		return ErrTruncated
	}
	return ErrUnavailable
}

// Error is returned by every provider.
type Error struct {
	Kind ErrorKind

	// RetryAfter is the server's requested wait, set for KindRateLimited
	// when the provider sent one.
	RetryAfter time.Duration

	// Content is the raw model output for KindInvalidResponse and
	// KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func invalidResponse(content json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: fmt.Errorf(format, args...)}
}

// fromStatus maps an HTTP status from a provider API to an *Error. Any
// status other than 429 is reported as unavailable.
func fromStatus(status int, header http.Header, err error) *Error {
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimited, RetryAfter: retryAfter(header), Err: err}
	}
	return &Error{Kind: KindUnavailable, Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

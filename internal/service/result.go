package service

import (
	"errors"

	"github.com/naveenspark/leavedesk/pkg/client"
)

// Result is the outcome of one service call. Exactly one of Data or Error
// is meaningful: Error is empty on success.
type Result[T any] struct {
	Data  T
	Error string

	// Status is the HTTP status of a failed call that reached the backend,
	// zero otherwise.
	Status int
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Error == ""
}

func ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

func fail[T any](err error) Result[T] {
	r := Result[T]{Error: client.Normalize(err)}
	if r.Error == "" {
		// An empty detail from the backend must still read as a failure.
		r.Error = "request failed"
	}
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		r.Status = httpErr.StatusCode
	}
	return r
}

package semscholar

import (
	"errors"
	"fmt"
)

// Common errors returned by the Semantic Scholar client.
var (
	// ErrNetwork indicates a transport failure (DNS, TLS, timeout)
	// issuing a request. Requests are never retried.
	ErrNetwork = errors.New("network error contacting Semantic Scholar")

	// ErrBothQueryModes indicates a query supplied both an author and a
	// title term, which are mutually exclusive.
	ErrBothQueryModes = errors.New("cannot query both author and title")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found in Semantic Scholar")
)

// QueryError is an error reported by the remote API in a response body
// of the form {"error": "<message>"}. It terminates the in-progress
// pagination immediately.
type QueryError struct {
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("Semantic Scholar query error: %s", e.Message)
}

// RecordError indicates a raw record is missing a field the normalizer
// requires. Partial records are never emitted.
type RecordError struct {
	Field  string // The missing or malformed field
	Reason string
}

func (e *RecordError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed record: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed record: missing required field %q", e.Field)
}

// IsQueryError returns true if the error is a remote query error.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// IsRecordError returns true if the error indicates a malformed record.
func IsRecordError(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}

// IsUsageError returns true if the error indicates invalid query
// parameters supplied by the caller.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrBothQueryModes)
}

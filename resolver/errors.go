package resolver

import (
	"errors"
	"fmt"
)

var errQueryTooLarge = errors.New("query packet too large for this transport")

// QueryFailed covers transport and protocol failures: connection refused,
// peer reset, malformed response, a short UDP write, a query packet too
// large for the chosen transport.
type QueryFailed struct {
	Op    string
	Cause error
}

func (e *QueryFailed) Error() string {
	if e.Cause == nil {
		return "dns query failed: " + e.Op
	}
	return fmt.Sprintf("dns query failed: %s: %s", e.Op, e.Cause)
}

func (e *QueryFailed) Unwrap() error {
	return e.Cause
}

// Timeout is a wall-clock deadline exceeded while waiting for a query.
type Timeout struct {
	Name     string
	Deadline string
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("dns query for %q timed out after %s", e.Name, e.Deadline)
}

// ResponseTruncated signals a UDP response with the TC bit set. It is
// consumed internally by the selective-transport layer and ordinarily
// never reaches an end caller.
type ResponseTruncated struct {
	Name string
}

func (e *ResponseTruncated) Error() string {
	return fmt.Sprintf("dns response for %q was truncated", e.Name)
}

// RecordNotFound covers both a non-OK RCODE and a NOERROR/NODATA response
// that, after CNAME chasing, still has no matching records.
type RecordNotFound struct {
	Name   string
	Reason string
}

func (e *RecordNotFound) Error() string {
	return fmt.Sprintf("no record found for %q: %s", e.Name, e.Reason)
}

// InvalidConfiguration covers a nameserver URI scheme mismatch, a packet
// too large for the chosen transport, or a CNAME chain exceeding the
// allowed depth (the depth case is always converted to RecordNotFound
// before reaching a caller; it is listed here only as provenance).
type InvalidConfiguration struct {
	Reason string
}

func (e *InvalidConfiguration) Error() string {
	return "invalid dns resolver configuration: " + e.Reason
}

// Cancelled wraps the context error (context.Canceled or
// context.DeadlineExceeded) that caused a query to stop. A bespoke
// sentinel would duplicate what ctx.Err() already tells us; this type
// exists so callers can errors.As for it without reaching into context.
type Cancelled struct {
	Cause error
}

func (e *Cancelled) Error() string {
	return "dns query cancelled: " + e.Cause.Error()
}

func (e *Cancelled) Unwrap() error {
	return e.Cause
}

// FallbackFailed composes a primary and secondary executor's failures into
// one error, per the fallback-executor contract: the message is
// "{primary}. Fallback failed: {secondary}" and Unwrap returns the
// secondary error.
type FallbackFailed struct {
	Primary   error
	Secondary error
}

func (e *FallbackFailed) Error() string {
	return fmt.Sprintf("%s. Fallback failed: %s", e.Primary, e.Secondary)
}

func (e *FallbackFailed) Unwrap() error {
	return e.Secondary
}

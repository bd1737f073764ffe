package resolver

import (
	"context"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// DefaultRetries is the retry budget used when a RetryExecutor is built
// without an explicit count (§4.5).
const DefaultRetries = 2

// RetryExecutor reissues a failed query against its inner executor up to
// Retries additional times, with no back-off. It surfaces only the final
// attempt's error and does not distinguish error kinds: a protocol-level
// NXDOMAIN looks like a network failure at this layer, because RCODE
// classification happens above, in the high-level resolver.
type RetryExecutor struct {
	Inner   Executor
	Retries int
}

func NewRetryExecutor(inner Executor, retries int) *RetryExecutor {
	return &RetryExecutor{Inner: inner, Retries: retries}
}

func (r *RetryExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	var lastErr error

	for attempt := 0; attempt <= r.Retries; attempt++ {
		msg, err := r.Inner.Exec(ctx, q)
		if err == nil {
			return msg, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

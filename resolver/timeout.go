package resolver

import (
	"context"
	"time"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// TimeoutExecutor is the only layer that imposes a wall-clock bound: an
// unreachable nameserver wedges the inner executor forever until this
// layer cancels it (§4.6, §5).
type TimeoutExecutor struct {
	Inner   Executor
	Timeout time.Duration
}

func NewTimeoutExecutor(inner Executor, timeout time.Duration) *TimeoutExecutor {
	return &TimeoutExecutor{Inner: inner, Timeout: timeout}
}

func (t *TimeoutExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	deadline := time.Now().Add(t.Timeout)
	tctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	msg, err := t.Inner.Exec(tctx, q)
	if err != nil && tctx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return nil, &Timeout{Name: q.Name, Deadline: deadline.Format(time.RFC3339Nano)}
	}
	return msg, err
}

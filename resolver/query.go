package resolver

import (
	"context"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// Query is the input to an Executor: a single question (name, type,
// class). The nameserver to ask is a property of the executor, not of the
// query.
type Query struct {
	Name  string
	Type  dnsmsg.Type
	Class dnsmsg.Class
}

// Key returns the cache/coalescing key for this query: "{name}:{type}:{class}".
func (q Query) Key() string {
	return q.Name + ":" + q.Type.String() + ":" + q.Class.String()
}

// Executor is the single capability every layer of the resolution pipeline
// implements: accept a Query, produce an eventual Message or error, support
// cancellation. Go's context.Context already carries that cancellation
// signal, so there is no separate Promise/Future type here — cancelling the
// ctx passed to Exec is the cancellation of that call, and every decorator
// is expected to cancel whatever inner call(s) it started the moment its
// own ctx is done.
type Executor interface {
	Exec(ctx context.Context, q Query) (*dnsmsg.Message, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, q Query) (*dnsmsg.Message, error)

func (f ExecutorFunc) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	return f(ctx, q)
}

package resolver

import (
	"context"
	"sync/atomic"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// fakeExecutor is a closure-backed Executor for exercising the decorator
// stack without any real transport, matching the teacher's own
// minimal-dependency test style.
type fakeExecutor struct {
	calls int32
	fn    func(ctx context.Context, q Query) (*dnsmsg.Message, error)
}

func (f *fakeExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.fn(ctx, q)
}

func (f *fakeExecutor) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

func okMessage(name string, typ dnsmsg.Type, ttl uint32, data dnsmsg.RData) *dnsmsg.Message {
	m, _ := dnsmsg.NewQuery(dnsmsg.Question{Name: name, Type: typ, Class: dnsmsg.IN})
	m.Bits.SetResponse(true)
	m.Answer = []*dnsmsg.Resource{
		{Name: name, Type: typ, Class: dnsmsg.IN, TTL: ttl, Data: data},
	}
	return m
}

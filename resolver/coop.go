package resolver

import (
	"context"
	"sync"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// coopEntry represents one in-flight inner query shared by every caller
// currently waiting on the same (name, type, class) key. msg/err are
// written exactly once, by the goroutine running the inner query, before
// done is closed; every waiter only reads them after observing done
// closed, so no further synchronization is needed.
type coopEntry struct {
	refs   int
	done   chan struct{}
	msg    *dnsmsg.Message
	err    error
	cancel context.CancelFunc
}

// CoopExecutor deduplicates concurrent identical queries (same name, type,
// and class). While one inner query is in flight for a key, every other
// caller for that key waits on the same call instead of starting a new
// one; every caller still gets its own cancellable handle, and the inner
// query is only cancelled once every caller waiting on it has cancelled
// (§4.7).
type CoopExecutor struct {
	Inner Executor

	mu       sync.Mutex
	inFlight map[string]*coopEntry
}

func NewCoopExecutor(inner Executor) *CoopExecutor {
	return &CoopExecutor{Inner: inner, inFlight: make(map[string]*coopEntry)}
}

func (c *CoopExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	key := q.Key()

	c.mu.Lock()
	entry, ok := c.inFlight[key]
	if !ok {
		innerCtx, cancel := context.WithCancel(context.Background())
		entry = &coopEntry{done: make(chan struct{}), cancel: cancel}
		c.inFlight[key] = entry

		go func() {
			msg, err := c.Inner.Exec(innerCtx, q)
			entry.msg, entry.err = msg, err
			close(entry.done)

			c.mu.Lock()
			if cur, ok := c.inFlight[key]; ok && cur == entry {
				delete(c.inFlight, key)
			}
			c.mu.Unlock()
		}()
	}
	entry.refs++
	c.mu.Unlock()

	defer c.release(key, entry)

	select {
	case <-ctx.Done():
		return nil, &Cancelled{Cause: ctx.Err()}
	case <-entry.done:
		return entry.msg, entry.err
	}
}

// release decrements this caller's hold on entry. When the last caller
// waiting on a still-in-flight entry goes away, the inner query is
// cancelled and the key freed immediately rather than left to the inner
// call's own completion.
func (c *CoopExecutor) release(key string, entry *coopEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.refs--
	if entry.refs > 0 {
		return
	}

	select {
	case <-entry.done:
		// already delivered; the inner goroutine has removed the key itself.
	default:
		if cur, ok := c.inFlight[key]; ok && cur == entry {
			delete(c.inFlight, key)
		}
		entry.cancel()
	}
}

package resolver

import (
	"context"
	"crypto/rand"
	"log"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"github.com/KarpelesLab/rndstr"
	"github.com/google/uuid"
)

// newInstanceID mints the random ID a Resolver tags its log lines with, so
// concurrent resolver instances in one process are distinguishable in
// shared logs (mirroring the teacher's dnsZone identifier pattern).
func newInstanceID() uuid.UUID {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil
	}
	return id
}

// traceToken mints a short per-query trace token, the same call the
// teacher uses to mint an API key, so a burst of concurrent queries for
// the same name can be told apart in logs even though they share a cache
// key.
func traceToken() string {
	tok, err := rndstr.SimpleReader(8, rndstr.Alnum, rand.Reader)
	if err != nil {
		return "??????"
	}
	return tok
}

// loggingExecutor is the outermost layer of a built resolver stack: it
// logs the start and outcome of every query with the resolver's instance
// ID and a per-query trace token, then delegates unchanged.
type loggingExecutor struct {
	Inner      Executor
	InstanceID uuid.UUID
}

func newLoggingExecutor(inner Executor, id uuid.UUID) *loggingExecutor {
	return &loggingExecutor{Inner: inner, InstanceID: id}
}

func (l *loggingExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	tok := traceToken()
	log.Printf("[resolver %s] [%s] query %s %s %s", l.InstanceID, tok, q.Name, q.Type, q.Class)

	msg, err := l.Inner.Exec(ctx, q)
	if err != nil {
		log.Printf("[resolver %s] [%s] query %s failed: %s", l.InstanceID, tok, q.Name, err)
		return nil, err
	}

	log.Printf("[resolver %s] [%s] query %s -> %s", l.InstanceID, tok, q.Name, msg)
	return msg, nil
}

// Package pcache implements resolver.Cache on top of a pebble-backed
// on-disk key-value store, so a resolver's cache survives process
// restarts (a warm cache is valuable right after a service redeploy).
package pcache

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"github.com/cockroachdb/pebble"
)

// PebbleCache implements resolver.Cache. Values are stored as the
// dnsmsg wire-encoded message with an 8-byte big-endian Unix-nanosecond
// expiry timestamp appended; Get treats an expired entry as a miss and
// deletes it instead of returning stale data.
type PebbleCache struct {
	db *pebble.DB
}

// Open opens (creating if necessary) a pebble store at dir for use as a
// resolver cache.
func Open(dir string) (*PebbleCache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleCache{db: db}, nil
}

// Close releases the underlying pebble store.
func (c *PebbleCache) Close() error {
	return c.db.Close()
}

func (c *PebbleCache) Get(ctx context.Context, key string) (*dnsmsg.Message, error) {
	raw, closer, err := c.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	if len(raw) < 8 {
		return nil, nil
	}
	wire := raw[:len(raw)-8]
	expiresAt := int64(binary.BigEndian.Uint64(raw[len(raw)-8:]))

	if time.Now().UnixNano() >= expiresAt {
		// stale: treat as a miss and clean it up. The delete failing is
		// not fatal to this Get — the entry will simply be re-evaluated
		// (and re-deleted) on the next lookup.
		_ = c.db.Delete([]byte(key), pebble.NoSync)
		return nil, nil
	}

	msg, err := dnsmsg.Parse(wire)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (c *PebbleCache) Set(ctx context.Context, key string, msg *dnsmsg.Message, ttlSeconds float64) error {
	wire, err := msg.MarshalBinary()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(time.Duration(ttlSeconds * float64(time.Second))).UnixNano()

	buf := make([]byte, len(wire)+8)
	copy(buf, wire)
	binary.BigEndian.PutUint64(buf[len(wire):], uint64(expiresAt))

	return c.db.Set([]byte(key), buf, pebble.NoSync)
}

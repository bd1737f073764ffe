package resolver

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"strings"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"github.com/google/uuid"
)

var errInvalidIPForReverse = errors.New("address is not a valid IPv4 or IPv6 address")

// maxCNAMEHops bounds how many follow-up queries CNAME chasing issues for
// one ResolveAll call. Within a single response only one CNAME hop is
// followed; a longer chain is continued by querying the alias.
const maxCNAMEHops = 10

// Resolver is the public entry point: a fully assembled Executor stack
// plus the high-level resolve/resolve_all/resolve_ptr operations on top of
// it (§4.11).
type Resolver struct {
	Executor   Executor
	InstanceID uuid.UUID

	// closers holds anything in the stack that owns a live connection —
	// currently *TCPExecutor — so Close can drain them on shutdown.
	closers []io.Closer
}

// NewResolver wraps an already-assembled Executor stack with an instance
// ID for log correlation. Builder.Build uses this; callers composing
// their own stack outside a Builder can too.
func NewResolver(executor Executor) *Resolver {
	id := newInstanceID()
	return &Resolver{
		Executor:   newLoggingExecutor(executor, id),
		InstanceID: id,
	}
}

// Close tears down any pipelined TCP connections held open by the
// executor stack (§4.3's destruction rule). Safe to call on a Resolver
// with no TCP stage.
func (r *Resolver) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ResolveAll resolves name for the given record type and returns the
// matching RData values in answer order, chasing CNAMEs when the
// requested type is A or AAAA and no direct match is found.
func (r *Resolver) ResolveAll(ctx context.Context, name string, typ dnsmsg.Type) ([]dnsmsg.RData, error) {
	return r.resolveAll(ctx, name, typ, 0)
}

func (r *Resolver) resolveAll(ctx context.Context, name string, typ dnsmsg.Type, depth int) ([]dnsmsg.RData, error) {
	msg, err := r.Executor.Exec(ctx, Query{Name: name, Type: typ, Class: dnsmsg.IN})
	if err != nil {
		return nil, err
	}

	if rcode := msg.Bits.GetRCode(); rcode != dnsmsg.NoError {
		return nil, &RecordNotFound{Name: name, Reason: rcode.LongName()}
	}

	var direct []dnsmsg.RData
	for _, a := range msg.Answer {
		if sameName(a.Name, name) && a.Type == typ {
			direct = append(direct, a.Data)
		}
	}
	if len(direct) > 0 {
		return direct, nil
	}

	if typ == dnsmsg.A || typ == dnsmsg.AAAA {
		if depth >= maxCNAMEHops {
			return nil, &RecordNotFound{Name: name, Reason: "did not return a valid answer"}
		}
		for _, a := range msg.Answer {
			if a.Type != dnsmsg.CNAME || !sameName(a.Name, name) {
				continue
			}
			cname, ok := a.Data.(*dnsmsg.RDataName)
			if !ok {
				continue
			}
			if sameName(cname.Name, name) {
				// a CNAME pointing at itself is a loop, not progress.
				continue
			}

			// chase within the same answer set first: a response often
			// carries the whole chain in one message.
			var chained []dnsmsg.RData
			for _, a2 := range msg.Answer {
				if sameName(a2.Name, cname.Name) && a2.Type == typ {
					chained = append(chained, a2.Data)
				}
			}
			if len(chained) > 0 {
				return chained, nil
			}

			return r.resolveAll(ctx, cname.Name, typ, depth+1)
		}
	}

	return nil, &RecordNotFound{Name: name, Reason: "did not return a valid answer"}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSuffix(a, "."), strings.TrimSuffix(b, "."))
}

// Resolve is the common case: resolve name to a single IPv4 address,
// picking uniformly at random among multiple A records.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	data, err := r.ResolveAll(ctx, name, dnsmsg.A)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &RecordNotFound{Name: name, Reason: "did not return a valid answer"}
	}

	picked := data[rand.IntN(len(data))]
	ip, ok := picked.(*dnsmsg.RDataIP)
	if !ok {
		return "", &RecordNotFound{Name: name, Reason: "did not return a valid answer"}
	}
	return ip.IP.String(), nil
}

// ResolvePTR resolves the hostnames associated with ip via a reverse
// lookup, building the in-addr.arpa/ip6.arpa query name on the caller's
// behalf. This is a convenience wrapper around ResolveAll, not a new
// pipeline stage.
func (r *Resolver) ResolvePTR(ctx context.Context, ip net.IP) ([]string, error) {
	name, err := reverseName(ip)
	if err != nil {
		return nil, &InvalidConfiguration{Reason: err.Error()}
	}

	data, err := r.ResolveAll(ctx, name, dnsmsg.PTR)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(data))
	for _, d := range data {
		if n, ok := d.(*dnsmsg.RDataName); ok {
			names = append(names, n.Name)
		}
	}
	return names, nil
}

func reverseName(ip net.IP) (string, error) {
	if v4 := ip.To4(); v4 != nil {
		return formatReverseV4(v4), nil
	}
	if v6 := ip.To16(); v6 != nil && ip.To4() == nil {
		return formatReverseV6(v6), nil
	}
	return "", errInvalidIPForReverse
}

func formatReverseV4(ip net.IP) string {
	return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa", ip[3], ip[2], ip[1], ip[0])
}

func formatReverseV6(ip net.IP) string {
	h := hex.EncodeToString(ip) // 32 hex chars, most-significant byte first
	var b strings.Builder
	for i := len(h) - 1; i >= 0; i-- {
		b.WriteByte(h[i])
		b.WriteByte('.')
	}
	b.WriteString("ip6.arpa")
	return b.String()
}

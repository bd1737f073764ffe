package resolver

import (
	"context"
	"net"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
)

// maxUDPMessageSize is the classic DNS-over-UDP limit: a query larger than
// this cannot be sent without EDNS, which is out of scope here (§4.2).
const maxUDPMessageSize = 512

// UDPExecutor sends one query per connected UDP socket to a single
// nameserver. It never retries and never imposes a timeout; composition
// with RetryExecutor/TimeoutExecutor adds those.
type UDPExecutor struct {
	Addr NameserverAddr
}

// NewUDPExecutor builds a UDPExecutor for the given nameserver address.
// addr must not force the tcp transport.
func NewUDPExecutor(addr NameserverAddr) (*UDPExecutor, error) {
	if addr.Transport == TransportTCP {
		return nil, &InvalidConfiguration{Reason: "udp transport given a tcp:// nameserver address"}
	}
	return &UDPExecutor{Addr: addr}, nil
}

func (u *UDPExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	msg, err := dnsmsg.NewQuery(dnsmsg.Question{Name: q.Name, Type: q.Type, Class: q.Class})
	if err != nil {
		return nil, &QueryFailed{Op: "build query", Cause: err}
	}

	raw, err := msg.MarshalBinary()
	if err != nil {
		return nil, &QueryFailed{Op: "encode query", Cause: err}
	}
	if len(raw) > maxUDPMessageSize {
		return nil, &QueryFailed{Op: "encode query", Cause: errQueryTooLarge}
	}

	d := net.Dialer{Control: controlSetRecvBuffer}
	conn, err := d.DialContext(ctx, "udp", u.Addr.HostPort)
	if err != nil {
		return nil, mapCtxErr(ctx, &QueryFailed{Op: "dial " + u.Addr.HostPort, Cause: err})
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if _, err := conn.Write(raw); err != nil {
		return nil, mapCtxErr(ctx, &QueryFailed{Op: "write to " + u.Addr.HostPort, Cause: err})
	}

	buf := make([]byte, 65535)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return nil, mapCtxErr(ctx, &QueryFailed{Op: "read from " + u.Addr.HostPort, Cause: err})
		}

		resp, err := dnsmsg.Parse(buf[:n])
		if err != nil {
			// a stray malformed datagram should not wedge the query; keep
			// listening for the real response (§7 propagation policy).
			continue
		}
		if resp.ID != msg.ID {
			continue
		}
		if resp.Bits.IsTrunc() {
			return nil, &ResponseTruncated{Name: q.Name}
		}
		return resp, nil
	}
}

func mapCtxErr(ctx context.Context, fallback error) error {
	if err := ctx.Err(); err != nil {
		return &Cancelled{Cause: err}
	}
	return fallback
}

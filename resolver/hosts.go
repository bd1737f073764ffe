package resolver

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"github.com/KarpelesLab/dnsresolver/resolver/hostsfile"
)

// HostsExecutor answers A, AAAA, and PTR queries from a parsed hosts file
// before any network executor is consulted, synthesizing an
// authoritative-looking Message. Anything else — a different query type,
// a non-IN class, or simply no match — delegates to Inner (§4.10).
type HostsExecutor struct {
	Table *hostsfile.Table
	Inner Executor
}

func NewHostsExecutor(table *hostsfile.Table, inner Executor) *HostsExecutor {
	return &HostsExecutor{Table: table, Inner: inner}
}

func (h *HostsExecutor) Exec(ctx context.Context, q Query) (*dnsmsg.Message, error) {
	if q.Class != dnsmsg.IN {
		return h.Inner.Exec(ctx, q)
	}

	var answers []*dnsmsg.Resource

	switch q.Type {
	case dnsmsg.A:
		for _, ip := range h.Table.LookupV4(q.Name) {
			answers = append(answers, hostsRecord(q.Name, dnsmsg.A, &dnsmsg.RDataIP{IP: ip, Type: dnsmsg.A}))
		}
	case dnsmsg.AAAA:
		for _, ip := range h.Table.LookupV6(q.Name) {
			answers = append(answers, hostsRecord(q.Name, dnsmsg.AAAA, &dnsmsg.RDataIP{IP: ip, Type: dnsmsg.AAAA}))
		}
	case dnsmsg.PTR:
		ip, ok := parsePTRName(q.Name)
		if ok {
			for _, name := range h.Table.Names(ip) {
				answers = append(answers, hostsRecord(q.Name, dnsmsg.PTR, &dnsmsg.RDataName{Name: name, Type: dnsmsg.PTR}))
			}
		}
	default:
		return h.Inner.Exec(ctx, q)
	}

	if len(answers) == 0 {
		return h.Inner.Exec(ctx, q)
	}

	msg, err := dnsmsg.NewQuery(dnsmsg.Question{Name: q.Name, Type: q.Type, Class: q.Class})
	if err != nil {
		return nil, &QueryFailed{Op: "build hosts-file response", Cause: err}
	}
	msg.Bits.SetResponse(true)
	msg.Bits.SetAuth(true)
	msg.Bits.SetRecAvailable(true)
	msg.Bits.SetRCode(dnsmsg.NoError)
	msg.Answer = answers

	return msg, nil
}

func hostsRecord(name string, t dnsmsg.Type, data dnsmsg.RData) *dnsmsg.Resource {
	return &dnsmsg.Resource{Name: name, Type: t, Class: dnsmsg.IN, TTL: 0, Data: data}
}

// parsePTRName recovers the address a reverse-lookup name refers to,
// following the in-addr.arpa / ip6.arpa encoding rules (§4.10).
func parsePTRName(name string) (net.IP, bool) {
	name = strings.TrimSuffix(name, ".")
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, ".in-addr.arpa"):
		base := name[:len(name)-len(".in-addr.arpa")]
		parts := strings.Split(base, ".")
		if len(parts) != 4 {
			return nil, false
		}
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 || n > 255 {
				return nil, false
			}
		}
		rev := fmt.Sprintf("%s.%s.%s.%s", parts[3], parts[2], parts[1], parts[0])
		ip := net.ParseIP(rev)
		if ip == nil {
			return nil, false
		}
		return ip, true

	case strings.HasSuffix(lower, ".ip6.arpa"):
		base := lower[:len(lower)-len(".ip6.arpa")]
		nibbles := strings.Split(base, ".")
		if len(nibbles) != 32 {
			return nil, false
		}
		var rev strings.Builder
		for i := len(nibbles) - 1; i >= 0; i-- {
			n := nibbles[i]
			if len(n) != 1 || !isHexDigit(n[0]) {
				return nil, false
			}
			rev.WriteString(n)
		}
		hex := rev.String()

		var addr strings.Builder
		for i := 0; i < 32; i += 4 {
			if i > 0 {
				addr.WriteByte(':')
			}
			addr.WriteString(hex[i : i+4])
		}
		ip := net.ParseIP(addr.String())
		if ip == nil {
			return nil, false
		}
		return ip, true
	}

	return nil, false
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

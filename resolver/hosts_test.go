package resolver

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/KarpelesLab/dnsresolver/dnsmsg"
	"github.com/KarpelesLab/dnsresolver/resolver/hostsfile"
)

func TestHostsExecutorOverridesNetwork(t *testing.T) {
	// S6 — hosts file overrides network.
	tbl, err := hostsfile.Parse(strings.NewReader("127.0.0.1 localhost\n"))
	if err != nil {
		t.Fatalf("parse hosts: %s", err)
	}

	inner := &fakeExecutor{fn: func(ctx context.Context, q Query) (*dnsmsg.Message, error) {
		t.Fatal("network executor must not be invoked for a hosts-file hit")
		return nil, nil
	}}

	h := NewHostsExecutor(tbl, inner)
	msg, err := h.Exec(context.Background(), Query{Name: "LOCALHOST", Type: dnsmsg.A, Class: dnsmsg.IN})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !msg.Bits.IsResponse() || !msg.Bits.IsAuth() || !msg.Bits.IsRecAvailable() {
		t.Fatalf("synthesized message flags: %s", msg.Bits)
	}
	if len(msg.Answer) != 1 {
		t.Fatalf("answers: got %d want 1", len(msg.Answer))
	}
	ip, ok := msg.Answer[0].Data.(*dnsmsg.RDataIP)
	if !ok || ip.IP.String() != "127.0.0.1" {
		t.Fatalf("answer data: got %+v", msg.Answer[0].Data)
	}
	if msg.Answer[0].TTL != 0 {
		t.Fatalf("hosts-file answers must carry ttl=0, got %d", msg.Answer[0].TTL)
	}
	if inner.Calls() != 0 {
		t.Fatalf("inner calls: got %d want 0", inner.Calls())
	}
}

func TestHostsExecutorDelegatesOnMiss(t *testing.T) {
	tbl, _ := hostsfile.Parse(strings.NewReader("127.0.0.1 localhost\n"))

	inner := &fakeExecutor{fn: func(ctx context.Context, q Query) (*dnsmsg.Message, error) {
		return okMessage(q.Name, q.Type, 60, nil), nil
	}}

	h := NewHostsExecutor(tbl, inner)
	_, err := h.Exec(context.Background(), Query{Name: "not-in-hosts.example", Type: dnsmsg.A, Class: dnsmsg.IN})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if inner.Calls() != 1 {
		t.Fatalf("inner calls: got %d want 1", inner.Calls())
	}
}

func TestParsePTRNameIPv4(t *testing.T) {
	ip, ok := parsePTRName("4.3.2.1.in-addr.arpa")
	if !ok {
		t.Fatal("expected a successful parse")
	}
	if !ip.Equal(net.ParseIP("1.2.3.4")) {
		t.Fatalf("ip: got %s want 1.2.3.4", ip)
	}
}

func TestParsePTRNameIPv6(t *testing.T) {
	name := "1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.ip6.arpa"
	ip, ok := parsePTRName(name)
	if !ok {
		t.Fatal("expected a successful parse")
	}
	if !ip.Equal(net.ParseIP("::1")) {
		t.Fatalf("ip: got %s want ::1", ip)
	}
}

func TestParsePTRNameRejectsGarbage(t *testing.T) {
	if _, ok := parsePTRName("not-a-reverse-name.example.com"); ok {
		t.Fatal("expected parsePTRName to reject a non-reverse name")
	}
}

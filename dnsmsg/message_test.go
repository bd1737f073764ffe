package dnsmsg

import (
	"net"
	"testing"
)

func TestRoundTripSimpleA(t *testing.T) {
	m := &Message{
		ID: 0x1234,
		Question: []*Question{
			{Name: "example.com", Type: A, Class: IN},
		},
		Answer: []*Resource{
			{Name: "example.com", Type: A, Class: IN, TTL: 300, Data: &RDataIP{IP: net.ParseIP("1.2.3.4"), Type: A}},
		},
	}
	m.Bits.SetResponse(true)
	m.Bits.SetRecDesired(true)
	m.Bits.SetRecAvailable(true)

	raw, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}

	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	if got.ID != m.ID {
		t.Fatalf("id: got %d want %d", got.ID, m.ID)
	}
	if !got.Bits.IsResponse() || !got.Bits.IsRecDesired() || !got.Bits.IsRecAvailable() {
		t.Fatalf("flags not preserved: %s", got.Bits)
	}
	if len(got.Question) != 1 || got.Question[0].Name != "example.com" {
		t.Fatalf("question not preserved: %+v", got.Question)
	}
	if len(got.Answer) != 1 {
		t.Fatalf("answer count: got %d want 1", len(got.Answer))
	}
	a := got.Answer[0]
	if a.Name != "example.com" || a.TTL != 300 || a.Data.String() != "1.2.3.4" {
		t.Fatalf("answer not preserved: %+v", a)
	}
}

func TestRoundTripAllSections(t *testing.T) {
	mk := func(name string, typ Type, data RData) *Resource {
		return &Resource{Name: name, Type: typ, Class: IN, TTL: 60, Data: data}
	}

	m := &Message{
		ID:       1,
		Question: []*Question{{Name: "host.example.org", Type: ANY, Class: IN}},
		Answer: []*Resource{
			mk("host.example.org", CNAME, &RDataName{Name: "alias.example.org", Type: CNAME}),
			mk("alias.example.org", AAAA, &RDataIP{IP: net.ParseIP("2001:db8::1"), Type: AAAA}),
			mk("example.org", MX, &RDataMX{Priority: 10, Target: "mail.example.org"}),
			mk("example.org", TXT, RDataTXT{"v=spf1", "include:_spf.example.org"}),
		},
		Authority: []*Resource{
			mk("example.org", SOA, &RDataSOA{MName: "ns1.example.org", RName: "hostmaster.example.org", Serial: 1, Refresh: 2, Retry: 3, Expire: 4, Minimum: 5}),
		},
		Additional: []*Resource{
			mk("_sip._tcp.example.org", SRV, &RDataSRV{Priority: 1, Weight: 2, Port: 5060, Target: "sip.example.org"}),
		},
	}
	m.Bits.SetResponse(true)

	raw, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	if len(got.Answer) != 4 || len(got.Authority) != 1 || len(got.Additional) != 1 {
		t.Fatalf("section counts not preserved: an=%d ns=%d ar=%d", len(got.Answer), len(got.Authority), len(got.Additional))
	}

	cname, ok := got.Answer[0].Data.(*RDataName)
	if !ok || cname.Name != "alias.example.org" {
		t.Fatalf("cname rdata: %+v", got.Answer[0].Data)
	}

	txt, ok := got.Answer[3].Data.(RDataTXT)
	if !ok || len(txt) != 2 || txt[0] != "v=spf1" {
		t.Fatalf("txt rdata: %+v", got.Answer[3].Data)
	}

	soa, ok := got.Authority[0].Data.(*RDataSOA)
	if !ok || soa.MName != "ns1.example.org" || soa.Minimum != 5 {
		t.Fatalf("soa rdata: %+v", got.Authority[0].Data)
	}

	srv, ok := got.Additional[0].Data.(*RDataSRV)
	if !ok || srv.Port != 5060 || srv.Target != "sip.example.org" {
		t.Fatalf("srv rdata: %+v", got.Additional[0].Data)
	}
}

func TestFlagBitPositions(t *testing.T) {
	var h HeaderBits
	h.SetResponse(true)
	h.SetOpCode(Status)
	h.SetAuth(true)
	h.SetTrunc(true)
	h.SetRecDesired(true)
	h.SetRecAvailable(true)
	h.SetRCode(ErrServFail)

	if got := h.Sanitized(); got != 0x9782 {
		t.Fatalf("flags word: got %#04x want 0x9782", uint16(got))
	}
}

func TestNameDotInvariant(t *testing.T) {
	for _, n := range []string{"", "."} {
		e := &encoder{}
		if err := e.name(n); err != nil {
			t.Fatalf("encoding %q: %s", n, err)
		}
		if len(e.buf) != 1 || e.buf[0] != 0 {
			t.Fatalf("encoding %q: got % x want [00]", n, e.buf)
		}
	}

	e := &encoder{}
	if err := e.name("example.com."); err != nil {
		t.Fatalf("encode trailing dot: %s", err)
	}
	e2 := &encoder{}
	if err := e2.name("example.com"); err != nil {
		t.Fatalf("encode no dot: %s", err)
	}
	if string(e.buf) != string(e2.buf) {
		t.Fatalf("trailing dot changed encoding: % x vs % x", e.buf, e2.buf)
	}
}

func TestCompressionLoopFailsCleanly(t *testing.T) {
	// Two labels that point at each other: offset 0 is a pointer to offset
	// 2, and offset 2 is a pointer back to offset 0.
	raw := []byte{0xc0, 0x02, 0xc0, 0x00}
	d := &decoder{raw: raw}
	_, _, err := d.nameAt(0)
	if err == nil {
		t.Fatal("expected an error from a cyclic compression pointer, got nil")
	}
}

func TestCompressionPointerResolves(t *testing.T) {
	// Build: [root label "a" @0] [name "b.a" via pointer to offset 0]
	raw := []byte{1, 'a', 0, 1, 'b', 0xc0, 0x00}
	d := &decoder{raw: raw}
	name, next, err := d.nameAt(3)
	if err != nil {
		t.Fatalf("decode: %s", err)
	}
	if name != "b.a" {
		t.Fatalf("name: got %q want %q", name, "b.a")
	}
	if next != 7 {
		t.Fatalf("return offset: got %d want 7 (immediately after the pointer)", next)
	}
}

package resolver

import "testing"

func TestParseNameserverAddr(t *testing.T) {
	cases := []struct {
		in        string
		transport Transport
		hostPort  string
	}{
		{"1.1.1.1", TransportAny, "1.1.1.1:53"},
		{"1.1.1.1:5353", TransportAny, "1.1.1.1:5353"},
		{"udp://8.8.8.8", TransportUDP, "8.8.8.8:53"},
		{"tcp://8.8.8.8:5353", TransportTCP, "8.8.8.8:5353"},
		{"[::1]", TransportAny, "[::1]:53"},
		{"[::1]:5353", TransportAny, "[::1]:5353"},
	}

	for _, c := range cases {
		got, err := ParseNameserverAddr(c.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %s", c.in, err)
		}
		if got.Transport != c.transport {
			t.Fatalf("%q: transport: got %v want %v", c.in, got.Transport, c.transport)
		}
		if got.HostPort != c.hostPort {
			t.Fatalf("%q: hostport: got %q want %q", c.in, got.HostPort, c.hostPort)
		}
	}
}

func TestParseNameserverAddrRejectsUnknownScheme(t *testing.T) {
	if _, err := ParseNameserverAddr("https://8.8.8.8"); err == nil {
		t.Fatal("expected an error for an unsupported scheme")
	}
}

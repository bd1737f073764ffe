package resolver

import (
	"net"
	"strings"
)

// Transport identifies which wire transport a nameserver address forces,
// if any.
type Transport int

const (
	// TransportAny means the address did not force a transport: a udp
	// scheme is used first with upgrade to tcp on truncation.
	TransportAny Transport = iota
	TransportUDP
	TransportTCP
)

// NameserverAddr is a parsed nameserver address: bare address, udp://,
// tcp://, or a bracketed IPv6 form, all defaulting to port 53 (§6 of the
// protocol spec).
type NameserverAddr struct {
	Transport Transport
	HostPort  string // always host:port, ready for net.Dial
}

// ParseNameserverAddr parses one of the address forms accepted by this
// resolver: a bare IPv4/IPv6 address (with or without a port), a
// udp://host[:port] or tcp://host[:port] URI, or a bracketed
// [ipv6] / [ipv6]:port form.
func ParseNameserverAddr(s string) (NameserverAddr, error) {
	transport := TransportAny
	rest := s

	switch {
	case strings.HasPrefix(s, "udp://"):
		transport = TransportUDP
		rest = s[len("udp://"):]
	case strings.HasPrefix(s, "tcp://"):
		transport = TransportTCP
		rest = s[len("tcp://"):]
	default:
		if i := strings.Index(s, "://"); i >= 0 {
			return NameserverAddr{}, &InvalidConfiguration{Reason: "unsupported nameserver scheme: " + s[:i]}
		}
	}

	hostPort, err := normalizeHostPort(rest)
	if err != nil {
		return NameserverAddr{}, err
	}

	return NameserverAddr{Transport: transport, HostPort: hostPort}, nil
}

func normalizeHostPort(s string) (string, error) {
	if s == "" {
		return "", &InvalidConfiguration{Reason: "empty nameserver address"}
	}

	// bracketed IPv6: "[::1]" or "[::1]:53"
	if strings.HasPrefix(s, "[") {
		host, port, err := net.SplitHostPort(s)
		if err != nil {
			// "[::1]" with no port: SplitHostPort fails, try stripping brackets ourselves
			if end := strings.Index(s, "]"); end > 0 {
				host = s[1:end]
				port = "53"
			} else {
				return "", &InvalidConfiguration{Reason: "malformed nameserver address: " + s}
			}
		}
		if port == "" {
			port = "53"
		}
		return net.JoinHostPort(host, port), nil
	}

	// does it already carry a port? net.SplitHostPort handles "host:port"
	// and bare IPv6 ambiguously, so try it and fall back to "add :53".
	if host, port, err := net.SplitHostPort(s); err == nil {
		return net.JoinHostPort(host, port), nil
	}

	// a bare IPv6 literal without brackets, e.g. "::1", has multiple
	// colons and no port: SplitHostPort above will have failed on it.
	if ip := net.ParseIP(s); ip != nil && strings.Contains(s, ":") {
		return net.JoinHostPort(s, "53"), nil
	}

	return net.JoinHostPort(s, "53"), nil
}

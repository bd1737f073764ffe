package dnsmsg

import (
	"errors"
	"net"
)

// RDataIP backs both A and AAAA records: the wire format is just the raw
// address bytes (4 for A, 16 for AAAA), presented in canonical textual form.
type RDataIP struct {
	IP   net.IP
	Type Type
}

func newRDataIP(raw []byte, t Type) *RDataIP {
	ip := make(net.IP, len(raw))
	copy(ip, raw)
	return &RDataIP{IP: ip, Type: t}
}

// ParseIPRData parses a dotted/colon address string into the RDATA for the
// given type, failing if the address family doesn't match.
func ParseIPRData(str string, t Type) (*RDataIP, error) {
	switch t {
	case A:
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, errors.New("dnsmsg: could not parse ipv4 address")
		}
		ip4 := ip.To4()
		if ip4 == nil {
			return nil, errors.New("dnsmsg: not an ipv4 address")
		}
		return &RDataIP{IP: ip4, Type: A}, nil
	case AAAA:
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, errors.New("dnsmsg: could not parse ipv6 address")
		}
		return &RDataIP{IP: ip.To16(), Type: AAAA}, nil
	default:
		return nil, ErrNotSupport
	}
}

func (ip *RDataIP) String() string {
	return ip.IP.String()
}

func (ip *RDataIP) encode(e *encoder) error {
	switch ip.Type {
	case A:
		v4 := ip.IP.To4()
		if v4 == nil {
			return errors.New("dnsmsg: A record data is not an IPv4 address")
		}
		e.bytes(v4)
		return nil
	case AAAA:
		v6 := ip.IP.To16()
		if v6 == nil {
			return errors.New("dnsmsg: AAAA record data is not an IPv6 address")
		}
		e.bytes(v6)
		return nil
	default:
		return ErrNotSupport
	}
}

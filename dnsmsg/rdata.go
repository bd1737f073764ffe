package dnsmsg

import "fmt"

// RData is the interface implemented by all DNS resource record data types.
type RData interface {
	// String returns a human-readable representation of the record data.
	String() string
	// encode writes the record data in wire format to the encoder.
	encode(e *encoder) error
}

// parseRData dispatches on the record type to decode RDATA. rdStart is the
// absolute offset of this RR's RDATA within the packet; name-valued RDATA
// (CNAME/NS/PTR/MX/SRV/SOA) re-enters the decoder at that offset so
// in-RDATA compression pointers resolve against the whole packet rather
// than the RDATA slice alone, per §4.1.
func (d *decoder) parseRData(t Type, rd []byte, rdStart int) (RData, error) {
	switch t {
	case A:
		if len(rd) != 4 {
			return nil, ErrInvalidLen
		}
		return newRDataIP(rd, A), nil
	case AAAA:
		if len(rd) != 16 {
			return nil, ErrInvalidLen
		}
		return newRDataIP(rd, AAAA), nil
	case CNAME, NS, PTR:
		name, _, err := d.nameAt(rdStart)
		if err != nil {
			return nil, err
		}
		return &RDataName{Name: name, Type: t}, nil
	case TXT:
		return parseTXT(rd)
	case MX:
		return d.parseMX(rd, rdStart)
	case SRV:
		return d.parseSRV(rd, rdStart)
	case SOA:
		return d.parseSOA(rd, rdStart)
	case CAA:
		return parseCAA(rd)
	case SSHFP:
		return parseSSHFP(rd)
	default:
		cp := make([]byte, len(rd))
		copy(cp, rd)
		return &RDataOpaque{Type: t, Data: cp}, nil
	}
}

// RDataFromString builds RDATA from the loose string representation used
// by hosts-file-derived synthetic records and tests.
func RDataFromString(t Type, str string) (RData, error) {
	switch t {
	case A:
		return ParseIPRData(str, A)
	case AAAA:
		return ParseIPRData(str, AAAA)
	case CNAME, NS, PTR:
		return &RDataName{Name: str, Type: t}, nil
	default:
		return nil, fmt.Errorf("dnsmsg: building %s from string: %w", t, ErrNotSupport)
	}
}

package dnsmsg

import "fmt"

// RDataCAA is the RDATA of a CAA record (RFC 8659):
// flags(1) || tag-length(1) || tag(bytes) || value(bytes-to-end).
type RDataCAA struct {
	Flags uint8
	Tag   string
	Value string
}

func (caa *RDataCAA) String() string {
	return fmt.Sprintf("%d %s %q", caa.Flags, caa.Tag, caa.Value)
}

func (caa *RDataCAA) encode(e *encoder) error {
	if len(caa.Tag) > 0xff {
		return ErrInvalidLen
	}
	e.bytes([]byte{caa.Flags, byte(len(caa.Tag))})
	e.bytes([]byte(caa.Tag))
	e.bytes([]byte(caa.Value))
	return nil
}

func parseCAA(d []byte) (*RDataCAA, error) {
	if len(d) < 2 {
		return nil, ErrInvalidLen
	}
	tagLen := int(d[1])
	if len(d) < 2+tagLen {
		return nil, ErrInvalidLen
	}
	return &RDataCAA{
		Flags: d[0],
		Tag:   string(d[2 : 2+tagLen]),
		Value: string(d[2+tagLen:]),
	}, nil
}

// IsCritical reports whether the critical flag bit (bit 0, i.e. 0x80) is set.
func (caa *RDataCAA) IsCritical() bool {
	return caa.Flags&0x80 != 0
}

package dnsmsg

import "fmt"

// RDataMX is the RDATA of an MX record: priority(16) || name(target).
type RDataMX struct {
	Priority uint16
	Target   string
}

func (mx *RDataMX) String() string {
	return fmt.Sprintf("%d %s", mx.Priority, mx.Target)
}

func (mx *RDataMX) encode(e *encoder) error {
	e.u16(mx.Priority)
	return e.name(mx.Target)
}

func (d *decoder) parseMX(rd []byte, rdStart int) (*RDataMX, error) {
	if len(rd) < 3 {
		return nil, ErrInvalidLen
	}
	target, _, err := d.nameAt(rdStart + 2)
	if err != nil {
		return nil, err
	}
	return &RDataMX{
		Priority: uint16(rd[0])<<8 | uint16(rd[1]),
		Target:   target,
	}, nil
}

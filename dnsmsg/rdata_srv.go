package dnsmsg

import "fmt"

// RDataSRV is the RDATA of an SRV record (RFC 2782):
// priority(16) || weight(16) || port(16) || name(target).
type RDataSRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (srv *RDataSRV) String() string {
	return fmt.Sprintf("%d %d %d %s", srv.Priority, srv.Weight, srv.Port, srv.Target)
}

func (srv *RDataSRV) encode(e *encoder) error {
	e.u16(srv.Priority)
	e.u16(srv.Weight)
	e.u16(srv.Port)
	return e.name(srv.Target)
}

func (d *decoder) parseSRV(rd []byte, rdStart int) (*RDataSRV, error) {
	if len(rd) < 7 {
		return nil, ErrInvalidLen
	}
	target, _, err := d.nameAt(rdStart + 6)
	if err != nil {
		return nil, err
	}
	return &RDataSRV{
		Priority: uint16(rd[0])<<8 | uint16(rd[1]),
		Weight:   uint16(rd[2])<<8 | uint16(rd[3]),
		Port:     uint16(rd[4])<<8 | uint16(rd[5]),
		Target:   target,
	}, nil
}

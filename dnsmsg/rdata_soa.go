package dnsmsg

import "fmt"

// RDataSOA is the RDATA of an SOA record: two names followed by five
// 32-bit fields.
type RDataSOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (soa *RDataSOA) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", soa.MName, soa.RName, soa.Serial, soa.Refresh, soa.Retry, soa.Expire, soa.Minimum)
}

func (soa *RDataSOA) encode(e *encoder) error {
	if err := e.name(soa.MName); err != nil {
		return err
	}
	if err := e.name(soa.RName); err != nil {
		return err
	}
	e.u32(soa.Serial)
	e.u32(soa.Refresh)
	e.u32(soa.Retry)
	e.u32(soa.Expire)
	e.u32(soa.Minimum)
	return nil
}

func (d *decoder) parseSOA(rd []byte, rdStart int) (*RDataSOA, error) {
	mname, next, err := d.nameAt(rdStart)
	if err != nil {
		return nil, err
	}
	rname, next2, err := d.nameAt(next)
	if err != nil {
		return nil, err
	}

	tail, err := (&decoder{raw: d.raw, pos: next2}).bytes(20)
	if err != nil {
		return nil, ErrInvalidLen
	}

	return &RDataSOA{
		MName:   mname,
		RName:   rname,
		Serial:  be32(tail[0:4]),
		Refresh: be32(tail[4:8]),
		Retry:   be32(tail[8:12]),
		Expire:  be32(tail[12:16]),
		Minimum: be32(tail[16:20]),
	}, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

package dnsmsg

// ttlMask clears the high bit of a TTL per RFC 2181 §8: the top bit is
// reserved and must be ignored, not treated as a sign bit.
const ttlMask = 0x7fffffff

// Resource is a single entry of a Message's Answer, Authority, or
// Additional section.
type Resource struct {
	Name  string
	Type  Type
	Class Class
	TTL   uint32

	Data RData
}

func (r *Resource) encode(e *encoder) error {
	if err := e.name(r.Name); err != nil {
		return err
	}
	e.u16(uint16(r.Type))
	e.u16(uint16(r.Class))
	e.u32(r.TTL & ttlMask)

	// RDLENGTH is back-patched once the RDATA has been written.
	lenPos := len(e.buf)
	e.u16(0)
	rdStart := len(e.buf)

	if err := r.Data.encode(e); err != nil {
		return err
	}

	rdLen := len(e.buf) - rdStart
	if rdLen > 0xffff {
		return ErrInvalidLen
	}
	putUint16(e.buf, lenPos, uint16(rdLen))
	return nil
}

func (d *decoder) parseResource() (*Resource, error) {
	name, err := d.name()
	if err != nil {
		return nil, err
	}
	typ, err := d.u16()
	if err != nil {
		return nil, err
	}
	class, err := d.u16()
	if err != nil {
		return nil, err
	}
	ttl, err := d.u32()
	if err != nil {
		return nil, err
	}
	rdLen, err := d.u16()
	if err != nil {
		return nil, err
	}

	rdStart := d.pos
	rdBuf, err := d.bytes(int(rdLen))
	if err != nil {
		return nil, err
	}

	data, err := d.parseRData(Type(typ), rdBuf, rdStart)
	if err != nil {
		return nil, err
	}

	return &Resource{
		Name:  name,
		Type:  Type(typ),
		Class: Class(class),
		TTL:   ttl & ttlMask,
		Data:  data,
	}, nil
}

func putUint16(buf []byte, pos int, v uint16) {
	buf[pos] = byte(v >> 8)
	buf[pos+1] = byte(v)
}

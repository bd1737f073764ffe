package dnsmsg

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Message is a complete DNS message as defined by RFC 1035 §4.
type Message struct {
	ID   uint16
	Bits HeaderBits

	Question   []*Question
	Answer     []*Resource
	Authority  []*Resource
	Additional []*Resource
}

// NewQuery builds the Message a caller sends to start a new lookup: a
// freshly random ID, recursion desired, exactly one question, and empty
// answer/authority/additional sections (§3).
func NewQuery(q Question) (*Message, error) {
	id, err := RandomID()
	if err != nil {
		return nil, err
	}
	m := &Message{
		ID:       id,
		Question: []*Question{&q},
	}
	m.Bits.SetRecDesired(true)
	return m, nil
}

// RandomID draws a transaction ID from a cryptographically-unbiased
// source. It must never be implemented as `rand() % 65536`-style modulo
// reduction over a biased generator (§9): two bytes read straight from
// crypto/rand are already uniform over the full 16-bit range, so no
// reduction is needed.
func RandomID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("dnsmsg: generating transaction id: %w", err)
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// MarshalBinary encodes the message to RFC 1035 wire format. The encoder
// never emits compression pointers (§4.1); every name is written in full.
func (m *Message) MarshalBinary() ([]byte, error) {
	e := &encoder{}

	e.u16(m.ID)
	e.u16(uint16(m.Bits.Sanitized()))
	e.u16(uint16(len(m.Question)))
	e.u16(uint16(len(m.Answer)))
	e.u16(uint16(len(m.Authority)))
	e.u16(uint16(len(m.Additional)))

	for _, q := range m.Question {
		if err := q.encode(e); err != nil {
			return nil, err
		}
	}
	for _, sections := range [][]*Resource{m.Answer, m.Authority, m.Additional} {
		for _, r := range sections {
			if err := r.encode(e); err != nil {
				return nil, err
			}
		}
	}

	return e.buf, nil
}

// Parse decodes a complete RFC 1035 wire-format packet into a Message. Any
// inner failure (truncated field, invalid label, compression loop,
// oversized name) collapses to a single *FormatError at this boundary,
// with the underlying cause reachable via errors.Unwrap/errors.As.
func Parse(raw []byte) (*Message, error) {
	m, err := parse(raw)
	if err != nil {
		return nil, &FormatError{Cause: err}
	}
	return m, nil
}

func parse(raw []byte) (*Message, error) {
	d := &decoder{raw: raw}

	m := &Message{}

	id, err := d.u16()
	if err != nil {
		return nil, err
	}
	m.ID = id

	bits, err := d.u16()
	if err != nil {
		return nil, err
	}
	m.Bits = HeaderBits(bits)

	qd, err := d.u16()
	if err != nil {
		return nil, err
	}
	an, err := d.u16()
	if err != nil {
		return nil, err
	}
	ns, err := d.u16()
	if err != nil {
		return nil, err
	}
	ar, err := d.u16()
	if err != nil {
		return nil, err
	}

	for i := 0; i < int(qd); i++ {
		q, err := d.parseQuestion()
		if err != nil {
			return nil, err
		}
		m.Question = append(m.Question, q)
	}
	for i := 0; i < int(an); i++ {
		r, err := d.parseResource()
		if err != nil {
			return nil, err
		}
		m.Answer = append(m.Answer, r)
	}
	for i := 0; i < int(ns); i++ {
		r, err := d.parseResource()
		if err != nil {
			return nil, err
		}
		m.Authority = append(m.Authority, r)
	}
	for i := 0; i < int(ar); i++ {
		r, err := d.parseResource()
		if err != nil {
			return nil, err
		}
		m.Additional = append(m.Additional, r)
	}

	return m, nil
}

func (m *Message) String() string {
	return fmt.Sprintf("id=%d %s qd=%d an=%d ns=%d ar=%d", m.ID, m.Bits, len(m.Question), len(m.Answer), len(m.Authority), len(m.Additional))
}

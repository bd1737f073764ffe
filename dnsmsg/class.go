package dnsmsg

import "strconv"

//go:generate stringer -type=Class

// Class represents a DNS class as defined in RFC 1035.
// The most common class is IN (Internet). Other classes like CH (Chaos)
// and HS (Hesiod) are rarely used in practice.
type Class uint16

const (
	// RFC 1035
	IN Class = 1 // INternet
	CS Class = 2 // Unassigned
	CH Class = 3 // CHaos
	HS Class = 4 // Hesiod
)

func (c Class) String() string {
	switch c {
	case IN:
		return "IN"
	case CS:
		return "CS"
	case CH:
		return "CH"
	case HS:
		return "HS"
	default:
		return "CLASS" + strconv.Itoa(int(c))
	}
}

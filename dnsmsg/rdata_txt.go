package dnsmsg

import "strings"

// RDataTXT is the list of <character-string>s that make up a TXT record's
// RDATA (§4.1: "a sequence of (len, bytes) character-strings").
type RDataTXT []string

func (txt RDataTXT) String() string {
	quoted := make([]string, len(txt))
	for i, s := range txt {
		quoted[i] = `"` + s + `"`
	}
	return strings.Join(quoted, " ")
}

func (txt RDataTXT) encode(e *encoder) error {
	for _, s := range txt {
		b := []byte(s)
		for len(b) > 255 {
			e.bytes([]byte{255})
			e.bytes(b[:255])
			b = b[255:]
		}
		e.bytes([]byte{byte(len(b))})
		e.bytes(b)
	}
	return nil
}

// parseTXT collects the character-strings in a TXT RDATA buffer. A
// malformed trailing length byte stops collection rather than failing the
// whole record (§4.1).
func parseTXT(d []byte) (RDataTXT, error) {
	var out RDataTXT
	pos := 0
	for pos < len(d) {
		l := int(d[pos])
		pos++
		if pos+l > len(d) {
			break
		}
		out = append(out, string(d[pos:pos+l]))
		pos += l
	}
	return out, nil
}

package dnsmsg

import "strconv"

// Type represents a DNS resource record type as defined in RFC 1035 and
// subsequent RFCs. Only the type set this resolver understands natively is
// enumerated; any other wire code still round-trips correctly, it just
// decodes its RDATA as opaque bytes (see RDataOpaque).
type Type uint16

const (
	A     Type = 1
	NS    Type = 2
	CNAME Type = 5
	SOA   Type = 6
	PTR   Type = 12
	MX    Type = 15
	TXT   Type = 16
	AAAA  Type = 28
	SRV   Type = 33
	OPT   Type = 41 // RFC 6891; reserved here, never specially encoded/decoded
	SSHFP Type = 44
	ANY   Type = 255
	CAA   Type = 257
)

var typeNames = map[Type]string{
	A:     "A",
	NS:    "NS",
	CNAME: "CNAME",
	SOA:   "SOA",
	PTR:   "PTR",
	MX:    "MX",
	TXT:   "TXT",
	AAAA:  "AAAA",
	SRV:   "SRV",
	OPT:   "OPT",
	SSHFP: "SSHFP",
	ANY:   "ANY",
	CAA:   "CAA",
}

// StringToType maps string type names to Type values.
var StringToType = map[string]Type{
	"A":     A,
	"NS":    NS,
	"CNAME": CNAME,
	"SOA":   SOA,
	"PTR":   PTR,
	"MX":    MX,
	"TXT":   TXT,
	"AAAA":  AAAA,
	"SRV":   SRV,
	"OPT":   OPT,
	"SSHFP": SSHFP,
	"ANY":   ANY,
	"CAA":   CAA,
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "TYPE" + strconv.Itoa(int(t))
}

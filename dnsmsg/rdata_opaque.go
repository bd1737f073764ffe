package dnsmsg

import "encoding/hex"

// RDataOpaque backs any record type this resolver does not natively
// understand (including OPT, which is reserved per §3 but never given
// special RDATA treatment — EDNS option parsing is out of scope). The raw
// bytes are preserved so the record still round-trips faithfully.
type RDataOpaque struct {
	Type Type
	Data []byte
}

func (rd *RDataOpaque) String() string {
	return hex.EncodeToString(rd.Data)
}

func (rd *RDataOpaque) encode(e *encoder) error {
	e.bytes(rd.Data)
	return nil
}

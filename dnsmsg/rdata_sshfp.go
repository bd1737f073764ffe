package dnsmsg

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// RDataSSHFP is the RDATA of an SSHFP record (RFC 4255):
// algorithm(1) || fingerprint-type(1) || raw fingerprint bytes.
type RDataSSHFP struct {
	Algorithm   uint8
	FPType      uint8
	Fingerprint []byte
}

// NewRDataSSHFP builds SSHFP RDATA, hex-decoding fingerprint if it looks
// like a hex string (the common textual presentation) rather than raw
// bytes, per §4.1.
func NewRDataSSHFP(algorithm, fptype uint8, fingerprint string) (*RDataSSHFP, error) {
	fp, err := hex.DecodeString(strings.TrimSpace(fingerprint))
	if err != nil {
		fp = []byte(fingerprint)
	}
	return &RDataSSHFP{Algorithm: algorithm, FPType: fptype, Fingerprint: fp}, nil
}

func (s *RDataSSHFP) String() string {
	return fmt.Sprintf("%d %d %s", s.Algorithm, s.FPType, strings.ToUpper(hex.EncodeToString(s.Fingerprint)))
}

func (s *RDataSSHFP) encode(e *encoder) error {
	e.bytes([]byte{s.Algorithm, s.FPType})
	e.bytes(s.Fingerprint)
	return nil
}

func parseSSHFP(d []byte) (*RDataSSHFP, error) {
	if len(d) < 2 {
		return nil, ErrInvalidLen
	}
	fp := make([]byte, len(d)-2)
	copy(fp, d[2:])
	return &RDataSSHFP{Algorithm: d[0], FPType: d[1], Fingerprint: fp}, nil
}

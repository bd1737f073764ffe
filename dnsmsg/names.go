package dnsmsg

import "strings"

const (
	maxLabelLen = 63
	maxNameLen  = 253
	maxJumps    = 5
)

// normalizeName strips a single trailing dot, per §4.1: "" and "." both
// collapse to the same (empty) representation, which encodes as the root
// label alone.
func normalizeName(name string) string {
	return strings.TrimSuffix(name, ".")
}

func validateName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > maxNameLen {
		return ErrNameTooLong
	}
	for _, label := range strings.Split(name, ".") {
		if len(label) > maxLabelLen {
			return ErrLabelTooLong
		}
	}
	return nil
}

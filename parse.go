// FILE: cfgtemplate/parse.go
package cfgtemplate

import (
	"strconv"
	"strings"
)

// ParseBool converts text to a boolean.
// The tokens "0", "false" and "off" (any case) are false; every other string,
// including the empty string, is true. It never fails.
func ParseBool(s string) bool {
	switch {
	case s == "0", strings.EqualFold(s, "false"), strings.EqualFold(s, "off"):
		return false
	default:
		return true
	}
}

// FormatBool is the canonical textual form used by boolean values.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// ParseInt parses base-10 text into the native integer type described by kind.
// The result carries the value's bit pattern sign- or zero-extended to 64 bits,
// which is how integer values store their payload.
// Values outside the range of kind are rejected.
func ParseInt(s string, kind IntKind) (int64, error) {
	if kind.Signed() {
		return strconv.ParseInt(s, 10, kind.Bits())
	}
	// ParseUint rejects a sign; accept the explicit "+" ParseInt allows.
	u, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, kind.Bits())
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// FormatInt renders a stored integer payload of the given kind in base 10.
func FormatInt(bits int64, kind IntKind) string {
	if kind.Signed() {
		return strconv.FormatInt(bits, 10)
	}
	return strconv.FormatUint(uint64(bits), 10)
}

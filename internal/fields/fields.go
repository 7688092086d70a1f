// internal/fields/fields.go
package fields

import (
	"fmt"
	"net/netip"
	"strconv"
	"unicode/utf8"
)

// Rack and slot bounds (inclusive).
const (
	RackSlotMin = 0
	RackSlotMax = 63
)

// Entry title bounds, in characters.
const (
	NameMinLen = 2
	NameMaxLen = 128
)

// TSAPLen is the number of hex digits in a TSAP identifier.
const TSAPLen = 4

// ValidIPv4 reports whether s is a dotted-quad IPv4 address.
func ValidIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return addr.Is4() && addr.Zone() == ""
}

// ValidRackOrSlot reports whether n is a usable rack or slot number.
func ValidRackOrSlot(n int) bool {
	return n >= RackSlotMin && n <= RackSlotMax
}

// ValidTSAP reports whether s is exactly four hex digits.
func ValidTSAP(s string) bool {
	if len(s) != TSAPLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

// ValidName reports whether s fits the entry title bounds.
func ValidName(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= NameMinLen && n <= NameMaxLen
}

// ParseTSAP converts a validated TSAP string to its 16-bit value.
func ParseTSAP(s string) (uint16, error) {
	if !ValidTSAP(s) {
		return 0, fmt.Errorf("fields: invalid tsap %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("fields: invalid tsap %q: %w", s, err)
	}
	return uint16(v), nil
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}

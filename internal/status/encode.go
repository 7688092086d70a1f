// internal/status/encode.go
package status

// Encode converts a Snapshot into a full probe status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerBlock)

	regs[SlotHealthCode] = s.Health
	regs[SlotLastResultCode] = s.LastResultCode
	regs[SlotConsecutiveFailures] = s.ConsecutiveFailures
	regs[SlotFamily] = s.Family

	// Slots SlotReservedStart..SlotReservedEnd are RESERVED -> left as zero

	copy(regs[SlotDeviceIDStart:], EncodeDeviceID(s.DeviceID))

	return regs
}

// EncodeDeviceID packs up to DeviceIDMaxChars ASCII characters into
// SlotDeviceIDSlots registers, two bytes per register, big-endian.
func EncodeDeviceID(id string) []uint16 {
	out := make([]uint16, SlotDeviceIDSlots)

	b := []byte(id)
	if len(b) > DeviceIDMaxChars {
		b = b[:DeviceIDMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceIDMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

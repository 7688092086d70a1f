// internal/status/writer.go
package status

import (
	"errors"
	"fmt"
	"strings"
)

// EndpointClient is the one Modbus call the writer needs.
type EndpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// Writer is the delivery-only side of the status block.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type Writer struct {
	cli      EndpointClient
	unitID   uint8
	baseSlot uint16

	needFull bool
	last     Snapshot
}

// NewWriter builds a writer for the block at baseSlot on unitID.
// The first successful write re-asserts the full block.
func NewWriter(cli EndpointClient, unitID uint8, baseSlot uint16) (*Writer, error) {
	if cli == nil {
		return nil, errors.New("status writer: endpoint client required")
	}
	if baseSlot > MaxBaseSlot {
		return nil, fmt.Errorf("status writer: slot %d out of range (max %d)", baseSlot, MaxBaseSlot)
	}
	return &Writer{
		cli:      cli,
		unitID:   unitID,
		baseSlot: baseSlot,
		needFull: true,
		last:     Snapshot{Health: HealthUnknown},
	}, nil
}

// BaseAddr is the holding register address of slot 0.
func (sw *Writer) BaseAddr() uint16 {
	// Each block owns a fixed SlotsPerBlock range.
	return sw.baseSlot * SlotsPerBlock
}

// WriteStatus delivers a snapshot into status memory.
// On any write failure, the next successful call will re-assert the full block.
func (sw *Writer) WriteStatus(s Snapshot) error {
	base := sw.BaseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.unitID, base, Encode(s)); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string

	write := func(slot uint16, name string, regs []uint16) bool {
		if err := sw.cli.WriteRegisters(sw.unitID, base+slot, regs); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", slot, name, err))
			return false
		}
		return true
	}

	if sw.last.Health != s.Health && write(SlotHealthCode, "health", []uint16{s.Health}) {
		sw.last.Health = s.Health
	}
	if sw.last.LastResultCode != s.LastResultCode && write(SlotLastResultCode, "last_result", []uint16{s.LastResultCode}) {
		sw.last.LastResultCode = s.LastResultCode
	}
	if sw.last.ConsecutiveFailures != s.ConsecutiveFailures && write(SlotConsecutiveFailures, "failures", []uint16{s.ConsecutiveFailures}) {
		sw.last.ConsecutiveFailures = s.ConsecutiveFailures
	}
	if sw.last.Family != s.Family && write(SlotFamily, "family", []uint16{s.Family}) {
		sw.last.Family = s.Family
	}
	if sw.last.DeviceID != s.DeviceID && write(SlotDeviceIDStart, "device_id", EncodeDeviceID(s.DeviceID)) {
		sw.last.DeviceID = s.DeviceID
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

// internal/status/writer_test.go
package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regWrite struct {
	unitID uint8
	addr   uint16
	regs   []uint16
}

type fakeEndpointClient struct {
	writes []regWrite
	fail   error
}

func (f *fakeEndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if f.fail != nil {
		return f.fail
	}
	f.writes = append(f.writes, regWrite{unitID, addr, append([]uint16(nil), regs...)})
	return nil
}

func (f *fakeEndpointClient) last() regWrite {
	return f.writes[len(f.writes)-1]
}

func TestEncodeDeviceID(t *testing.T) {
	regs := EncodeDeviceID("s7_0a1b")
	require.Len(t, regs, SlotDeviceIDSlots)

	assert.Equal(t, uint16('s')<<8|uint16('7'), regs[0])
	assert.Equal(t, uint16('_')<<8|uint16('0'), regs[1])
	assert.Equal(t, uint16('b')<<8, regs[3])
	assert.Equal(t, uint16(0), regs[4])
}

func TestEncodeDeviceID_TruncatesAndSanitizes(t *testing.T) {
	long := "logo_0a1b2c3d4e5f_and_then_some"
	regs := EncodeDeviceID(long)
	require.Len(t, regs, SlotDeviceIDSlots)
	assert.Equal(t, uint16('t')<<8|uint16('h'), regs[SlotDeviceIDSlots-1])

	regs = EncodeDeviceID("a\x01")
	assert.Equal(t, uint16('a')<<8|uint16('?'), regs[0])
}

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{
		Health:              HealthConnectionFailed,
		LastResultCode:      7,
		ConsecutiveFailures: 2,
		Family:              FamilyS7,
		DeviceID:            "s7_00",
	})

	require.Len(t, regs, SlotsPerBlock)
	assert.Equal(t, HealthConnectionFailed, regs[SlotHealthCode])
	assert.Equal(t, uint16(7), regs[SlotLastResultCode])
	assert.Equal(t, uint16(2), regs[SlotConsecutiveFailures])
	assert.Equal(t, FamilyS7, regs[SlotFamily])
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		assert.Zero(t, regs[i], "reserved slot %d", i)
	}
	assert.Equal(t, uint16('s')<<8|uint16('7'), regs[SlotDeviceIDStart])
	assert.Equal(t, SlotsPerBlock-1, SlotDeviceIDEnd)
}

func TestNewWriter_RequiresClient(t *testing.T) {
	_, err := NewWriter(nil, 1, 0)
	assert.Error(t, err)
}

func TestNewWriter_SlotRange(t *testing.T) {
	cli := &fakeEndpointClient{}

	w, err := NewWriter(cli, 1, MaxBaseSlot)
	require.NoError(t, err)
	assert.Equal(t, uint16(65496), w.BaseAddr())
	require.NoError(t, w.WriteStatus(Snapshot{}))
	assert.Len(t, cli.last().regs, SlotsPerBlock)

	// 2730*24 wraps past the register space.
	_, err = NewWriter(cli, 1, MaxBaseSlot+1)
	assert.Error(t, err)
	_, err = NewWriter(cli, 1, 2731)
	assert.Error(t, err)
}

func TestDeviceIDWrittenOnFullAssertThenIncremental(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewWriter(cli, 3, 2)
	require.NoError(t, err)

	// ---- first write: FULL ASSERT ----
	first := Snapshot{Health: HealthConnected, Family: FamilyLogo, DeviceID: "logo_001122334455"}
	require.NoError(t, sw.WriteStatus(first))

	w := cli.last()
	assert.Equal(t, uint8(3), w.unitID)
	assert.Equal(t, uint16(2*SlotsPerBlock), w.addr)
	require.Len(t, w.regs, SlotsPerBlock)
	assert.Equal(t, EncodeDeviceID(first.DeviceID), w.regs[SlotDeviceIDStart:])

	// ---- second write: INCREMENTAL ONLY ----
	second := first
	second.Health = HealthConnectionFailed
	second.LastResultCode = 7
	require.NoError(t, sw.WriteStatus(second))

	require.Len(t, cli.writes, 3)
	assert.Equal(t, regWrite{3, sw.BaseAddr() + SlotHealthCode, []uint16{HealthConnectionFailed}}, cli.writes[1])
	assert.Equal(t, regWrite{3, sw.BaseAddr() + SlotLastResultCode, []uint16{7}}, cli.writes[2])

	// ---- device id change rewrites only the id range ----
	third := second
	third.DeviceID = ""
	require.NoError(t, sw.WriteStatus(third))

	w = cli.last()
	assert.Equal(t, sw.BaseAddr()+SlotDeviceIDStart, w.addr)
	assert.Equal(t, make([]uint16, SlotDeviceIDSlots), w.regs)
}

func TestUnchangedSnapshotWritesNothing(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewWriter(cli, 1, 0)
	require.NoError(t, err)

	s := Snapshot{Health: HealthConnected}
	require.NoError(t, sw.WriteStatus(s))
	require.NoError(t, sw.WriteStatus(s))
	assert.Len(t, cli.writes, 1)
}

func TestFailureForcesFullReassert(t *testing.T) {
	cli := &fakeEndpointClient{}
	sw, err := NewWriter(cli, 1, 0)
	require.NoError(t, err)

	require.NoError(t, sw.WriteStatus(Snapshot{Health: HealthConnected}))

	cli.fail = errors.New("broken pipe")
	assert.Error(t, sw.WriteStatus(Snapshot{Health: HealthConnectionFailed}))

	cli.fail = nil
	require.NoError(t, sw.WriteStatus(Snapshot{Health: HealthConnectionFailed}))
	assert.Len(t, cli.last().regs, SlotsPerBlock)
}

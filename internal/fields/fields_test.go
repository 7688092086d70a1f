// internal/fields/fields_test.go
package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidIPv4(t *testing.T) {
	valid := []string{"192.168.0.1", "10.0.0.5", "0.0.0.0", "255.255.255.255"}
	invalid := []string{
		"192.168.0.256",
		"not-an-ip",
		"",
		"10.0.0",
		"10.0.0.5.1",
		"::1",
		"::ffff:10.0.0.5",
		"010.0.0.5",
		"10.0.0.5 ",
		"10.0.0.5%eth0",
	}

	for _, s := range valid {
		assert.True(t, ValidIPv4(s), s)
	}
	for _, s := range invalid {
		assert.False(t, ValidIPv4(s), s)
	}
}

func TestValidRackOrSlot_Bounds(t *testing.T) {
	assert.True(t, ValidRackOrSlot(0))
	assert.True(t, ValidRackOrSlot(2))
	assert.True(t, ValidRackOrSlot(63))
	assert.False(t, ValidRackOrSlot(-1))
	assert.False(t, ValidRackOrSlot(64))
	assert.False(t, ValidRackOrSlot(70))
}

func TestValidTSAP(t *testing.T) {
	for _, s := range []string{"10a1", "1000", "2000", "FFFF", "aBcD", "0000"} {
		assert.True(t, ValidTSAP(s), s)
	}
	for _, s := range []string{"10a", "10g1", "", "10000", "0x10", " 100", "10-1", "ｆｆｆｆ"} {
		assert.False(t, ValidTSAP(s), s)
	}
}

func TestValidName(t *testing.T) {
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("a"))
	assert.True(t, ValidName("ab"))
	assert.True(t, ValidName("Pump house Logo!"))

	long := make([]rune, NameMaxLen)
	for i := range long {
		long[i] = 'ü'
	}
	assert.True(t, ValidName(string(long)))
	assert.False(t, ValidName(string(long)+"x"))
}

func TestParseTSAP(t *testing.T) {
	v, err := ParseTSAP("1000")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1000), v)

	v, err = ParseTSAP("fFfF")
	require.NoError(t, err)
	assert.Equal(t, uint16(0xFFFF), v)

	_, err = ParseTSAP("10g1")
	assert.Error(t, err)
}

package memory

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSpaceKindString(t *testing.T) {
	assert.Equal(t, "PrgRom", PrgRom.String())
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "Unknown", SpaceKind(42).String())
	assert.Equal(t, "Unknown", SpaceKind(-1).String())
}

func TestAddressInfoMapped(t *testing.T) {
	assert.True(t, AddressInfo{Offset: 0, Kind: PrgRom}.Mapped())
	assert.False(t, AddressInfo{Offset: -1, Kind: None}.Mapped())
}

func TestAddressSpaceBoundaries(t *testing.T) {
	assert.Equal(t, 0x4020, RegisterEnd)
	assert.Equal(t, 0x20, PaletteSize)
}

// Package memory defines the address translation contract between the debugger
// and the cartridge mapper.
package memory

import "github.com/retroenv/retrogolib/arch/system/nes"

// SpaceKind defines the backing store that a CPU address is mapped to.
type SpaceKind int

// CPU address space kinds.
const (
	None SpaceKind = iota
	InternalRam
	Register
	PrgRom
	WorkRam
	SaveRam
)

var spaceKindNames = [...]string{
	None:        "None",
	InternalRam: "InternalRam",
	Register:    "Register",
	PrgRom:      "PrgRom",
	WorkRam:     "WorkRam",
	SaveRam:     "SaveRam",
}

func (k SpaceKind) String() string {
	if k < 0 || int(k) >= len(spaceKindNames) {
		return "Unknown"
	}
	return spaceKindNames[k]
}

// NES address space boundaries that are not part of the cartridge mapping.
const (
	RegisterEnd  = nes.IORegisterEndAddress + 1 // first CPU address after the I/O registers
	PaletteStart = 0x3f00                       // first PPU address of the palette RAM
	PaletteSize  = nes.PaletteSize
)

// GraphicsKind defines the backing store that a PPU address is mapped to.
type GraphicsKind int

// PPU address space kinds.
const (
	GraphicsNone GraphicsKind = iota
	ChrRom
	ChrRam
	NametableRam
	PaletteRam
)

// AddressInfo is the physical location that a CPU address currently resolves to.
// Offset is -1 if the address is not mapped to any backing store.
type AddressInfo struct {
	Offset int32
	Kind   SpaceKind
}

// Mapped returns whether the address resolved to a backing store.
func (a AddressInfo) Mapped() bool {
	return a.Offset >= 0
}

// GraphicsInfo is the physical location that a PPU address currently resolves to.
type GraphicsInfo struct {
	Offset int32
	Kind   GraphicsKind
}

// Resolver translates between logical and physical addresses. The mapping can change
// between calls as the cartridge switches banks, results must not be cached.
type Resolver interface {
	// AddressInfo returns the physical offset and kind of the CPU address.
	AddressInfo(address uint16) AddressInfo
	// GraphicsAddressInfo returns the physical offset and kind of the PPU address.
	GraphicsAddressInfo(address uint16) GraphicsInfo
	// ToAbsoluteAddress returns the PRG ROM offset of the CPU address or -1.
	ToAbsoluteAddress(address uint16) int32
	// ToAbsoluteChrAddress returns the CHR offset of the PPU address or -1.
	ToAbsoluteChrAddress(address uint16) int32
	// FromAbsoluteAddress returns the CPU address that the physical offset is currently
	// visible at or -1.
	FromAbsoluteAddress(offset int32, kind SpaceKind) int32
	// FromAbsoluteGraphicsAddress returns the PPU address that the physical offset is
	// currently visible at or -1.
	FromAbsoluteGraphicsAddress(offset int32, kind GraphicsKind) int32
	// MemorySize returns the size of the backing store.
	MemorySize(kind SpaceKind) int
	// GraphicsMemorySize returns the size of the graphics backing store.
	GraphicsMemorySize(kind GraphicsKind) int
}

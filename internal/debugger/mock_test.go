package debugger

import (
	"github.com/retroenv/retrodebug/internal/memory"
)

type mockCPU struct {
	state     CPUState
	setStates []CPUState
	debugPCs  []uint16
}

func (m *mockCPU) PC() uint16 { return m.state.PC }

func (m *mockCPU) SetDebugPC(address uint16) {
	m.debugPCs = append(m.debugPCs, address)
	m.state.PC = address
}

func (m *mockCPU) State() CPUState { return m.state }

func (m *mockCPU) SetState(state CPUState) {
	m.setStates = append(m.setStates, state)
	m.state = state
}

type mockPPU struct {
	state PPUState
}

func (m *mockPPU) State() PPUState         { return m.state }
func (m *mockPPU) SetState(state PPUState) { m.state = state }

type mockAPU struct {
	state APUState
	runs  int
}

func (m *mockAPU) Run()            { m.runs++ }
func (m *mockAPU) State() APUState { return m.state }

type mockCartridge struct {
	state CartridgeState
}

func (m *mockCartridge) State() CartridgeState { return m.state }

// mockMemory returns the low byte of the address for every read.
type mockMemory struct {
	reads []uint16
}

func (m *mockMemory) DebugRead(address uint16) byte {
	m.reads = append(m.reads, address)
	return byte(address)
}

type mockFormatter struct {
	builds []bool
}

func (m *mockFormatter) BuildOpcodeTables(lowercase bool) {
	m.builds = append(m.builds, lowercase)
}

// mockResolver maps a 32KB PRG ROM at $8000 and a 8KB CHR ROM at PPU $0000.
type mockResolver struct {
	bankOffset int32 // PRG offset mapped at $C000
}

func newMockResolver() *mockResolver {
	return &mockResolver{bankOffset: 0x4000}
}

func (m *mockResolver) AddressInfo(address uint16) memory.AddressInfo {
	switch {
	case address < 0x2000:
		return memory.AddressInfo{Offset: int32(address & 0x7ff), Kind: memory.InternalRam}
	case address < 0x4020:
		return memory.AddressInfo{Offset: int32(address), Kind: memory.Register}
	case address < 0x6000:
		return memory.AddressInfo{Offset: -1, Kind: memory.None}
	case address < 0x8000:
		return memory.AddressInfo{Offset: int32(address - 0x6000), Kind: memory.WorkRam}
	case address < 0xc000:
		return memory.AddressInfo{Offset: int32(address - 0x8000), Kind: memory.PrgRom}
	default:
		return memory.AddressInfo{Offset: m.bankOffset + int32(address-0xc000), Kind: memory.PrgRom}
	}
}

func (m *mockResolver) GraphicsAddressInfo(address uint16) memory.GraphicsInfo {
	address &= 0x3fff
	switch {
	case address < 0x2000:
		return memory.GraphicsInfo{Offset: int32(address), Kind: memory.ChrRom}
	case address < 0x3f00:
		return memory.GraphicsInfo{Offset: int32(address & 0x7ff), Kind: memory.NametableRam}
	default:
		return memory.GraphicsInfo{Offset: int32(address & 0x1f), Kind: memory.PaletteRam}
	}
}

func (m *mockResolver) ToAbsoluteAddress(address uint16) int32 {
	info := m.AddressInfo(address)
	if info.Kind != memory.PrgRom {
		return -1
	}
	return info.Offset
}

func (m *mockResolver) ToAbsoluteChrAddress(address uint16) int32 {
	info := m.GraphicsAddressInfo(address)
	if info.Kind != memory.ChrRom {
		return -1
	}
	return info.Offset
}

func (m *mockResolver) FromAbsoluteAddress(offset int32, kind memory.SpaceKind) int32 {
	switch kind {
	case memory.PrgRom:
		if offset >= 0 && offset < 0x4000 {
			return 0x8000 + offset
		}
		if offset >= m.bankOffset && offset < m.bankOffset+0x4000 {
			return 0xc000 + offset - m.bankOffset
		}
	case memory.WorkRam:
		if offset >= 0 && offset < 0x2000 {
			return 0x6000 + offset
		}
	}
	return -1
}

func (m *mockResolver) FromAbsoluteGraphicsAddress(offset int32, kind memory.GraphicsKind) int32 {
	if kind == memory.ChrRom && offset >= 0 && offset < 0x2000 {
		return offset
	}
	return -1
}

func (m *mockResolver) MemorySize(kind memory.SpaceKind) int {
	if kind == memory.PrgRom {
		return 0x8000
	}
	return 0
}

func (m *mockResolver) GraphicsMemorySize(kind memory.GraphicsKind) int {
	if kind == memory.ChrRom {
		return 0x2000
	}
	return 0
}

// mockStorage is a PRG ROM filled with NOP instructions.
type mockStorage struct{}

func (m mockStorage) Read(kind memory.SpaceKind, offset int32) (byte, bool) {
	if kind != memory.PrgRom || offset < 0 || offset >= 0x8000 {
		return 0, false
	}
	return 0xea, true
}

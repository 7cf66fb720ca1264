package disasm

import (
	"fmt"

	"github.com/retroenv/retrodebug/internal/memory"
)

// mockResolver maps CPU addresses through a table of 256 byte blocks,
// blocks without entry are not mapped.
type mockResolver struct {
	blocks map[uint16]memory.AddressInfo
	calls  int
}

func newMockResolver() *mockResolver {
	return &mockResolver{blocks: map[uint16]memory.AddressInfo{}}
}

// mapBlocks maps count blocks starting at the CPU address to contiguous physical offsets.
func (m *mockResolver) mapBlocks(address uint16, count int, kind memory.SpaceKind, offset int32) {
	for i := range count {
		m.blocks[address+uint16(i*BlockSize)] = memory.AddressInfo{
			Offset: offset + int32(i*BlockSize),
			Kind:   kind,
		}
	}
}

func (m *mockResolver) AddressInfo(address uint16) memory.AddressInfo {
	m.calls++
	block := address &^ (BlockSize - 1)
	info, ok := m.blocks[block]
	if !ok {
		return memory.AddressInfo{Offset: -1, Kind: memory.None}
	}
	info.Offset += int32(address - block)
	return info
}

func (m *mockResolver) GraphicsAddressInfo(uint16) memory.GraphicsInfo {
	return memory.GraphicsInfo{Offset: -1}
}

func (m *mockResolver) ToAbsoluteAddress(address uint16) int32 {
	info := m.AddressInfo(address)
	if info.Kind != memory.PrgRom {
		return -1
	}
	return info.Offset
}

func (m *mockResolver) ToAbsoluteChrAddress(uint16) int32 { return -1 }

func (m *mockResolver) FromAbsoluteAddress(int32, memory.SpaceKind) int32 { return -1 }

func (m *mockResolver) FromAbsoluteGraphicsAddress(int32, memory.GraphicsKind) int32 { return -1 }

func (m *mockResolver) MemorySize(memory.SpaceKind) int { return 0 }

func (m *mockResolver) GraphicsMemorySize(memory.GraphicsKind) int { return 0 }

// mockRenderer records all requested runs.
type mockRenderer struct {
	runs []Run
}

func (m *mockRenderer) Code(run Run) string {
	m.runs = append(m.runs, run)
	return fmt.Sprintf("%04X:%s:%X-%X\n", run.LogicalStart, run.Kind, run.PhysicalStart, run.PhysicalEnd)
}

type mockPC uint16

func (m mockPC) PC() uint16 { return uint16(m) }

// mockStorage is a flat PRG ROM with optional internal RAM.
type mockStorage struct {
	prg []byte
	ram []byte
}

func (m *mockStorage) Read(kind memory.SpaceKind, offset int32) (byte, bool) {
	var buf []byte
	switch kind {
	case memory.PrgRom:
		buf = m.prg
	case memory.InternalRam:
		buf = m.ram
	default:
		return 0, false
	}
	if offset < 0 || int(offset) >= len(buf) {
		return 0, false
	}
	return buf[offset], true
}

// mockCodeFlags marks offsets as code or annotated.
type mockCodeFlags struct {
	code          map[int]bool
	jumpTarget    map[int]bool
	subEntryPoint map[int]bool
}

func newMockCodeFlags() *mockCodeFlags {
	return &mockCodeFlags{
		code:          map[int]bool{},
		jumpTarget:    map[int]bool{},
		subEntryPoint: map[int]bool{},
	}
}

func (m *mockCodeFlags) IsCode(address int) bool          { return m.code[address] }
func (m *mockCodeFlags) IsJumpTarget(address int) bool    { return m.jumpTarget[address] }
func (m *mockCodeFlags) IsSubEntryPoint(address int) bool { return m.subEntryPoint[address] }

package mapper

import "github.com/retroenv/retrodebug/internal/memory"

// Read returns the byte at the physical offset of the backing store. Registers can not
// be read without side effects and are reported as not readable.
func (m *Mapper) Read(kind memory.SpaceKind, offset int32) (byte, bool) {
	var buf []byte

	switch kind {
	case memory.PrgRom:
		buf = m.prg
	case memory.InternalRam:
		buf = m.internalRAM
	case memory.WorkRam, memory.SaveRam:
		if kind != m.prgRAMKind() {
			return 0, false
		}
		buf = m.prgRAM
	default:
		return 0, false
	}

	if offset < 0 || int(offset) >= len(buf) {
		return 0, false
	}
	return buf[offset], true
}

// Write sets the byte at the physical offset of a RAM backing store.
// Writes to PRG ROM and registers are ignored.
func (m *Mapper) Write(kind memory.SpaceKind, offset int32, value byte) {
	var buf []byte

	switch kind {
	case memory.InternalRam:
		buf = m.internalRAM
	case memory.WorkRam, memory.SaveRam:
		if kind != m.prgRAMKind() {
			return
		}
		buf = m.prgRAM
	default:
		return
	}

	if offset >= 0 && int(offset) < len(buf) {
		buf[offset] = value
	}
}

// DebugRead reads the byte visible at the CPU address without triggering side effects.
// Unmapped addresses and registers read as 0.
func (m *Mapper) DebugRead(address uint16) byte {
	info := m.AddressInfo(address)
	b, _ := m.Read(info.Kind, info.Offset)
	return b
}

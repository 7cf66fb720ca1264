// Package mapper provides a bank window based address resolver for NES cartridges.
package mapper

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrodebug/internal/memory"
	"github.com/retroenv/retrogolib/arch/system/nes"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

const (
	internalRAMSize  = 0x800
	prgRAMSize       = 0x2000
	chrRAMSize       = 0x2000
	nametableRAMSize = 0x800
	paletteRAMSize   = memory.PaletteSize

	chrWindowSize = 0x400
	chrWindows    = 0x2000 / chrWindowSize

	prgRAMStart  = 0x6000
	prgROMStart  = nes.CodeBaseAddress
	registerEnd  = memory.RegisterEnd
	nametableEnd = memory.PaletteStart
	paletteStart = memory.PaletteStart
)

var (
	// ErrInvalidWindowSize is returned for unsupported PRG window sizes or misaligned PRG data.
	ErrInvalidWindowSize = errors.New("invalid bank window size")
	// ErrInvalidBank is returned when switching to a bank or window that does not exist.
	ErrInvalidBank = errors.New("invalid bank")
)

var _ memory.Resolver = (*Mapper)(nil)

// Mapper resolves CPU and PPU addresses of a cartridge through switchable bank windows.
type Mapper struct {
	prg    []byte
	chr    []byte
	chrRAM bool

	battery      bool
	internalRAM  []byte
	prgRAM       []byte
	nametableRAM []byte
	paletteRAM   []byte

	addressShifts  int
	bankWindowSize int
	prgBanks       int

	mapped    []int32 // PRG offset of every CPU bank window, -1 if not mapped
	chrMapped []int32 // CHR offset of every PPU 1KB window
}

// Option configures the mapper.
type Option func(*Mapper)

// WithBankWindowSize sets the size of the switchable PRG windows, supported are
// 0x2000, 0x4000 and 0x8000.
func WithBankWindowSize(size int) Option {
	return func(m *Mapper) {
		m.bankWindowSize = size
	}
}

// New creates a new mapper for the cartridge. Carts without CHR ROM get CHR RAM.
func New(cart *cartridge.Cartridge, options ...Option) (*Mapper, error) {
	m := &Mapper{
		prg:            cart.PRG,
		chr:            cart.CHR,
		battery:        cart.Battery != 0,
		internalRAM:    make([]byte, internalRAMSize),
		prgRAM:         make([]byte, prgRAMSize),
		nametableRAM:   make([]byte, nametableRAMSize),
		paletteRAM:     make([]byte, paletteRAMSize),
		bankWindowSize: 0x2000,
		chrMapped:      make([]int32, chrWindows),
	}
	for _, option := range options {
		option(m)
	}

	switch m.bankWindowSize {
	case 0x2000, 0x4000, 0x8000:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, m.bankWindowSize)
	}
	if len(m.prg)%m.bankWindowSize != 0 {
		return nil, fmt.Errorf("%w: invalid bank alignment for PRG size %d", ErrInvalidWindowSize, len(m.prg))
	}

	if len(m.chr) == 0 {
		m.chr = make([]byte, chrRAMSize)
		m.chrRAM = true
	}

	mappedWindows := 0x10000 / m.bankWindowSize
	m.addressShifts = 16 - log2(mappedWindows)
	m.prgBanks = len(m.prg) / m.bankWindowSize
	m.mapped = make([]int32, mappedWindows)
	for i := range m.mapped {
		m.mapped[i] = -1
	}

	m.configureDefaultBankMapping()
	return m, nil
}

// configureDefaultBankMapping maps the first banks to the lower half of the PRG ROM area
// and the last banks to the upper half, smaller carts are mirrored.
func (m *Mapper) configureDefaultBankMapping() {
	if m.prgBanks > 0 {
		first := int(prgROMStart) / m.bankWindowSize
		windows := len(m.mapped) - first
		half := windows / 2

		for i := range windows {
			var bank int
			if i < half {
				bank = i % m.prgBanks
			} else {
				bank = ((m.prgBanks-(windows-i))%m.prgBanks + m.prgBanks) % m.prgBanks
			}
			m.mapped[first+i] = int32(bank * m.bankWindowSize)
		}
	}

	chrBanks := max(len(m.chr)/chrWindowSize, 1)
	for i := range m.chrMapped {
		m.chrMapped[i] = int32((i % chrBanks) * chrWindowSize)
	}
}

// SetPrgBank maps the PRG bank to the window that contains the CPU address.
func (m *Mapper) SetPrgBank(address uint16, bank int) error {
	if address < prgROMStart {
		return fmt.Errorf("%w: address $%04X is not in PRG ROM area", ErrInvalidBank, address)
	}
	if bank < 0 || bank >= m.prgBanks {
		return fmt.Errorf("%w: PRG bank %d of %d", ErrInvalidBank, bank, m.prgBanks)
	}
	m.mapped[address>>m.addressShifts] = int32(bank * m.bankWindowSize)
	return nil
}

// SetChrBank maps the 1KB CHR bank to the window that contains the PPU address.
func (m *Mapper) SetChrBank(address uint16, bank int) error {
	if address >= 0x2000 {
		return fmt.Errorf("%w: address $%04X is not in pattern table area", ErrInvalidBank, address)
	}
	banks := len(m.chr) / chrWindowSize
	if bank < 0 || bank >= banks {
		return fmt.Errorf("%w: CHR bank %d of %d", ErrInvalidBank, bank, banks)
	}
	m.chrMapped[address/chrWindowSize] = int32(bank * chrWindowSize)
	return nil
}

// BankWindowSize returns the size of the PRG bank windows.
func (m *Mapper) BankWindowSize() int {
	return m.bankWindowSize
}

// PrgPages returns the PRG offset of every CPU bank window, -1 for unmapped windows.
func (m *Mapper) PrgPages() []int32 {
	pages := make([]int32, len(m.mapped))
	copy(pages, m.mapped)
	return pages
}

// ChrPages returns the CHR offset of every 1KB PPU window.
func (m *Mapper) ChrPages() []int32 {
	pages := make([]int32, len(m.chrMapped))
	copy(pages, m.chrMapped)
	return pages
}

// ChrRAM returns whether the pattern tables are backed by CHR RAM.
func (m *Mapper) ChrRAM() bool {
	return m.chrRAM
}

// HasBattery returns whether the save RAM is battery backed.
func (m *Mapper) HasBattery() bool {
	return m.battery
}

// AddressInfo returns the physical offset and kind of the CPU address.
func (m *Mapper) AddressInfo(address uint16) memory.AddressInfo {
	switch {
	case address < 0x2000:
		return memory.AddressInfo{Offset: int32(address & (internalRAMSize - 1)), Kind: memory.InternalRam}

	case address < registerEnd:
		return memory.AddressInfo{Offset: int32(address), Kind: memory.Register}

	case address < prgRAMStart:
		return memory.AddressInfo{Offset: -1, Kind: memory.None}

	case address < prgROMStart:
		return memory.AddressInfo{Offset: int32(address - prgRAMStart), Kind: m.prgRAMKind()}

	default:
		start := m.mapped[address>>m.addressShifts]
		if start < 0 {
			return memory.AddressInfo{Offset: -1, Kind: memory.None}
		}
		index := int32(int(address) % m.bankWindowSize)
		return memory.AddressInfo{Offset: start + index, Kind: memory.PrgRom}
	}
}

// GraphicsAddressInfo returns the physical offset and kind of the PPU address.
func (m *Mapper) GraphicsAddressInfo(address uint16) memory.GraphicsInfo {
	address &= 0x3fff

	switch {
	case address < 0x2000:
		kind := memory.ChrRom
		if m.chrRAM {
			kind = memory.ChrRam
		}
		start := m.chrMapped[address/chrWindowSize]
		return memory.GraphicsInfo{Offset: start + int32(address%chrWindowSize), Kind: kind}

	case address < nametableEnd:
		return memory.GraphicsInfo{Offset: int32((address - 0x2000) & (nametableRAMSize - 1)), Kind: memory.NametableRam}

	default:
		return memory.GraphicsInfo{Offset: int32(address & (paletteRAMSize - 1)), Kind: memory.PaletteRam}
	}
}

// ToAbsoluteAddress returns the PRG ROM offset of the CPU address or -1.
func (m *Mapper) ToAbsoluteAddress(address uint16) int32 {
	info := m.AddressInfo(address)
	if info.Kind != memory.PrgRom {
		return -1
	}
	return info.Offset
}

// ToAbsoluteChrAddress returns the CHR offset of the PPU address or -1.
func (m *Mapper) ToAbsoluteChrAddress(address uint16) int32 {
	info := m.GraphicsAddressInfo(address)
	if info.Kind != memory.ChrRom && info.Kind != memory.ChrRam {
		return -1
	}
	return info.Offset
}

// FromAbsoluteAddress returns the CPU address that the physical offset is currently
// visible at or -1. For mirrored banks the lowest address is returned.
func (m *Mapper) FromAbsoluteAddress(offset int32, kind memory.SpaceKind) int32 {
	if offset < 0 {
		return -1
	}

	switch kind {
	case memory.PrgRom:
		size := int32(m.bankWindowSize)
		for window := int(prgROMStart) / m.bankWindowSize; window < len(m.mapped); window++ {
			start := m.mapped[window]
			if start >= 0 && offset >= start && offset < start+size {
				return int32(window)*size + offset - start
			}
		}

	case memory.WorkRam, memory.SaveRam:
		if kind == m.prgRAMKind() && int(offset) < len(m.prgRAM) {
			return prgRAMStart + offset
		}

	case memory.InternalRam:
		if offset < internalRAMSize {
			return offset
		}

	case memory.Register:
		if offset >= 0x2000 && offset < registerEnd {
			return offset
		}
	}

	return -1
}

// FromAbsoluteGraphicsAddress returns the PPU address that the physical offset is
// currently visible at or -1.
func (m *Mapper) FromAbsoluteGraphicsAddress(offset int32, kind memory.GraphicsKind) int32 {
	if offset < 0 {
		return -1
	}

	switch kind {
	case memory.ChrRom, memory.ChrRam:
		if (kind == memory.ChrRam) != m.chrRAM {
			return -1
		}
		for window, start := range m.chrMapped {
			if offset >= start && offset < start+chrWindowSize {
				return int32(window*chrWindowSize) + offset - start
			}
		}

	case memory.NametableRam:
		if offset < nametableRAMSize {
			return 0x2000 + offset
		}

	case memory.PaletteRam:
		return paletteStart | offset&(paletteRAMSize-1)
	}

	return -1
}

// MemorySize returns the size of the backing store.
func (m *Mapper) MemorySize(kind memory.SpaceKind) int {
	switch kind {
	case memory.PrgRom:
		return len(m.prg)
	case memory.InternalRam:
		return len(m.internalRAM)
	case memory.WorkRam, memory.SaveRam:
		if kind == m.prgRAMKind() {
			return len(m.prgRAM)
		}
	}
	return 0
}

// GraphicsMemorySize returns the size of the graphics backing store.
// CHR ROM has a size of 0 for cartridges that use CHR RAM.
func (m *Mapper) GraphicsMemorySize(kind memory.GraphicsKind) int {
	switch kind {
	case memory.ChrRom:
		if !m.chrRAM {
			return len(m.chr)
		}
	case memory.ChrRam:
		if m.chrRAM {
			return len(m.chr)
		}
	case memory.NametableRam:
		return len(m.nametableRAM)
	case memory.PaletteRam:
		return len(m.paletteRAM)
	}
	return 0
}

func (m *Mapper) prgRAMKind() memory.SpaceKind {
	if m.battery {
		return memory.SaveRam
	}
	return memory.WorkRam
}

// log2 computes the binary logarithm of x, rounded up to the next integer.
func log2(i int) int {
	var n, p int
	for p = 1; p < i; p += p {
		n++
	}
	return n
}

// Package codedata tracks how every byte of the PRG and CHR storage of a cartridge
// was used during execution.
package codedata

// Map is a byte per location usage map of the PRG and CHR storage.
// The first prgSize bytes hold PrgFlag values, the following chrSize bytes ChrFlag values.
// It is not safe for concurrent use, the emulation is expected to be paused while reading.
type Map struct {
	prgSize int
	chrSize int
	data    []byte

	stats Stats
}

// New returns a new zero initialized usage map for the given storage sizes.
func New(prgSize, chrSize int) *Map {
	if prgSize < 0 {
		prgSize = 0
	}
	if chrSize < 0 {
		chrSize = 0
	}
	return &Map{
		prgSize: prgSize,
		chrSize: chrSize,
		data:    make([]byte, prgSize+chrSize),
	}
}

// PrgSize returns the size of the tracked PRG storage.
func (m *Map) PrgSize() int {
	return m.prgSize
}

// ChrSize returns the size of the tracked CHR storage.
func (m *Map) ChrSize() int {
	return m.chrSize
}

// Reset clears all flags and statistics.
func (m *Map) Reset() {
	clear(m.data)
	m.stats = Stats{}
}

// SetPrgFlag marks the PRG byte at the given absolute address with the flag.
// Code and data are exclusive, code replaces data while data never replaces code.
// Addresses outside of the PRG storage are ignored.
func (m *Map) SetPrgFlag(address int, flag PrgFlag) {
	if address < 0 || address >= m.prgSize {
		return
	}

	b := PrgFlag(m.data[address])
	if b&flag == flag {
		return
	}

	b |= flag &^ (Code | Data)

	switch {
	case flag&Code != 0 && b&Code == 0:
		if b&Data != 0 {
			b &^= Data
			m.stats.DataSize--
		}
		b |= Code
		m.stats.CodeSize++

	case flag&Data != 0 && b&(Code|Data) == 0:
		b |= Data
		m.stats.DataSize++
	}

	m.data[address] = byte(b)
}

// SetChrFlag marks the CHR byte at the given absolute CHR address with the flag.
// Addresses outside of the CHR storage are ignored.
func (m *Map) SetChrFlag(address int, flag ChrFlag) {
	if address < 0 || address >= m.chrSize {
		return
	}

	index := m.prgSize + address
	b := ChrFlag(m.data[index])
	if b&flag == flag {
		return
	}

	if b&(Drawn|Read) == 0 {
		m.stats.UsedChrSize++
	}
	newlySet := flag &^ b
	if newlySet&Read != 0 {
		m.stats.ReadChrSize++
	}
	if newlySet&Drawn != 0 {
		m.stats.DrawnChrSize++
	}

	m.data[index] = byte(b | flag)
}

// IsCode returns whether the PRG byte at the given address was executed.
func (m *Map) IsCode(address int) bool {
	return m.isPrgFlag(address, Code)
}

// IsData returns whether the PRG byte at the given address was read as data.
func (m *Map) IsData(address int) bool {
	return m.isPrgFlag(address, Data)
}

// IsJumpTarget returns whether the PRG byte at the given address was jumped to.
func (m *Map) IsJumpTarget(address int) bool {
	return m.isPrgFlag(address, JumpTarget)
}

// IsSubEntryPoint returns whether the PRG byte at the given address is the start of a subroutine.
func (m *Map) IsSubEntryPoint(address int) bool {
	return m.isPrgFlag(address, SubEntryPoint)
}

// IsRead returns whether the CHR byte at the given CHR address was read by the CPU.
func (m *Map) IsRead(address int) bool {
	return m.isChrFlag(address, Read)
}

// IsDrawn returns whether the CHR byte at the given CHR address was rendered.
func (m *Map) IsDrawn(address int) bool {
	return m.isChrFlag(address, Drawn)
}

func (m *Map) isPrgFlag(address int, flag PrgFlag) bool {
	if address < 0 || address >= m.prgSize {
		return false
	}
	return PrgFlag(m.data[address])&flag == flag
}

func (m *Map) isChrFlag(address int, flag ChrFlag) bool {
	if address < 0 || address >= m.chrSize {
		return false
	}
	return ChrFlag(m.data[m.prgSize+address])&flag == flag
}

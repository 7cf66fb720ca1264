package codedata

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/system/nes/codedatalog"
)

// ErrSizeMismatch is returned when restoring map data that does not match the storage sizes.
var ErrSizeMismatch = errors.New("usage map size mismatch")

var (
	_ io.ReaderFrom = (*Map)(nil)
	_ io.WriterTo   = (*Map)(nil)
)

// Bytes returns a copy of the raw map data.
func (m *Map) Bytes() []byte {
	data := make([]byte, len(m.data))
	copy(data, m.data)
	return data
}

// Load replaces the raw map data and recalculates the usage counters.
// PRG bytes flagged as both code and data are restored as code only.
// The map is left unchanged if the data size does not match.
func (m *Map) Load(data []byte) error {
	if len(data) != len(m.data) {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrSizeMismatch, len(m.data), len(data))
	}

	copy(m.data, data)
	for i, b := range m.data[:m.prgSize] {
		if PrgFlag(b)&(Code|Data) == Code|Data {
			m.data[i] = byte(PrgFlag(b) &^ Data)
		}
	}
	m.RecomputeStats()
	return nil
}

// ReadFrom restores the raw map data from the reader.
func (m *Map) ReadFrom(r io.Reader) (int64, error) {
	// read one extra byte to detect oversized input
	data, err := io.ReadAll(io.LimitReader(r, int64(len(m.data))+1))
	if err != nil {
		return int64(len(data)), fmt.Errorf("reading usage map: %w", err)
	}
	if err := m.Load(data); err != nil {
		return int64(len(data)), err
	}
	return int64(len(data)), nil
}

// WriteTo writes the raw map data to the writer.
func (m *Map) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m.data)
	if err != nil {
		return int64(n), fmt.Errorf("writing usage map: %w", err)
	}
	return int64(n), nil
}

// ApplyCodeDataLog marks code bytes and subroutine entry points from the flags
// of a loaded code data log file. Entries beyond the PRG size are ignored.
func (m *Map) ApplyCodeDataLog(prgFlags []codedatalog.PrgFlag) {
	for index, flags := range prgFlags {
		if index >= m.prgSize {
			return
		}

		if flags&codedatalog.Code != 0 {
			m.SetPrgFlag(index, Code)
		}
		if flags&codedatalog.SubEntryPoint != 0 {
			m.SetPrgFlag(index, SubEntryPoint)
		}
	}
}

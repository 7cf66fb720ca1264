package codedata

// NotApplicable is reported as ratio for storage that does not exist in the cartridge.
const NotApplicable = -1

// Stats contains the usage counters of a map.
type Stats struct {
	CodeSize int // PRG bytes flagged as code
	DataSize int // PRG bytes flagged as data

	UsedChrSize  int // CHR bytes flagged as drawn or read
	DrawnChrSize int // CHR bytes flagged as drawn
	ReadChrSize  int // CHR bytes flagged as read
}

// Ratios contains the usage counters as fractions of the storage sizes.
type Ratios struct {
	Code float32
	Data float32
	Prg  float32 // code or data

	Chr      float32 // drawn or read
	ChrRead  float32
	ChrDrawn float32
}

// Stats returns the incrementally maintained usage counters.
func (m *Map) Stats() Stats {
	return m.stats
}

// RecomputeStats recalculates all usage counters by scanning the whole map.
// It has to be called after the raw map data was replaced.
func (m *Map) RecomputeStats() {
	m.stats = m.scanStats()
}

func (m *Map) scanStats() Stats {
	var stats Stats

	for _, b := range m.data[:m.prgSize] {
		flags := PrgFlag(b)
		switch {
		case flags&Code != 0:
			stats.CodeSize++
		case flags&Data != 0:
			stats.DataSize++
		}
	}

	for _, b := range m.data[m.prgSize:] {
		flags := ChrFlag(b)
		if flags&(Drawn|Read) == 0 {
			continue
		}
		stats.UsedChrSize++
		if flags&Drawn != 0 {
			stats.DrawnChrSize++
		}
		if flags&Read != 0 {
			stats.ReadChrSize++
		}
	}

	return stats
}

// Ratios returns the usage ratios of the PRG and CHR storage.
// Ratios of a storage with a size of 0 are set to NotApplicable.
func (m *Map) Ratios() Ratios {
	ratios := Ratios{
		Code:     NotApplicable,
		Data:     NotApplicable,
		Prg:      NotApplicable,
		Chr:      NotApplicable,
		ChrRead:  NotApplicable,
		ChrDrawn: NotApplicable,
	}

	if m.prgSize > 0 {
		size := float32(m.prgSize)
		ratios.Code = float32(m.stats.CodeSize) / size
		ratios.Data = float32(m.stats.DataSize) / size
		ratios.Prg = float32(m.stats.CodeSize+m.stats.DataSize) / size
	}

	if m.chrSize > 0 {
		size := float32(m.chrSize)
		ratios.Chr = float32(m.stats.UsedChrSize) / size
		ratios.ChrRead = float32(m.stats.ReadChrSize) / size
		ratios.ChrDrawn = float32(m.stats.DrawnChrSize) / size
	}

	return ratios
}

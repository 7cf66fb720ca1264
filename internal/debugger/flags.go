package debugger

import "github.com/retroenv/retrogolib/log"

// Flags defines debugger display and behavior options.
type Flags uint32

// Debugger flags.
const (
	FlagPpuPartialDraw Flags = 1 << iota
	FlagShowEffectiveAddresses
	FlagLowerCaseOpcodes
	FlagBreakOnBrk
	FlagBreakOnUnofficialOpcode
)

// OpcodeFormatter builds the tables used for rendering opcodes.
type OpcodeFormatter interface {
	BuildOpcodeTables(lowercase bool)
}

// SetFlags sets the debugger flags. The opcode tables are only rebuilt if the
// opcode case changed.
func (d *Debugger) SetFlags(flags Flags) {
	needUpdate := (flags^d.flags)&FlagLowerCaseOpcodes != 0
	d.flags = flags

	if needUpdate {
		lowercase := d.CheckFlag(FlagLowerCaseOpcodes)
		d.formatter.BuildOpcodeTables(lowercase)
		opcodeCase := "upper"
		if lowercase {
			opcodeCase = "lower"
		}
		d.logger.Debug("Rebuilt opcode tables", log.String("case", opcodeCase))
	}
}

// Flags returns the debugger flags.
func (d *Debugger) Flags() Flags {
	return d.flags
}

// CheckFlag returns whether all bits of the flag are set.
func (d *Debugger) CheckFlag(flag Flags) bool {
	return d.flags&flag == flag
}

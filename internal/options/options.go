// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input       string // input ROM file
	Output      string // output disassembly file, stdout if empty
	CodeDataLog string // Code/Data log file (.cdl) to import
	UsageMap    string // raw usage map file to restore
	SaveUsage   string // raw usage map file to write after processing
}

// Flags contains behavior options.
type Flags struct {
	BankWindowSize int  // size of the switchable PRG windows
	Lowercase      bool // output opcodes in lower case
	Force          bool // overwrite existing output files
	Debug          bool // enable debug logging
	Quiet          bool // only log errors
}

// Program options of the debugger tool.
type Program struct {
	Parameters
	Flags
}

// DefaultBankWindowSize is the PRG bank window size used if none is given.
const DefaultBankWindowSize = 0x2000

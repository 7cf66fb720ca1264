package codedata

// PrgFlag defines the usage type of a PRG ROM byte.
type PrgFlag uint8

// PRG usage flags.
const (
	Code          PrgFlag = 0x01 // executed as an instruction
	Data          PrgFlag = 0x02 // read as data
	JumpTarget    PrgFlag = 0x04 // destination of a branch or jump
	SubEntryPoint PrgFlag = 0x08 // destination of a jsr call, indicating a subroutine
)

// ChrFlag defines the usage type of a CHR byte.
type ChrFlag uint8

// CHR usage flags.
const (
	Drawn ChrFlag = 0x01 // fetched by the PPU for rendering
	Read  ChrFlag = 0x02 // read by the CPU through the PPU data port
)

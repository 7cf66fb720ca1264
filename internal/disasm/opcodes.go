package disasm

import (
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/m6502"
)

type opcodeInfo struct {
	name       string // empty for unknown opcodes
	addressing m6502.AddressingMode
	size       int
}

// opcodeSize returns the size in bytes of an instruction using the addressing mode.
func opcodeSize(addressing m6502.AddressingMode) int {
	switch addressing {
	case m6502.ImpliedAddressing, m6502.AccumulatorAddressing:
		return 1
	case m6502.AbsoluteAddressing, m6502.AbsoluteXAddressing, m6502.AbsoluteYAddressing,
		m6502.IndirectAddressing:
		return 3
	default:
		return 2
	}
}

// BuildOpcodeTables rebuilds the mnemonic table used for rendering instructions.
func (r *Renderer) BuildOpcodeTables(lowercase bool) {
	for i := range r.opcodes {
		opcode := m6502.Opcodes[byte(i)]
		if opcode.Instruction == nil {
			r.opcodes[i] = opcodeInfo{}
			continue
		}

		name := strings.ToUpper(opcode.Instruction.Name)
		if lowercase {
			name = strings.ToLower(name)
		}
		r.opcodes[i] = opcodeInfo{
			name:       name,
			addressing: opcode.Addressing,
			size:       opcodeSize(opcode.Addressing),
		}
	}
}

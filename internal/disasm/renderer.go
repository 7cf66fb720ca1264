package disasm

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrodebug/internal/memory"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
)

const maxDataBytesPerLine = 8

// Storage reads bytes of the physical backing stores.
type Storage interface {
	Read(kind memory.SpaceKind, offset int32) (byte, bool)
}

// CodeFlags returns the usage flags of PRG ROM offsets.
type CodeFlags interface {
	IsCode(address int) bool
	IsJumpTarget(address int) bool
	IsSubEntryPoint(address int) bool
}

// Renderer renders runs as 6502 assembly. PRG ROM bytes that were executed are
// decoded as instructions, all other readable bytes are output as data.
type Renderer struct {
	storage  Storage
	codeData CodeFlags
	opcodes  [256]opcodeInfo
}

// NewRenderer returns a new renderer using upper case mnemonics.
func NewRenderer(storage Storage, codeData CodeFlags) *Renderer {
	r := &Renderer{
		storage:  storage,
		codeData: codeData,
	}
	r.BuildOpcodeTables(false)
	return r
}

// Code renders the disassembly of the run.
func (r *Renderer) Code(run Run) string {
	buf := &strings.Builder{}

	if run.Kind == memory.Register {
		// the last register block extends past the I/O registers
		if end := int32(memory.RegisterEnd - 1); run.PhysicalEnd > end {
			run.PhysicalEnd = max(end, run.PhysicalStart)
		}
	}

	size := int(run.PhysicalEnd-run.PhysicalStart) + 1
	logicalEnd := int(run.LogicalStart) + size - 1
	fmt.Fprintf(buf, "; $%04X-$%04X %s $%04X-$%04X\n",
		run.LogicalStart, logicalEnd, run.Kind, run.PhysicalStart, run.PhysicalEnd)

	if run.Kind == memory.Register {
		r.writeRegisters(buf, run, size)
		return buf.String()
	}

	if _, ok := r.storage.Read(run.Kind, run.PhysicalStart); !ok {
		return buf.String()
	}

	for index := 0; index < size; {
		offset := run.PhysicalStart + int32(index)
		address := int(run.LogicalStart) + index

		if run.Kind == memory.PrgRom {
			r.writeAnnotations(buf, int(offset))

			if n := r.writeInstruction(buf, run, index, address); n > 0 {
				index += n
				continue
			}
		}

		index += r.writeData(buf, run, index, address)
	}

	return buf.String()
}

func (r *Renderer) writeAnnotations(buf *strings.Builder, offset int) {
	switch {
	case r.codeData.IsSubEntryPoint(offset):
		buf.WriteString("; sub\n")
	case r.codeData.IsJumpTarget(offset):
		buf.WriteString("; jump target\n")
	}
}

// writeInstruction writes the instruction at the index of the run and returns its size,
// 0 is returned if the offset is not code or the instruction does not fit into the run.
func (r *Renderer) writeInstruction(buf *strings.Builder, run Run, index, address int) int {
	offset := run.PhysicalStart + int32(index)
	if !r.codeData.IsCode(int(offset)) {
		return 0
	}

	b, _ := r.storage.Read(run.Kind, offset)
	info := r.opcodes[b]
	if info.name == "" || offset+int32(info.size)-1 > run.PhysicalEnd {
		return 0
	}

	data := make([]byte, info.size)
	for i := range data {
		data[i], _ = r.storage.Read(run.Kind, offset+int32(i))
	}

	hex := make([]string, len(data))
	for i, d := range data {
		hex[i] = fmt.Sprintf("%02X", d)
	}

	text := info.name
	if operand := formatOperand(info.addressing, data, address); operand != "" {
		text += " " + operand
	}
	if name := operandRegister(info.addressing, data); name != "" {
		text += "  ; " + name
	}

	fmt.Fprintf(buf, "%s%04X  %-8s  %s\n", marker(run.PC, address, info.size), address, strings.Join(hex, " "), text)
	return info.size
}

// writeData writes a data line starting at the index of the run and returns the number
// of bytes written. A line ends before code and annotated offsets.
func (r *Renderer) writeData(buf *strings.Builder, run Run, index, address int) int {
	size := int(run.PhysicalEnd-run.PhysicalStart) + 1
	values := make([]string, 0, maxDataBytesPerLine)

	for i := index; i < size && len(values) < maxDataBytesPerLine; i++ {
		offset := run.PhysicalStart + int32(i)
		if i > index && run.Kind == memory.PrgRom && r.startsLine(int(offset)) {
			break
		}
		b, _ := r.storage.Read(run.Kind, offset)
		values = append(values, fmt.Sprintf("$%02X", b))
	}

	fmt.Fprintf(buf, "%s%04X  .db %s\n", marker(run.PC, address, len(values)), address, strings.Join(values, ","))
	return len(values)
}

// writeRegisters writes a line for every named I/O register of the run.
func (r *Renderer) writeRegisters(buf *strings.Builder, run Run, size int) {
	for i := range size {
		address := int(run.LogicalStart) + i
		if name, ok := registerNames[uint16(address)]; ok {
			fmt.Fprintf(buf, "%s%04X  %s\n", marker(run.PC, address, 1), address, name)
		}
	}
}

// operandRegister returns the name of the I/O register accessed by an absolute operand.
func operandRegister(addressing m6502.AddressingMode, data []byte) string {
	switch addressing {
	case m6502.AbsoluteAddressing, m6502.AbsoluteXAddressing, m6502.AbsoluteYAddressing:
		return registerNames[uint16(data[2])<<8|uint16(data[1])]
	default:
		return ""
	}
}

func (r *Renderer) startsLine(offset int) bool {
	return r.codeData.IsCode(offset) || r.codeData.IsSubEntryPoint(offset) || r.codeData.IsJumpTarget(offset)
}

func marker(pc uint16, address, size int) string {
	if int(pc) >= address && int(pc) < address+size {
		return ">"
	}
	return " "
}

func formatOperand(addressing m6502.AddressingMode, data []byte, address int) string {
	var word uint16
	if len(data) == 3 {
		word = uint16(data[2])<<8 | uint16(data[1])
	}

	switch addressing {
	case m6502.ImpliedAddressing:
		return ""
	case m6502.AccumulatorAddressing:
		return "A"
	case m6502.ImmediateAddressing:
		return fmt.Sprintf("#$%02X", data[1])
	case m6502.ZeroPageAddressing:
		return fmt.Sprintf("$%02X", data[1])
	case m6502.ZeroPageXAddressing:
		return fmt.Sprintf("$%02X,X", data[1])
	case m6502.ZeroPageYAddressing:
		return fmt.Sprintf("$%02X,Y", data[1])
	case m6502.RelativeAddressing:
		target := uint16(address + 2 + int(int8(data[1])))
		return fmt.Sprintf("$%04X", target)
	case m6502.AbsoluteAddressing:
		return fmt.Sprintf("$%04X", word)
	case m6502.AbsoluteXAddressing:
		return fmt.Sprintf("$%04X,X", word)
	case m6502.AbsoluteYAddressing:
		return fmt.Sprintf("$%04X,Y", word)
	case m6502.IndirectAddressing:
		return fmt.Sprintf("($%04X)", word)
	case m6502.IndirectXAddressing:
		return fmt.Sprintf("($%02X,X)", data[1])
	case m6502.IndirectYAddressing:
		return fmt.Sprintf("($%02X),Y", data[1])
	default:
		return ""
	}
}

// Package disasm generates the disassembly of the CPU address space from the
// currently mapped banks.
package disasm

import (
	"strings"

	"github.com/retroenv/retrodebug/internal/memory"
)

const (
	// BlockSize is the granularity that the CPU address space is resolved in.
	BlockSize = 0x100
	// ForceRefresh passed as length to Code forces returning the text even if unchanged.
	ForceRefresh = -1

	addressSpaceSize = 0x10000
	initialCapacity  = 10000
)

// Run is a physically contiguous range of a backing store that is mapped to a
// contiguous range of CPU addresses. Runs are resolved in blocks, so a register run
// can end past the last I/O register; the renderer trims it.
type Run struct {
	Kind          memory.SpaceKind
	PhysicalStart int32
	PhysicalEnd   int32 // inclusive
	LogicalStart  uint16
	PC            uint16 // current program counter of the CPU
}

// CodeRenderer returns the disassembly text of a run.
type CodeRenderer interface {
	Code(run Run) string
}

// ProgramCounter returns the current program counter of the CPU.
type ProgramCounter interface {
	PC() uint16
}

// Compactor merges the CPU address space into physically contiguous runs and
// renders their disassembly.
type Compactor struct {
	resolver memory.Resolver
	renderer CodeRenderer
	pc       ProgramCounter

	output strings.Builder
}

// NewCompactor returns a new compactor. pc can be nil, the program counter is then
// reported as 0.
func NewCompactor(resolver memory.Resolver, renderer CodeRenderer, pc ProgramCounter) *Compactor {
	return &Compactor{
		resolver: resolver,
		renderer: renderer,
		pc:       pc,
	}
}

// Generate regenerates the disassembly of the whole CPU address space.
// Every block is resolved again, bank switches since the last call are reflected.
func (c *Compactor) Generate() {
	var pc uint16
	if c.pc != nil {
		pc = c.pc.PC()
	}

	c.output.Reset()
	c.output.Grow(initialCapacity)

	for i := 0; i < addressSpaceSize; i += BlockSize {
		startInfo := c.resolver.AddressInfo(uint16(i))
		if !startInfo.Mapped() {
			continue
		}

		run := Run{
			Kind:          startInfo.Kind,
			PhysicalStart: startInfo.Offset,
			PhysicalEnd:   startInfo.Offset + BlockSize - 1,
			LogicalStart:  uint16(i),
			PC:            pc,
		}

		// merge all following blocks that continue the physical range
		for i+BlockSize < addressSpaceSize {
			next := c.resolver.AddressInfo(uint16(i + BlockSize))
			if next.Kind != run.Kind || next.Offset != run.PhysicalEnd+1 {
				break
			}
			run.PhysicalEnd += BlockSize
			i += BlockSize
		}

		c.output.WriteString(c.renderer.Code(run))
	}
}

// Text returns the text of the last generation.
func (c *Compactor) Text() string {
	return c.output.String()
}

// Code regenerates the disassembly and returns it together with true if it differs
// from the previous generation or if length was set to ForceRefresh. Unchanged text
// returns an empty string and false. length is set to the length of the new text.
func (c *Compactor) Code(length *int) (string, bool) {
	previous := c.output.String()
	c.Generate()

	text := c.output.String()
	forceRefresh := *length == ForceRefresh
	*length = len(text)

	if !forceRefresh && text == previous {
		return "", false
	}
	return text, true
}

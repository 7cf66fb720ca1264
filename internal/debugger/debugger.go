// Package debugger ties the code data map, the disassembly and the execution
// control of the emulated components together.
package debugger

import (
	"fmt"
	"io"

	"github.com/retroenv/retrodebug/internal/codedata"
	"github.com/retroenv/retrodebug/internal/disasm"
	"github.com/retroenv/retrodebug/internal/memory"
	"github.com/retroenv/retrogolib/log"
)

// Dependencies contains the emulated components used by the debugger.
// APU and Cartridge are optional.
type Dependencies struct {
	CPU       StatefulCPU
	PPU       PPU
	APU       APU
	Cartridge Cartridge
	Memory    DebugMemory
	Resolver  memory.Resolver
	Storage   disasm.Storage
	Model     Model
}

// Debugger observes the emulated components.
type Debugger struct {
	logger *log.Logger
	model  Model

	cpu       StatefulCPU
	ppu       PPU
	apu       APU
	cartridge Cartridge
	resolver  memory.Resolver

	codeData   *codedata.Map
	formatter  OpcodeFormatter
	compactor  *disasm.Compactor
	redirector *Redirector

	flags Flags
}

// New returns a new debugger. The code data map is sized to the PRG ROM and CHR ROM
// sizes reported by the resolver.
func New(logger *log.Logger, deps Dependencies) *Debugger {
	prgSize := deps.Resolver.MemorySize(memory.PrgRom)
	chrSize := deps.Resolver.GraphicsMemorySize(memory.ChrRom)
	codeData := codedata.New(prgSize, chrSize)
	renderer := disasm.NewRenderer(deps.Storage, codeData)

	d := &Debugger{
		logger:     logger,
		model:      deps.Model,
		cpu:        deps.CPU,
		ppu:        deps.PPU,
		apu:        deps.APU,
		cartridge:  deps.Cartridge,
		resolver:   deps.Resolver,
		codeData:   codeData,
		formatter:  renderer,
		compactor:  disasm.NewCompactor(deps.Resolver, renderer, deps.CPU),
		redirector: NewRedirector(deps.CPU, deps.Memory),
	}

	logger.Debug("Debugger created",
		log.Int("prg_size", prgSize),
		log.Int("chr_size", chrSize))
	return d
}

// CodeDataMap returns the code data map of the cartridge.
func (d *Debugger) CodeDataMap() *codedata.Map {
	return d.codeData
}

// Redirector returns the execution redirector that the CPU exposes fetches to.
func (d *Debugger) Redirector() *Redirector {
	return d.redirector
}

// ResetCodeDataMap clears all usage flags.
func (d *Debugger) ResetCodeDataMap() {
	d.codeData.Reset()
	d.logger.Debug("Code data map reset")
}

// RestoreCodeDataMap loads a previously saved raw code data map.
func (d *Debugger) RestoreCodeDataMap(r io.Reader) error {
	if _, err := d.codeData.ReadFrom(r); err != nil {
		return fmt.Errorf("restoring code data map: %w", err)
	}

	stats := d.codeData.Stats()
	d.logger.Debug("Code data map restored",
		log.Int("code", stats.CodeSize),
		log.Int("data", stats.DataSize),
		log.Int("chr_used", stats.UsedChrSize))
	return nil
}

// ProcessInstructionFetch marks the PRG ROM byte at the CPU address as code.
func (d *Debugger) ProcessInstructionFetch(address uint16) {
	info := d.resolver.AddressInfo(address)
	if info.Kind == memory.PrgRom {
		d.codeData.SetPrgFlag(int(info.Offset), codedata.Code)
	}
}

// ProcessDataRead marks the PRG ROM byte at the CPU address as data.
func (d *Debugger) ProcessDataRead(address uint16) {
	info := d.resolver.AddressInfo(address)
	if info.Kind == memory.PrgRom {
		d.codeData.SetPrgFlag(int(info.Offset), codedata.Data)
	}
}

// ProcessBranch marks the PRG ROM byte at the CPU address as destination of a jump,
// or of a subroutine call.
func (d *Debugger) ProcessBranch(target uint16, subroutine bool) {
	info := d.resolver.AddressInfo(target)
	if info.Kind != memory.PrgRom {
		return
	}

	flag := codedata.JumpTarget
	if subroutine {
		flag = codedata.SubEntryPoint
	}
	d.codeData.SetPrgFlag(int(info.Offset), flag)
}

// ProcessGraphicsRead marks the CHR ROM byte at the PPU address as drawn by the PPU
// or as read by the CPU.
func (d *Debugger) ProcessGraphicsRead(address uint16, drawn bool) {
	info := d.resolver.GraphicsAddressInfo(address)
	if info.Kind != memory.ChrRom {
		return
	}

	flag := codedata.Read
	if drawn {
		flag = codedata.Drawn
	}
	d.codeData.SetChrFlag(int(info.Offset), flag)
}

// IsMarkedAsCode returns whether the byte visible at the CPU address was executed.
func (d *Debugger) IsMarkedAsCode(address uint16) bool {
	info := d.resolver.AddressInfo(address)
	if info.Offset >= 0 && info.Kind == memory.PrgRom {
		return d.codeData.IsCode(int(info.Offset))
	}
	return false
}

// RelativeAddress returns the CPU address that the physical offset is visible at or -1.
func (d *Debugger) RelativeAddress(offset int32, kind memory.SpaceKind) int32 {
	switch kind {
	case memory.InternalRam, memory.Register:
		return offset

	case memory.PrgRom, memory.WorkRam, memory.SaveRam:
		return d.resolver.FromAbsoluteAddress(offset, kind)

	default:
		return -1
	}
}

// RelativeGraphicsAddress returns the PPU address that the physical offset is visible at
// or -1. Palette offsets map into the 32 byte palette window.
func (d *Debugger) RelativeGraphicsAddress(offset int32, kind memory.GraphicsKind) int32 {
	if kind == memory.PaletteRam {
		return memory.PaletteStart | offset&(memory.PaletteSize-1)
	}
	return d.resolver.FromAbsoluteGraphicsAddress(offset, kind)
}

// AbsoluteAddress returns the PRG ROM offset of the CPU address or -1.
func (d *Debugger) AbsoluteAddress(address uint16) int32 {
	return d.resolver.ToAbsoluteAddress(address)
}

// AbsoluteChrAddress returns the CHR offset of the PPU address or -1.
func (d *Debugger) AbsoluteChrAddress(address uint16) int32 {
	return d.resolver.ToAbsoluteChrAddress(address)
}

// AddressInfo returns the physical offset and kind of the CPU address.
func (d *Debugger) AddressInfo(address uint16) memory.AddressInfo {
	return d.resolver.AddressInfo(address)
}

// GraphicsAddressInfo returns the physical offset and kind of the PPU address.
func (d *Debugger) GraphicsAddressInfo(address uint16) memory.GraphicsInfo {
	return d.resolver.GraphicsAddressInfo(address)
}

// Code returns the disassembly of the CPU address space, see disasm.Compactor.Code.
func (d *Debugger) Code(length *int) (string, bool) {
	return d.compactor.Code(length)
}

// RequestJump sets the address of the next instruction to execute.
func (d *Debugger) RequestJump(address uint16) {
	d.redirector.RequestJump(address)
	if pc, ok := d.redirector.Pending(); ok {
		d.logger.Debug("Jump deferred to next fetch", log.Hex("address", pc))
	}
}

package fileprocessor

import (
	"github.com/retroenv/retrodebug/internal/debugger"
	"github.com/retroenv/retrodebug/internal/mapper"
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// haltedCPU is a CPU that never runs, paused at the reset vector target.
type haltedCPU struct {
	state debugger.CPUState
}

func (c *haltedCPU) PC() uint16 { return c.state.PC }

func (c *haltedCPU) SetDebugPC(address uint16) {
	c.state.DebugPC = address
	c.state.PC = address
}

func (c *haltedCPU) State() debugger.CPUState { return c.state }

func (c *haltedCPU) SetState(state debugger.CPUState) { c.state = state }

// idlePPU is a PPU in power up state.
type idlePPU struct {
	state debugger.PPUState
}

func (p *idlePPU) State() debugger.PPUState         { return p.state }
func (p *idlePPU) SetState(state debugger.PPUState) { p.state = state }

// cartridgeInfo reports the cartridge header and the current bank mapping.
type cartridgeInfo struct {
	cart   *cartridge.Cartridge
	mapper *mapper.Mapper
}

func (c cartridgeInfo) State() debugger.CartridgeState {
	return debugger.CartridgeState{
		Mapper:     c.cart.Mapper,
		PrgSize:    len(c.cart.PRG),
		ChrSize:    len(c.cart.CHR),
		ChrRAM:     c.mapper.ChrRAM(),
		HasBattery: c.mapper.HasBattery(),
		PrgPages:   c.mapper.PrgPages(),
		ChrPages:   c.mapper.ChrPages(),
	}
}

// newDebugger returns a debugger for the cartridge with the CPU halted on the
// reset handler.
func newDebugger(logger *log.Logger, cart *cartridge.Cartridge, m *mapper.Mapper) *debugger.Debugger {
	pc := uint16(m.DebugRead(m6502.ResetAddress)) | uint16(m.DebugRead(m6502.ResetAddress+1))<<8
	cpu := &haltedCPU{
		state: debugger.CPUState{PC: pc, SP: 0xfd, PS: 0x24},
	}

	return debugger.New(logger, debugger.Dependencies{
		CPU:       cpu,
		PPU:       &idlePPU{},
		Cartridge: cartridgeInfo{cart: cart, mapper: m},
		Memory:    m,
		Resolver:  m,
		Storage:   m,
		Model:     debugger.NTSC,
	})
}

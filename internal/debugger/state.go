package debugger

// Model defines the console region model.
type Model int

// Console models.
const (
	NTSC Model = iota
	PAL
	Dendy
)

var clockRates = map[Model]uint32{
	NTSC:  1789773,
	PAL:   1662607,
	Dendy: 1773448,
}

// ClockRate returns the CPU clock rate in Hz of the model.
func (m Model) ClockRate() uint32 {
	return clockRates[m]
}

// CPUState contains the register state of the CPU.
type CPUState struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PS uint8 // processor status flags
	PC uint16

	Cycles     uint64
	NMIFlag    bool
	IRQFlag    uint8
	DebugPC    uint16
	PreviousPC uint16
}

// PPUState contains the register and timing state of the PPU.
type PPUState struct {
	Control uint8
	Mask    uint8
	Status  uint8

	VideoRAMAddress     uint16
	TempVideoRAMAddress uint16
	XScroll             uint8
	WriteToggle         bool
	SpriteRAMAddress    uint8

	Scanline   int
	Cycle      int
	FrameCount uint32
}

// CartridgeState contains the mapping state of the cartridge.
type CartridgeState struct {
	Mapper     uint8
	PrgSize    int
	ChrSize    int
	ChrRAM     bool
	HasBattery bool

	PrgPages []int32 // PRG offset of every CPU bank window, -1 if not mapped
	ChrPages []int32 // CHR offset of every PPU bank window
}

// APUState contains the channel state of the APU.
type APUState struct {
	FrameCounterStep int
	Channels         [5]APUChannelState
}

// APUChannelState contains the output state of a single APU channel.
type APUChannelState struct {
	Enabled bool
	Timer   uint16
	Length  uint8
	Output  uint8
}

// State is the combined state of all emulated components.
type State struct {
	Model     Model
	ClockRate uint32

	CPU       CPUState
	PPU       PPUState
	Cartridge CartridgeState
	APU       APUState
}

// StatefulCPU is a CPU whose register state can be read and restored.
type StatefulCPU interface {
	CPU
	State() CPUState
	SetState(state CPUState)
}

// PPU is the picture processing unit state access.
type PPU interface {
	State() PPUState
	SetState(state PPUState)
}

// APU is the audio processing unit state access.
type APU interface {
	// Run catches up the APU emulation to the current CPU cycle.
	Run()
	State() APUState
}

// Cartridge is the cartridge mapper state access.
type Cartridge interface {
	State() CartridgeState
}

// State returns the combined state of the emulated components. The cartridge and
// APU state are only included if requested.
func (d *Debugger) State(includeMapperInfo bool) State {
	state := State{
		Model:     d.model,
		ClockRate: d.model.ClockRate(),
		CPU:       d.cpu.State(),
		PPU:       d.ppu.State(),
	}

	if includeMapperInfo {
		if d.cartridge != nil {
			state.Cartridge = d.cartridge.State()
		}
		if d.apu != nil {
			d.apu.Run()
			state.APU = d.apu.State()
		}
	}

	return state
}

// SetState restores the CPU and PPU state. A changed program counter is applied
// through the redirector to not corrupt an instruction fetch in progress.
func (d *Debugger) SetState(state State) {
	currentPC := d.cpu.PC()

	cpuState := state.CPU
	cpuState.PC = currentPC
	d.cpu.SetState(cpuState)
	d.ppu.SetState(state.PPU)

	if state.CPU.PC != currentPC {
		d.redirector.RequestJump(state.CPU.PC)
	}
}

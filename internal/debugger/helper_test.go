package debugger

import (
	"testing"

	"github.com/retroenv/retrogolib/log"
)

type testComponents struct {
	cpu       *mockCPU
	ppu       *mockPPU
	apu       *mockAPU
	cartridge *mockCartridge
	memory    *mockMemory
	resolver  *mockResolver
}

func newTestDebugger(t *testing.T) (*Debugger, *testComponents) {
	t.Helper()

	c := &testComponents{
		cpu:       &mockCPU{state: CPUState{PC: 0x8000}},
		ppu:       &mockPPU{},
		apu:       &mockAPU{},
		cartridge: &mockCartridge{},
		memory:    &mockMemory{},
		resolver:  newMockResolver(),
	}

	d := New(log.NewTestLogger(t), Dependencies{
		CPU:       c.cpu,
		PPU:       c.ppu,
		APU:       c.apu,
		Cartridge: c.cartridge,
		Memory:    c.memory,
		Resolver:  c.resolver,
		Storage:   mockStorage{},
		Model:     NTSC,
	})
	return d, c
}

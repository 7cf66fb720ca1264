package debugger

// FetchSlot is the opcode fetch that the CPU is paused on. The CPU exposes it to the
// redirector at a safe point, changes to it are used for the pending fetch.
type FetchSlot struct {
	Address uint16
	Value   byte
}

// CPU is the program counter access of the emulated CPU.
type CPU interface {
	// PC returns the current program counter.
	PC() uint16
	// SetDebugPC sets the program counter without side effects.
	SetDebugPC(address uint16)
}

// DebugMemory reads CPU memory without triggering side effects.
type DebugMemory interface {
	DebugRead(address uint16) byte
}

// Redirector changes the address of the next executed instruction. If the CPU is
// paused on an opcode fetch the change is applied immediately, otherwise it is
// deferred to the next fetch boundary.
type Redirector struct {
	cpu    CPU
	memory DebugMemory

	slot *FetchSlot

	pending   bool
	pendingPC uint16
}

// NewRedirector returns a new redirector in idle state.
func NewRedirector(cpu CPU, memory DebugMemory) *Redirector {
	return &Redirector{
		cpu:    cpu,
		memory: memory,
	}
}

// Expose is called by the CPU when it is paused on the opcode fetch of the slot.
func (r *Redirector) Expose(slot *FetchSlot) {
	r.slot = slot
}

// Release is called by the CPU when it continues the exposed fetch.
func (r *Redirector) Release() {
	r.slot = nil
}

// RequestJump sets the address of the next instruction to execute.
func (r *Redirector) RequestJump(address uint16) {
	if r.slot != nil {
		// a jump queued earlier in the instruction is superseded
		r.pending = false
		r.pendingPC = 0
		r.cpu.SetDebugPC(address)
		r.slot.Address = address
		r.slot.Value = r.memory.DebugRead(address)
		return
	}

	// the CPU is in the middle of an instruction
	r.pending = true
	r.pendingPC = address
}

// Pending returns the address of a deferred jump request.
func (r *Redirector) Pending() (uint16, bool) {
	return r.pendingPC, r.pending
}

// FetchBoundary is called by the CPU between instructions. A deferred jump request
// is applied to the CPU and its address returned.
func (r *Redirector) FetchBoundary() (uint16, bool) {
	if !r.pending {
		return 0, false
	}

	address := r.pendingPC
	r.pending = false
	r.pendingPC = 0
	r.cpu.SetDebugPC(address)
	return address, true
}

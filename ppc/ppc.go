// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ppc

import (
	"github.com/ezrec/arcade/bus"
	"github.com/ezrec/arcade/core"
)

const (
	RESET_VECTOR     = uint32(0xfff00100) // PC after reset.
	RESET_DEC        = uint32(0xffffffff) // Decrementer after reset.
	DEFAULT_PVR      = uint32(0x00060103) // 603e processor version.
	DEFAULT_TBDIV    = uint32(4)          // Instructions per time base tick.
	CONTEXT_TAG      = "PPCC"             // Context blob magic.
	CONTEXT_VER      = uint8(1)           // Context blob version.
	DCBZ_BLOCK_BYTES = uint32(32)         // Cache block size zeroed by dcbz.
)

// Config selects the model specific parameters of the core.
type Config struct {
	PVR             uint32 // Processor version register. Zero selects DEFAULT_PVR.
	TimebaseDivider uint32 // Instructions per time base tick. Zero selects DEFAULT_TBDIV.
}

// PPC is an instance of the 32-bit core.
type PPC struct {
	Context // Architectural state.

	config Config
	bus    bus.Bus
	vp     core.VectorProvider
	stats  core.Stats

	cia uint32 // Address of the executing instruction.
}

var _ core.Core = (*PPC)(nil)

// NewPPC creates a core. It must be initialized and reset before use.
func NewPPC(config Config) (cpu *PPC) {
	if config.PVR == 0 {
		config.PVR = DEFAULT_PVR
	}
	if config.TimebaseDivider == 0 {
		config.TimebaseDivider = DEFAULT_TBDIV
	}

	cpu = &PPC{
		config: config,
	}

	return
}

// Init attaches the bus, and the optional vector provider.
func (cpu *PPC) Init(b bus.Bus, vp core.VectorProvider) {
	if cpu.bus != nil {
		panic(core.ErrAlreadyInitialized)
	}
	if b == nil {
		panic(core.ErrNotInitialized)
	}

	cpu.bus = b
	cpu.vp = vp
}

// Reset to the power-on state, clearing both interrupt lines. The
// decrementer starts at its maximum, so no exception is raised until
// software loads it.
func (cpu *PPC) Reset() {
	cpu.Context = Context{
		PC:  RESET_VECTOR,
		MSR: MSR_IP,
		PVR: cpu.config.PVR,
		DEC: RESET_DEC,
	}
	cpu.HID[0] = 1
	cpu.stats = core.Stats{}
}

// TriggerNMI latches a system reset request.
func (cpu *PPC) TriggerNMI() {
	cpu.NMI = true
}

// SetLevelInterrupt drives the external interrupt line.
func (cpu *PPC) SetLevelInterrupt(active bool) {
	cpu.INT = active
}

// InterruptState reports the interrupt controller state. A pending
// decrementer exception reports as a maskable request.
func (cpu *PPC) InterruptState() core.InterruptState {
	switch {
	case cpu.NMI:
		return core.INTERRUPT_NMI_PENDING
	case cpu.INT, cpu.DecPending:
		return core.INTERRUPT_INT_PENDING
	case cpu.Servicing:
		return core.INTERRUPT_SERVICING
	}
	return core.INTERRUPT_IDLE
}

// Stats returns the execution counters.
func (cpu *PPC) Stats() core.Stats {
	return cpu.stats
}

// SaveContext returns the register context as an opaque blob.
func (cpu *PPC) SaveContext() []byte {
	return core.EncodeContext(CONTEXT_TAG, CONTEXT_VER, &cpu.Context)
}

// LoadContext restores a register context from SaveContext.
func (cpu *PPC) LoadContext(blob []byte) (err error) {
	var ctx Context

	err = core.DecodeContext("ppc", CONTEXT_TAG, CONTEXT_VER, blob, &ctx)
	if err != nil {
		return
	}

	cpu.Context = ctx
	return
}

// Run executes up to n instructions, returning the number executed.
// An accepted exception counts as an instruction. While halted, the
// unused part of the slice still advances the time base.
func (cpu *PPC) Run(n uint32) (executed uint32) {
	if cpu.bus == nil {
		panic(core.ErrNotInitialized)
	}

	defer func() {
		cpu.stats.Instructions += uint64(executed)
	}()

	for executed < n {
		if !cpu.Servicing && cpu.poll() {
			executed++
			cpu.advance(1)
			continue
		}
		cpu.Servicing = false

		if cpu.Halted {
			break
		}

		cpu.step()
		executed++
		cpu.advance(1)

		if cpu.Halted {
			break
		}
	}

	if cpu.Halted {
		cpu.advance(n - executed)
	}

	return
}

func (cpu *PPC) step() {
	cpu.cia = cpu.PC
	in := Instruction(cpu.bus.Read32(cpu.PC))
	cpu.PC += 4
	primaryOps[in.Opcode()](cpu, in)
}

// advance the time base and decrementer by count instructions.
func (cpu *PPC) advance(count uint32) {
	if count == 0 {
		return
	}

	total := uint64(cpu.Prescale) + uint64(count)
	div := uint64(cpu.config.TimebaseDivider)
	ticks := total / div
	cpu.Prescale = uint32(total % div)
	if ticks == 0 {
		return
	}

	cpu.TB += ticks
	old := cpu.DEC
	cpu.DEC -= uint32(ticks)
	if old&0x80000000 == 0 && ticks > uint64(old) {
		cpu.DecPending = true
	}
}

// unknown records an unimplemented instruction. It executes as a no-op.
func (cpu *PPC) unknown(in Instruction) {
	cpu.stats.Unknown(uint32(in), cpu.cia)
}

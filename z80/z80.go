// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package z80

import (
	"github.com/ezrec/arcade/bus"
	"github.com/ezrec/arcade/core"
)

const (
	NMI_VECTOR  = uint16(0x0066) // Non-maskable interrupt target.
	IM1_VECTOR  = uint16(0x0038) // Mode 1 interrupt target.
	RESET_SP    = uint16(0xf000) // Stack pointer after reset.
	CONTEXT_TAG = "Z80C"         // Context blob magic.
	CONTEXT_VER = uint8(1)       // Context blob version.
)

// Z80 is an instance of the 8-bit core.
type Z80 struct {
	Context // Architectural state.

	bus   bus.Bus
	io    bus.IO
	vp    core.VectorProvider
	stats core.Stats

	start uint16 // Address of the executing instruction.
}

var _ core.Core = (*Z80)(nil)

// NewZ80 creates a core. It must be initialized and reset before use.
func NewZ80() (cpu *Z80) {
	cpu = &Z80{}

	return
}

// Init attaches the bus, and the optional vector provider.
// The port space is used if the bus implements bus.IO.
func (cpu *Z80) Init(b bus.Bus, vp core.VectorProvider) {
	if cpu.bus != nil {
		panic(core.ErrAlreadyInitialized)
	}
	if b == nil {
		panic(core.ErrNotInitialized)
	}

	cpu.bus = b
	cpu.io, _ = b.(bus.IO)
	cpu.vp = vp
}

// Reset to the power-on state, clearing both interrupt lines.
func (cpu *Z80) Reset() {
	cpu.Context.Reset()
	cpu.stats = core.Stats{}
}

// TriggerNMI latches a non-maskable interrupt request.
func (cpu *Z80) TriggerNMI() {
	cpu.NMI = true
}

// SetLevelInterrupt drives the maskable interrupt line.
func (cpu *Z80) SetLevelInterrupt(active bool) {
	cpu.INT = active
}

// InterruptState reports the interrupt controller state.
func (cpu *Z80) InterruptState() core.InterruptState {
	switch {
	case cpu.NMI:
		return core.INTERRUPT_NMI_PENDING
	case cpu.INT:
		return core.INTERRUPT_INT_PENDING
	case cpu.Servicing:
		return core.INTERRUPT_SERVICING
	}
	return core.INTERRUPT_IDLE
}

// Stats returns the execution counters.
func (cpu *Z80) Stats() core.Stats {
	return cpu.stats
}

// SaveContext returns the register context as an opaque blob.
func (cpu *Z80) SaveContext() []byte {
	return core.EncodeContext(CONTEXT_TAG, CONTEXT_VER, &cpu.Context)
}

// LoadContext restores a register context from SaveContext.
func (cpu *Z80) LoadContext(blob []byte) (err error) {
	var ctx Context

	err = core.DecodeContext("z80", CONTEXT_TAG, CONTEXT_VER, blob, &ctx)
	if err != nil {
		return
	}

	cpu.Context = ctx
	return
}

// Run executes up to n instructions, returning the number executed.
// An accepted interrupt counts as an instruction. A halt instruction ends
// the slice; while halted, only an accepted interrupt executes.
func (cpu *Z80) Run(n uint32) (executed uint32) {
	if cpu.bus == nil {
		panic(core.ErrNotInitialized)
	}

	defer func() {
		cpu.stats.Instructions += uint64(executed)
	}()

	for executed < n {
		// A boundary that accepted an interrupt is not polled again
		// before the first instruction of the handler.
		if !cpu.Servicing && cpu.poll() {
			executed++
			continue
		}
		cpu.Servicing = false

		if cpu.Halted {
			break
		}

		cpu.step()
		executed++

		if cpu.Halted {
			break
		}
	}

	return
}

func (cpu *Z80) step() {
	cpu.start = cpu.PC
	op := cpu.fetchOp()
	baseOps[op](cpu)
}

func (cpu *Z80) read8(addr uint16) uint8 {
	return cpu.bus.Read8(uint32(addr))
}

func (cpu *Z80) write8(addr uint16, v uint8) {
	cpu.bus.Write8(uint32(addr), v)
}

func (cpu *Z80) read16(addr uint16) uint16 {
	lo := cpu.read8(addr)
	hi := cpu.read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (cpu *Z80) write16(addr uint16, v uint16) {
	cpu.write8(addr, uint8(v))
	cpu.write8(addr+1, uint8(v>>8))
}

func (cpu *Z80) fetch8() (v uint8) {
	v = cpu.read8(cpu.PC)
	cpu.PC++
	return
}

func (cpu *Z80) fetch16() (v uint16) {
	v = cpu.read16(cpu.PC)
	cpu.PC += 2
	return
}

// fetchOp fetches an opcode byte, advancing the refresh counter.
func (cpu *Z80) fetchOp() uint8 {
	cpu.incR()
	return cpu.fetch8()
}

func (cpu *Z80) push(v uint16) {
	cpu.SP--
	cpu.write8(cpu.SP, uint8(v>>8))
	cpu.SP--
	cpu.write8(cpu.SP, uint8(v))
}

func (cpu *Z80) pop() (v uint16) {
	v = cpu.read16(cpu.SP)
	cpu.SP += 2
	return
}

func (cpu *Z80) in8(port uint16) uint8 {
	if cpu.io == nil {
		return 0xff
	}
	return cpu.io.IORead8(uint32(port))
}

func (cpu *Z80) out8(port uint16, v uint8) {
	if cpu.io == nil {
		return
	}
	cpu.io.IOWrite8(uint32(port), v)
}

// unknown records an unimplemented opcode at the executing instruction.
func (cpu *Z80) unknown(opcode uint32) {
	cpu.stats.Unknown(opcode, uint32(cpu.start))
}

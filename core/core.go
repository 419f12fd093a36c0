// Package core defines the surface shared by every instruction-set
// interpreter core, and the contract an orchestrator drives them through.
//
// A core is single-threaded and cooperative. The orchestrator calls Init
// exactly once, then Reset, then Run(n) repeatedly, interleaving bounded
// slices of several cores. TriggerNMI and SetLevelInterrupt may be called
// between slices, or synchronously from a device during a Bus access, and
// take effect at the next instruction boundary.
package core

import (
	"github.com/ezrec/arcade/bus"
)

// Core is an instruction-set interpreter.
type Core interface {
	// Init attaches the bus and optional vector provider. It must be
	// called exactly once, before any other method.
	Init(b bus.Bus, vp VectorProvider)
	// Reset sets the power-on register state and clears both interrupt lines.
	Reset()
	// Run executes up to n instructions, and returns the number executed.
	// Fewer than n are executed only when a halt instruction is reached.
	Run(n uint32) uint32
	// TriggerNMI latches the edge-triggered non-maskable request.
	TriggerNMI()
	// SetLevelInterrupt drives the level-triggered maskable request line.
	SetLevelInterrupt(active bool)
	// SaveContext returns an opaque blob of the complete register context.
	SaveContext() []byte
	// LoadContext restores a blob from SaveContext.
	LoadContext(blob []byte) error
	// InterruptState reports the interrupt controller state.
	InterruptState() InterruptState
	// Stats returns the execution counters.
	Stats() Stats
}

// VectorProvider is invoked while a maskable interrupt is serviced under
// the interrupt modes that need one. It must not touch the core's
// registers; it may clear the interrupt line.
type VectorProvider interface {
	Vector(c Core) VectorSelector
}

// VectorProviderFunc adapts a function to a VectorProvider.
type VectorProviderFunc func(c Core) VectorSelector

func (vpf VectorProviderFunc) Vector(c Core) VectorSelector {
	return vpf(c)
}

// Stats are the execution counters of a core. Cores never log; the
// orchestrator reports these instead.
type Stats struct {
	Instructions  uint64 // Instructions executed, including accepted interrupts.
	Interrupts    uint64 // Interrupts accepted.
	Unimplemented uint64 // Unimplemented opcodes encountered.
	LastOpcode    uint32 // Most recent unimplemented opcode.
	LastAddress   uint32 // Address of the most recent unimplemented opcode.
}

// Unknown records an unimplemented opcode.
func (st *Stats) Unknown(opcode uint32, addr uint32) {
	st.Unimplemented++
	st.LastOpcode = opcode
	st.LastAddress = addr
}

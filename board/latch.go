package board

import (
	"slices"

	"github.com/ezrec/arcade/bus"
	"github.com/ezrec/arcade/core"
)

const (
	LATCH_DEPTH = 16 // Default command capacity.

	LATCH_READY   = uint8(0x01) // Status: always set.
	LATCH_PENDING = uint8(0x02) // Status: a command is waiting.
)

// Latch is a command FIFO from one core to another, the way a main CPU
// hands commands to a sound CPU. The source writes commands into its
// memory space; the target reads them from its port space, or from its
// memory space when it has none. While commands are waiting the board
// asserts the target's maskable interrupt at each slice boundary.
//
// Source offset 0: write pushes a command, read returns the status.
// Target offset 0: read pops a command and deasserts the target's
// interrupt. Target offset 1: read returns the status.
type Latch struct {
	Name    string
	Depth   int // Capacity. Commands pushed while full are dropped.
	Dropped int // Count of dropped commands.

	target core.Core
	fifo   []uint8
}

// NewLatch creates an empty latch feeding target.
func NewLatch(name string, target core.Core) (latch *Latch) {
	latch = &Latch{
		Name:   name,
		Depth:  LATCH_DEPTH,
		target: target,
	}

	return
}

// Reset discards all waiting commands.
func (latch *Latch) Reset() {
	latch.fifo = nil
	latch.Dropped = 0
}

// Push queues a command.
func (latch *Latch) Push(command uint8) {
	if len(latch.fifo) >= latch.Depth {
		latch.Dropped++
		return
	}
	latch.fifo = append(latch.fifo, command)
}

// Pop dequeues the oldest command.
func (latch *Latch) Pop() (command uint8, ok bool) {
	if len(latch.fifo) > 0 {
		ok = true
		command = latch.fifo[0]
		latch.fifo = latch.fifo[1:]
	}
	return
}

// Pending returns true while commands are waiting.
func (latch *Latch) Pending() bool {
	return len(latch.fifo) > 0
}

// Status returns the status register.
func (latch *Latch) Status() (status uint8) {
	status = LATCH_READY
	if latch.Pending() {
		status |= LATCH_PENDING
	}
	return
}

// Commands returns a copy of the waiting commands, oldest first.
func (latch *Latch) Commands() []uint8 {
	return slices.Clone(latch.fifo)
}

// Source returns the device the source core writes commands to.
func (latch *Latch) Source() bus.Device {
	return &bus.DeviceFunc{
		OnRead: func(offset uint32) uint8 {
			return latch.Status()
		},
		OnWrite: func(offset uint32, data uint8) {
			latch.Push(data)
		},
	}
}

// Target returns the device the target core reads commands from.
func (latch *Latch) Target() bus.Device {
	return &bus.DeviceFunc{
		OnRead: func(offset uint32) uint8 {
			if offset != 0 {
				return latch.Status()
			}
			command, ok := latch.Pop()
			latch.target.SetLevelInterrupt(false)
			if !ok {
				return 0xff
			}
			return command
		},
	}
}

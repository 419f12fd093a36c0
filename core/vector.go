package core

import (
	"fmt"
)

// VectorSelector is the reply of a VectorProvider: either VECTOR_NONE, one
// of the eight short restart vectors, or a raw data-bus byte (0..255) for
// the pointer-indirect interrupt mode.
type VectorSelector int

// Short restart vectors, numbered by their restart opcode.
const (
	VECTOR_NONE   = VectorSelector(-1)
	VECTOR_RST_00 = VectorSelector(0xc7)
	VECTOR_RST_08 = VectorSelector(0xcf)
	VECTOR_RST_10 = VectorSelector(0xd7)
	VECTOR_RST_18 = VectorSelector(0xdf)
	VECTOR_RST_20 = VectorSelector(0xe7)
	VECTOR_RST_28 = VectorSelector(0xef)
	VECTOR_RST_30 = VectorSelector(0xf7)
	VECTOR_RST_38 = VectorSelector(0xff)
)

// Byte returns the selector as a data-bus byte, and whether it is one.
func (vs VectorSelector) Byte() (b uint8, ok bool) {
	if vs < 0 || vs > 0xff {
		return
	}

	b = uint8(vs)
	ok = true
	return
}

// Restart returns the target of a short restart vector, and whether the
// selector is one.
func (vs VectorSelector) Restart() (target uint16, ok bool) {
	b, ok := vs.Byte()
	if !ok || (b&0xc7) != 0xc7 {
		ok = false
		return
	}

	target = uint16(b & 0x38)
	return
}

func (vs VectorSelector) String() string {
	if target, ok := vs.Restart(); ok {
		return fmt.Sprintf("rst %02xh", target)
	}
	if b, ok := vs.Byte(); ok {
		return fmt.Sprintf("0x%02x", b)
	}
	if vs == VECTOR_NONE {
		return "none"
	}
	return fmt.Sprintf("VectorSelector(%d)", int(vs))
}

// InterruptState is the state of a core's interrupt controller.
type InterruptState int

//go:generate go tool stringer -linecomment -type=InterruptState
const (
	INTERRUPT_IDLE        = InterruptState(0) // idle
	INTERRUPT_NMI_PENDING = InterruptState(1) // nmi-pending
	INTERRUPT_INT_PENDING = InterruptState(2) // int-pending
	INTERRUPT_SERVICING   = InterruptState(3) // servicing
)

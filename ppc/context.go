package ppc

import (
	"fmt"
)

// Machine state register bits.
const (
	MSR_POW = uint32(0x00040000) // Power management enable.
	MSR_ILE = uint32(0x00010000) // Exception little-endian mode.
	MSR_EE  = uint32(0x00008000) // External interrupt enable.
	MSR_PR  = uint32(0x00004000) // Privilege level.
	MSR_FP  = uint32(0x00002000) // Floating point available.
	MSR_ME  = uint32(0x00001000) // Machine check enable.
	MSR_FE0 = uint32(0x00000800) // Floating point exception mode 0.
	MSR_SE  = uint32(0x00000400) // Single step trace enable.
	MSR_BE  = uint32(0x00000200) // Branch trace enable.
	MSR_FE1 = uint32(0x00000100) // Floating point exception mode 1.
	MSR_IP  = uint32(0x00000040) // Exception prefix.
	MSR_IR  = uint32(0x00000020) // Instruction address translation.
	MSR_DR  = uint32(0x00000010) // Data address translation.
	MSR_RI  = uint32(0x00000002) // Recoverable exception.
	MSR_LE  = uint32(0x00000001) // Little-endian mode.
)

// Fixed point exception register bits.
const (
	XER_SO = uint32(0x80000000) // Summary overflow.
	XER_OV = uint32(0x40000000) // Overflow.
	XER_CA = uint32(0x20000000) // Carry.
)

// Condition register field bits.
const (
	CR_LT = uint32(0x8) // Less than, or floating point less than.
	CR_GT = uint32(0x4) // Greater than, or floating point greater than.
	CR_EQ = uint32(0x2) // Equal, or floating point equal.
	CR_SO = uint32(0x1) // Summary overflow, or floating point unordered.
)

// Special purpose register numbers.
const (
	SPR_XER   = 1
	SPR_LR    = 8
	SPR_CTR   = 9
	SPR_DSISR = 18
	SPR_DAR   = 19
	SPR_DEC   = 22
	SPR_SDR1  = 25
	SPR_SRR0  = 26
	SPR_SRR1  = 27
	SPR_TBL_R = 268
	SPR_TBU_R = 269
	SPR_SPRG0 = 272
	SPR_EAR   = 282
	SPR_TBL_W = 284
	SPR_TBU_W = 285
	SPR_PVR   = 287
	SPR_IBAT  = 528
	SPR_DBAT  = 536
	SPR_HID0  = 1008
	SPR_HID1  = 1009
	SPR_IABR  = 1010
	SPR_HID2  = 1011
	SPR_DABR  = 1013
)

// BAT is a block address translation register pair.
type BAT struct {
	U uint32
	L uint32
}

// Context is the complete architectural state of the core. Every field is
// fixed size, so the context serializes to a single blob.
type Context struct {
	GPR   [32]uint32 // General purpose registers.
	FPR   [32]uint64 // Floating point registers, as float64 bits.
	PC    uint32
	LR    uint32
	CTR   uint32
	XER   uint32
	CR    uint32
	MSR   uint32
	FPSCR uint32

	SRR0  uint32
	SRR1  uint32
	SPRG  [4]uint32
	DEC   uint32
	TB    uint64
	HID   [3]uint32
	PVR   uint32
	DSISR uint32
	DAR   uint32
	SDR1  uint32
	EAR   uint32
	IABR  uint32
	DABR  uint32
	IBAT  [4]BAT
	DBAT  [4]BAT
	SR    [16]uint32

	Reserve     bool   // Load reservation held.
	ReserveAddr uint32 // Load reservation address.
	Prescale    uint32 // Instructions since the last time base tick.

	Halted     bool // Halted by MSR[POW], PC at the mtmsr.
	NMI        bool // System reset request latched.
	INT        bool // External interrupt line asserted.
	DecPending bool // Decrementer exception pending.
	Servicing  bool // The last boundary accepted an exception.
}

// CRField returns condition register field n (0..7).
func (ctx *Context) CRField(n uint32) uint32 {
	return (ctx.CR >> (28 - 4*(n&7))) & 0xf
}

// SetCRField sets condition register field n (0..7).
func (ctx *Context) SetCRField(n uint32, v uint32) {
	shift := 28 - 4*(n&7)
	ctx.CR = ctx.CR&^(0xf<<shift) | (v&0xf)<<shift
}

// CRBit returns condition register bit n, numbered from the most
// significant bit.
func (ctx *Context) CRBit(n uint32) bool {
	return ctx.CR&(0x80000000>>(n&31)) != 0
}

func (ctx *Context) setCRBit(n uint32, v bool) {
	mask := uint32(0x80000000) >> (n & 31)
	if v {
		ctx.CR |= mask
	} else {
		ctx.CR &^= mask
	}
}

func (ctx *Context) so() bool {
	return ctx.XER&XER_SO != 0
}

func (ctx *Context) ca() uint32 {
	return (ctx.XER >> 29) & 1
}

func (ctx *Context) setCA(ca bool) {
	if ca {
		ctx.XER |= XER_CA
	} else {
		ctx.XER &^= XER_CA
	}
}

func (ctx *Context) setOV(ov bool) {
	if ov {
		ctx.XER |= XER_SO | XER_OV
	} else {
		ctx.XER &^= XER_OV
	}
}

// record sets CR0 from a result.
func (ctx *Context) record(r uint32) {
	ctx.SetCRField(0, Record(r, ctx.so()))
}

// String returns the register state as a string.
func (ctx *Context) String() (text string) {
	for n := 0; n < 32; n += 4 {
		text += fmt.Sprintf(" r%-2d: %08X %08X %08X %08X\n", n, ctx.GPR[n], ctx.GPR[n+1], ctx.GPR[n+2], ctx.GPR[n+3])
	}
	text += fmt.Sprintf("  pc: %08X   lr: %08X  ctr: %08X\n", ctx.PC, ctx.LR, ctx.CTR)
	text += fmt.Sprintf("  cr: %08X  xer: %08X  msr: %08X\n", ctx.CR, ctx.XER, ctx.MSR)
	text += fmt.Sprintf(" dec: %08X   tb: %016X halted: %v\n", ctx.DEC, ctx.TB, ctx.Halted)

	return
}

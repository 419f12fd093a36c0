package z80

import (
	"fmt"
)

// InterruptMode selects how a maskable interrupt resolves to a vector.
type InterruptMode uint8

//go:generate go tool stringer -linecomment -type=InterruptMode
const (
	IM_0 = InterruptMode(0) // im0
	IM_1 = InterruptMode(1) // im1
	IM_2 = InterruptMode(2) // im2
)

// Bank is one copy of the exchangeable register pairs.
type Bank struct {
	BC uint16
	DE uint16
	HL uint16
}

// Context is the complete architectural state of the core. Every field is
// fixed size, so the context serializes to a single blob.
type Context struct {
	AF         [2]uint16 // Accumulator and flags, main and alternate.
	Bank       [2]Bank   // BC, DE and HL, main and alternate.
	AFSelect   uint8     // Index of the active AF.
	BankSelect uint8     // Index of the active Bank.

	IX uint16
	IY uint16
	SP uint16
	PC uint16
	I  uint8 // Interrupt vector base.
	R  uint8 // Refresh counter.

	IFF1    bool          // Maskable interrupts enabled.
	IFF2    bool          // IFF1 restore copy.
	IM      InterruptMode // Maskable interrupt mode.
	EIDelay bool          // No maskable acceptance at the next boundary.
	Halted  bool          // Halted, PC at the halt instruction.

	NMI       bool // Non-maskable request latched.
	INT       bool // Maskable request line asserted.
	Servicing bool // The last boundary accepted an interrupt.
}

// Reset the context to the power-on state.
func (ctx *Context) Reset() {
	*ctx = Context{
		SP: RESET_SP,
	}
}

func (ctx *Context) af() *uint16 {
	return &ctx.AF[ctx.AFSelect&1]
}

func (ctx *Context) bank() *Bank {
	return &ctx.Bank[ctx.BankSelect&1]
}

// ExchangeAF swaps the active and alternate AF.
func (ctx *Context) ExchangeAF() {
	ctx.AFSelect ^= 1
}

// Exchange swaps the active and alternate BC, DE and HL.
func (ctx *Context) Exchange() {
	ctx.BankSelect ^= 1
}

func (ctx *Context) A() uint8      { return uint8(*ctx.af() >> 8) }
func (ctx *Context) F() Flags      { return Flags(*ctx.af()) }
func (ctx *Context) AFReg() uint16 { return *ctx.af() }
func (ctx *Context) BC() uint16    { return ctx.bank().BC }
func (ctx *Context) DE() uint16    { return ctx.bank().DE }
func (ctx *Context) HL() uint16    { return ctx.bank().HL }
func (ctx *Context) B() uint8      { return uint8(ctx.bank().BC >> 8) }
func (ctx *Context) C() uint8      { return uint8(ctx.bank().BC) }

func (ctx *Context) SetA(v uint8)            { setHigh(ctx.af(), v) }
func (ctx *Context) SetF(fl Flags)           { setLow(ctx.af(), uint8(fl)) }
func (ctx *Context) SetAF(v uint16)          { *ctx.af() = v }
func (ctx *Context) SetBC(v uint16)          { ctx.bank().BC = v }
func (ctx *Context) SetDE(v uint16)          { ctx.bank().DE = v }
func (ctx *Context) SetHL(v uint16)          { ctx.bank().HL = v }
func (ctx *Context) setAF(a uint8, fl Flags) { *ctx.af() = uint16(a)<<8 | uint16(fl) }

func setHigh(reg *uint16, v uint8) {
	*reg = *reg&0x00ff | uint16(v)<<8
}

func setLow(reg *uint16, v uint8) {
	*reg = *reg&0xff00 | uint16(v)
}

// reg8 returns the register selected by a 3-bit operand code, other than
// the (HL) memory operand (code 6).
func (ctx *Context) reg8(code uint8) uint8 {
	bank := ctx.bank()
	switch code & 7 {
	case 0:
		return uint8(bank.BC >> 8)
	case 1:
		return uint8(bank.BC)
	case 2:
		return uint8(bank.DE >> 8)
	case 3:
		return uint8(bank.DE)
	case 4:
		return uint8(bank.HL >> 8)
	case 5:
		return uint8(bank.HL)
	case 7:
		return ctx.A()
	}
	panic(fmt.Sprintf("z80: register code %d", code))
}

func (ctx *Context) setReg8(code uint8, v uint8) {
	bank := ctx.bank()
	switch code & 7 {
	case 0:
		setHigh(&bank.BC, v)
	case 1:
		setLow(&bank.BC, v)
	case 2:
		setHigh(&bank.DE, v)
	case 3:
		setLow(&bank.DE, v)
	case 4:
		setHigh(&bank.HL, v)
	case 5:
		setLow(&bank.HL, v)
	case 7:
		ctx.SetA(v)
	default:
		panic(fmt.Sprintf("z80: register code %d", code))
	}
}

// pair returns the register pair selected by a 2-bit operand code, with
// code 3 selecting SP, or AF when af is set.
func (ctx *Context) pair(code uint8, af bool) *uint16 {
	bank := ctx.bank()
	switch code & 3 {
	case 0:
		return &bank.BC
	case 1:
		return &bank.DE
	case 2:
		return &bank.HL
	}
	if af {
		return ctx.af()
	}
	return &ctx.SP
}

// condition evaluates a 3-bit condition code.
func (ctx *Context) condition(cc uint8) bool {
	fl := ctx.F()
	switch cc & 7 {
	case 0:
		return !fl.Has(FLAG_Z)
	case 1:
		return fl.Has(FLAG_Z)
	case 2:
		return !fl.Has(FLAG_C)
	case 3:
		return fl.Has(FLAG_C)
	case 4:
		return !fl.Has(FLAG_PV)
	case 5:
		return fl.Has(FLAG_PV)
	case 6:
		return !fl.Has(FLAG_S)
	}
	return fl.Has(FLAG_S)
}

func (ctx *Context) incR() {
	ctx.R = ctx.R&0x80 | (ctx.R+1)&0x7f
}

// String returns the register state as a string.
func (ctx *Context) String() (text string) {
	alt := &ctx.Bank[ctx.BankSelect&1^1]
	text += fmt.Sprintf("  af: %04X  af': %04X\n", ctx.AFReg(), ctx.AF[ctx.AFSelect&1^1])
	text += fmt.Sprintf("  bc: %04X  bc': %04X\n", ctx.BC(), alt.BC)
	text += fmt.Sprintf("  de: %04X  de': %04X\n", ctx.DE(), alt.DE)
	text += fmt.Sprintf("  hl: %04X  hl': %04X\n", ctx.HL(), alt.HL)
	text += fmt.Sprintf("  ix: %04X   iy: %04X\n", ctx.IX, ctx.IY)
	text += fmt.Sprintf("  sp: %04X   pc: %04X\n", ctx.SP, ctx.PC)
	text += fmt.Sprintf("   i: %02X      r: %02X\n", ctx.I, ctx.R)
	text += fmt.Sprintf(" iff: %v/%v %v halted: %v\n", ctx.IFF1, ctx.IFF2, ctx.IM, ctx.Halted)

	return
}

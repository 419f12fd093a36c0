package ppc

import (
	"math/bits"
)

type arithFunc func(cpu *PPC, a, b uint32) (r uint32, ca bool, ov bool)

func initIntegerOps() {
	ops31[0] = opCmp
	ops31[4] = opTw
	ops31[32] = opCmpl

	withOE(&ops31, 8, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(^a, b, 1) }))
	withOE(&ops31, 10, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(a, b, 0) }))
	withOE(&ops31, 40, arith(false, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(^a, b, 1) }))
	withOE(&ops31, 104, arith(false, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(^a, 0, 1) }))
	withOE(&ops31, 136, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(^a, b, cpu.ca()) }))
	withOE(&ops31, 138, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(a, b, cpu.ca()) }))
	withOE(&ops31, 200, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(^a, 0, cpu.ca()) }))
	withOE(&ops31, 202, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(a, 0, cpu.ca()) }))
	withOE(&ops31, 232, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(^a, 0xffffffff, cpu.ca()) }))
	withOE(&ops31, 234, arith(true, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(a, 0xffffffff, cpu.ca()) }))
	withOE(&ops31, 235, arith(false, mullw))
	withOE(&ops31, 266, arith(false, func(cpu *PPC, a, b uint32) (uint32, bool, bool) { return AddCarry(a, b, 0) }))
	withOE(&ops31, 459, arith(false, divwu))
	withOE(&ops31, 491, arith(false, divw))
	ops31[11] = arith(false, mulhwu)
	ops31[75] = arith(false, mulhw)

	ops31[24] = logical(func(s, b uint32) uint32 {
		if b&0x20 != 0 {
			return 0
		}
		return s << (b & 31)
	})
	ops31[26] = logical(func(s, b uint32) uint32 { return uint32(bits.LeadingZeros32(s)) })
	ops31[28] = logical(func(s, b uint32) uint32 { return s & b })
	ops31[60] = logical(func(s, b uint32) uint32 { return s &^ b })
	ops31[124] = logical(func(s, b uint32) uint32 { return ^(s | b) })
	ops31[284] = logical(func(s, b uint32) uint32 { return ^(s ^ b) })
	ops31[316] = logical(func(s, b uint32) uint32 { return s ^ b })
	ops31[412] = logical(func(s, b uint32) uint32 { return s | ^b })
	ops31[444] = logical(func(s, b uint32) uint32 { return s | b })
	ops31[476] = logical(func(s, b uint32) uint32 { return ^(s & b) })
	ops31[536] = logical(func(s, b uint32) uint32 {
		if b&0x20 != 0 {
			return 0
		}
		return s >> (b & 31)
	})
	ops31[922] = logical(func(s, b uint32) uint32 { return uint32(int32(int16(s))) })
	ops31[954] = logical(func(s, b uint32) uint32 { return uint32(int32(int8(s))) })

	ops31[792] = opSraw
	ops31[824] = opSrawi
}

// arith builds an XO-form op, optionally updating XER[CA].
func arith(carry bool, f arithFunc) opFunc {
	return func(cpu *PPC, in Instruction) {
		r, ca, ov := f(cpu, cpu.GPR[in.RA()], cpu.GPR[in.RB()])
		cpu.GPR[in.RD()] = r
		if carry {
			cpu.setCA(ca)
		}
		if in.OE() {
			cpu.setOV(ov)
		}
		if in.Rc() {
			cpu.record(r)
		}
	}
}

func mullw(cpu *PPC, a, b uint32) (r uint32, ca bool, ov bool) {
	p := int64(int32(a)) * int64(int32(b))
	r = uint32(p)
	ov = p != int64(int32(p))
	return
}

func mulhw(cpu *PPC, a, b uint32) (r uint32, ca bool, ov bool) {
	p := int64(int32(a)) * int64(int32(b))
	r = uint32(p >> 32)
	return
}

func mulhwu(cpu *PPC, a, b uint32) (r uint32, ca bool, ov bool) {
	hi, _ := bits.Mul32(a, b)
	r = hi
	return
}

// divw leaves -1 for a negative dividend and 0 otherwise when the quotient
// is undefined.
func divw(cpu *PPC, a, b uint32) (r uint32, ca bool, ov bool) {
	if b == 0 || (a == 0x80000000 && b == 0xffffffff) {
		ov = true
		if int32(a) < 0 {
			r = 0xffffffff
		}
		return
	}
	r = uint32(int32(a) / int32(b))
	return
}

func divwu(cpu *PPC, a, b uint32) (r uint32, ca bool, ov bool) {
	if b == 0 {
		ov = true
		return
	}
	r = a / b
	return
}

// logical builds an X-form op writing rA from rS and rB.
func logical(f func(s, b uint32) uint32) opFunc {
	return func(cpu *PPC, in Instruction) {
		r := f(cpu.GPR[in.RD()], cpu.GPR[in.RB()])
		cpu.GPR[in.RA()] = r
		if in.Rc() {
			cpu.record(r)
		}
	}
}

// logicalImm builds a D-form op writing rA from rS and the unsigned
// immediate. The and forms always record.
func logicalImm(f func(s, imm uint32) uint32, rc bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		r := f(cpu.GPR[in.RD()], in.UIMM())
		cpu.GPR[in.RA()] = r
		if rc {
			cpu.record(r)
		}
	}
}

func (cpu *PPC) ra0(in Instruction) uint32 {
	if in.RA() == 0 {
		return 0
	}
	return cpu.GPR[in.RA()]
}

func opAddi(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = cpu.ra0(in) + uint32(in.SIMM())
}

func opAddis(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = cpu.ra0(in) + in.UIMM()<<16
}

func opAddic(rc bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		r, ca, _ := AddCarry(cpu.GPR[in.RA()], uint32(in.SIMM()), 0)
		cpu.GPR[in.RD()] = r
		cpu.setCA(ca)
		if rc {
			cpu.record(r)
		}
	}
}

func opSubfic(cpu *PPC, in Instruction) {
	r, ca, _ := AddCarry(^cpu.GPR[in.RA()], uint32(in.SIMM()), 1)
	cpu.GPR[in.RD()] = r
	cpu.setCA(ca)
}

func opMulli(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = uint32(int32(cpu.GPR[in.RA()]) * in.SIMM())
}

func opCmpi(cpu *PPC, in Instruction) {
	cpu.SetCRField(in.CRFD(), CompareSigned(int32(cpu.GPR[in.RA()]), in.SIMM(), cpu.so()))
}

func opCmpli(cpu *PPC, in Instruction) {
	cpu.SetCRField(in.CRFD(), CompareUnsigned(cpu.GPR[in.RA()], in.UIMM(), cpu.so()))
}

func opCmp(cpu *PPC, in Instruction) {
	cpu.SetCRField(in.CRFD(), CompareSigned(int32(cpu.GPR[in.RA()]), int32(cpu.GPR[in.RB()]), cpu.so()))
}

func opCmpl(cpu *PPC, in Instruction) {
	cpu.SetCRField(in.CRFD(), CompareUnsigned(cpu.GPR[in.RA()], cpu.GPR[in.RB()], cpu.so()))
}

func (cpu *PPC) shiftRightAlgebraic(in Instruction, n uint32) {
	s := int32(cpu.GPR[in.RD()])

	var r int32
	var ca bool
	if n >= 32 {
		r = s >> 31
		ca = s < 0
	} else {
		r = s >> n
		ca = s < 0 && uint32(s)&(uint32(1)<<n-1) != 0
	}

	cpu.GPR[in.RA()] = uint32(r)
	cpu.setCA(ca)
	if in.Rc() {
		cpu.record(uint32(r))
	}
}

func opSraw(cpu *PPC, in Instruction) {
	cpu.shiftRightAlgebraic(in, cpu.GPR[in.RB()]&0x3f)
}

func opSrawi(cpu *PPC, in Instruction) {
	cpu.shiftRightAlgebraic(in, in.RB())
}

func opRlwinm(cpu *PPC, in Instruction) {
	r := bits.RotateLeft32(cpu.GPR[in.RD()], int(in.RB())) & RotateMask(in.MB(), in.ME())
	cpu.GPR[in.RA()] = r
	if in.Rc() {
		cpu.record(r)
	}
}

func opRlwnm(cpu *PPC, in Instruction) {
	sh := cpu.GPR[in.RB()] & 31
	r := bits.RotateLeft32(cpu.GPR[in.RD()], int(sh)) & RotateMask(in.MB(), in.ME())
	cpu.GPR[in.RA()] = r
	if in.Rc() {
		cpu.record(r)
	}
}

func opRlwimi(cpu *PPC, in Instruction) {
	mask := RotateMask(in.MB(), in.ME())
	r := bits.RotateLeft32(cpu.GPR[in.RD()], int(in.RB()))&mask | cpu.GPR[in.RA()]&^mask
	cpu.GPR[in.RA()] = r
	if in.Rc() {
		cpu.record(r)
	}
}

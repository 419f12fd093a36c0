package ppc

import (
	"math"
)

type floatFunc func(cpu *PPC, a, b, c float64) float64

func initFloatOps() {
	single := []struct {
		xo uint32
		f  floatFunc
	}{
		{18, fdiv},
		{20, func(cpu *PPC, a, b, c float64) float64 { return a - b }},
		{21, func(cpu *PPC, a, b, c float64) float64 { return a + b }},
		{22, func(cpu *PPC, a, b, c float64) float64 { return math.Sqrt(b) }},
		{25, func(cpu *PPC, a, b, c float64) float64 { return a * c }},
		{28, func(cpu *PPC, a, b, c float64) float64 { return math.FMA(a, c, -b) }},
		{29, func(cpu *PPC, a, b, c float64) float64 { return math.FMA(a, c, b) }},
		{30, func(cpu *PPC, a, b, c float64) float64 { return -math.FMA(a, c, -b) }},
		{31, func(cpu *PPC, a, b, c float64) float64 { return -math.FMA(a, c, b) }},
	}
	for _, op := range single {
		aForm(&ops59, op.xo, floatArith(true, op.f))
		aForm(&ops63, op.xo, floatArith(false, op.f))
	}
	aForm(&ops59, 24, floatArith(true, func(cpu *PPC, a, b, c float64) float64 { return 1 / b }))
	aForm(&ops63, 26, floatArith(false, func(cpu *PPC, a, b, c float64) float64 { return 1 / math.Sqrt(b) }))
	aForm(&ops63, 23, opFsel)

	ops63[0] = opFcmp
	ops63[32] = opFcmp
	ops63[12] = floatArith(true, func(cpu *PPC, a, b, c float64) float64 { return b })
	ops63[14] = opFctiw(false)
	ops63[15] = opFctiw(true)
	ops63[38] = opMtfsb(true)
	ops63[40] = floatMove(func(v uint64) uint64 { return v ^ 1<<63 })
	ops63[64] = opMcrfs
	ops63[70] = opMtfsb(false)
	ops63[72] = floatMove(func(v uint64) uint64 { return v })
	ops63[134] = opMtfsfi
	ops63[136] = floatMove(func(v uint64) uint64 { return v | 1<<63 })
	ops63[264] = floatMove(func(v uint64) uint64 { return v &^ (1 << 63) })
	ops63[583] = opMffs
	ops63[711] = opMtfsf
}

func (cpu *PPC) fpr(n uint32) float64 {
	return math.Float64frombits(cpu.FPR[n])
}

// recordFloat sets CR1 from the FPSCR exception summary bits.
func (cpu *PPC) recordFloat(in Instruction) {
	if in.Rc() {
		cpu.SetCRField(1, cpu.FPSCR>>28)
	}
}

func (cpu *PPC) floatException(bits uint32) {
	cpu.FPSCR |= bits | FPSCR_FX
}

// floatArith builds an arithmetic op on frA, frB and frC. Single precision
// results are rounded through float32.
func floatArith(single bool, f floatFunc) opFunc {
	return func(cpu *PPC, in Instruction) {
		r := f(cpu, cpu.fpr(in.RA()), cpu.fpr(in.RB()), cpu.fpr(in.RC()))
		if single {
			r = float64(float32(r))
		}
		cpu.FPR[in.RD()] = math.Float64bits(r)
		cpu.FPSCR = cpu.FPSCR&^FPSCR_FPRF | ResultFlags(r)
		cpu.recordFloat(in)
	}
}

func fdiv(cpu *PPC, a, b, c float64) float64 {
	if b == 0 && a != 0 && !math.IsNaN(a) {
		cpu.floatException(FPSCR_ZX)
	}
	return a / b
}

// floatMove builds a sign manipulation op on frB. The FPSCR is unchanged.
func floatMove(f func(v uint64) uint64) opFunc {
	return func(cpu *PPC, in Instruction) {
		cpu.FPR[in.RD()] = f(cpu.FPR[in.RB()])
		cpu.recordFloat(in)
	}
}

func opFsel(cpu *PPC, in Instruction) {
	a := cpu.fpr(in.RA())
	if a >= 0 {
		cpu.FPR[in.RD()] = cpu.FPR[in.RC()]
	} else {
		cpu.FPR[in.RD()] = cpu.FPR[in.RB()]
	}
	cpu.recordFloat(in)
}

func opFcmp(cpu *PPC, in Instruction) {
	field := CompareFloat(cpu.fpr(in.RA()), cpu.fpr(in.RB()))
	cpu.SetCRField(in.CRFD(), field)
	cpu.FPSCR = cpu.FPSCR&^0xf000 | field<<12
}

// opFctiw converts frB to a signed word in the low half of frD.
func opFctiw(truncate bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		rn := cpu.FPSCR & FPSCR_RN
		if truncate {
			rn = 1
		}
		v := RoundToInt32(cpu.fpr(in.RB()), rn)
		cpu.FPR[in.RD()] = 0xfff80000<<32 | uint64(uint32(v))
		cpu.recordFloat(in)
	}
}

func opMffs(cpu *PPC, in Instruction) {
	cpu.FPR[in.RD()] = uint64(cpu.FPSCR)
	cpu.recordFloat(in)
}

func opMtfsf(cpu *PPC, in Instruction) {
	fm := in.FM()
	v := uint32(cpu.FPR[in.RB()])

	var mask uint32
	for n := uint32(0); n < 8; n++ {
		if fm&(0x80>>n) != 0 {
			mask |= 0xf0000000 >> (4 * n)
		}
	}
	cpu.FPSCR = cpu.FPSCR&^mask | v&mask
	cpu.recordFloat(in)
}

func opMtfsfi(cpu *PPC, in Instruction) {
	shift := 28 - 4*in.CRFD()
	imm := (uint32(in) >> 12) & 0xf
	cpu.FPSCR = cpu.FPSCR&^(0xf<<shift) | imm<<shift
	cpu.recordFloat(in)
}

func opMtfsb(set bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		mask := uint32(0x80000000) >> in.RD()
		if set {
			cpu.FPSCR |= mask
		} else {
			cpu.FPSCR &^= mask
		}
		cpu.recordFloat(in)
	}
}

func opMcrfs(cpu *PPC, in Instruction) {
	shift := 28 - 4*in.CRFS()
	cpu.SetCRField(in.CRFD(), cpu.FPSCR>>shift)
}

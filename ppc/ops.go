package ppc

type opFunc func(cpu *PPC, in Instruction)

var (
	primaryOps [64]opFunc
	ops19      [1024]opFunc
	ops31      [1024]opFunc
	ops59      [1024]opFunc
	ops63      [1024]opFunc
)

// extended dispatches on the extended opcode field.
func extended(table *[1024]opFunc) opFunc {
	return func(cpu *PPC, in Instruction) {
		op := table[in.XO()]
		if op == nil {
			cpu.unknown(in)
			return
		}
		op(cpu, in)
	}
}

// withOE registers an XO-form op with and without the overflow enable bit.
func withOE(table *[1024]opFunc, xo uint32, op opFunc) {
	table[xo] = op
	table[xo|0x200] = op
}

// aForm registers an A-form op for every value of the frC field.
func aForm(table *[1024]opFunc, xo uint32, op opFunc) {
	for frc := uint32(0); frc < 32; frc++ {
		table[frc<<5|xo] = op
	}
}

func opUnknown(cpu *PPC, in Instruction) {
	cpu.unknown(in)
}

func init() {
	primaryOps = [64]opFunc{
		3:  opTwi,
		7:  opMulli,
		8:  opSubfic,
		10: opCmpli,
		11: opCmpi,
		12: opAddic(false),
		13: opAddic(true),
		14: opAddi,
		15: opAddis,
		16: opBc,
		17: opSc,
		18: opB,
		19: extended(&ops19),
		20: opRlwimi,
		21: opRlwinm,
		23: opRlwnm,
		24: logicalImm(func(s, imm uint32) uint32 { return s | imm }, false),
		25: logicalImm(func(s, imm uint32) uint32 { return s | imm<<16 }, false),
		26: logicalImm(func(s, imm uint32) uint32 { return s ^ imm }, false),
		27: logicalImm(func(s, imm uint32) uint32 { return s ^ imm<<16 }, false),
		28: logicalImm(func(s, imm uint32) uint32 { return s & imm }, true),
		29: logicalImm(func(s, imm uint32) uint32 { return s & (imm << 16) }, true),
		31: extended(&ops31),
		32: loadD(lwz, false),
		33: loadD(lwz, true),
		34: loadD(lbz, false),
		35: loadD(lbz, true),
		36: storeD(stw, false),
		37: storeD(stw, true),
		38: storeD(stb, false),
		39: storeD(stb, true),
		40: loadD(lhz, false),
		41: loadD(lhz, true),
		42: loadD(lha, false),
		43: loadD(lha, true),
		44: storeD(sth, false),
		45: storeD(sth, true),
		46: opLmw,
		47: opStmw,
		48: loadFloatD(lfs, false),
		49: loadFloatD(lfs, true),
		50: loadFloatD(lfd, false),
		51: loadFloatD(lfd, true),
		52: storeFloatD(stfs, false),
		53: storeFloatD(stfs, true),
		54: storeFloatD(stfd, false),
		55: storeFloatD(stfd, true),
		59: extended(&ops59),
		63: extended(&ops63),
	}
	for n, op := range primaryOps {
		if op == nil {
			primaryOps[n] = opUnknown
		}
	}

	initBranchOps()
	initIntegerOps()
	initMemoryOps()
	initSystemOps()
	initFloatOps()
}

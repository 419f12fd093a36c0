package ppc

func initBranchOps() {
	ops19[0] = opMcrf
	ops19[16] = opBclr
	ops19[33] = crLogical(func(a, b bool) bool { return !(a || b) })
	ops19[129] = crLogical(func(a, b bool) bool { return a && !b })
	ops19[193] = crLogical(func(a, b bool) bool { return a != b })
	ops19[225] = crLogical(func(a, b bool) bool { return !(a && b) })
	ops19[257] = crLogical(func(a, b bool) bool { return a && b })
	ops19[289] = crLogical(func(a, b bool) bool { return a == b })
	ops19[417] = crLogical(func(a, b bool) bool { return a || !b })
	ops19[449] = crLogical(func(a, b bool) bool { return a || b })
	ops19[528] = opBcctr
}

// condition evaluates the BO and BI fields of a conditional branch,
// decrementing CTR when BO asks for it.
func (cpu *PPC) condition(in Instruction, useCTR bool) bool {
	bo := in.RD()
	bi := in.RA()

	ctrOK := true
	if useCTR && bo&0x04 == 0 {
		cpu.CTR--
		ctrOK = (cpu.CTR != 0) != (bo&0x02 != 0)
	}

	condOK := bo&0x10 != 0 || cpu.CRBit(bi) == (bo&0x08 != 0)

	return ctrOK && condOK
}

func (cpu *PPC) branch(in Instruction, taken bool, target uint32) {
	if in.LK() {
		cpu.LR = cpu.PC
	}
	if taken {
		cpu.PC = target
	}
}

func opB(cpu *PPC, in Instruction) {
	target := uint32(in.LI())
	if !in.AA() {
		target += cpu.cia
	}
	cpu.branch(in, true, target)
}

func opBc(cpu *PPC, in Instruction) {
	target := uint32(in.BD())
	if !in.AA() {
		target += cpu.cia
	}
	cpu.branch(in, cpu.condition(in, true), target)
}

func opBclr(cpu *PPC, in Instruction) {
	target := cpu.LR &^ 3
	cpu.branch(in, cpu.condition(in, true), target)
}

// bcctr cannot decrement the register it branches through.
func opBcctr(cpu *PPC, in Instruction) {
	target := cpu.CTR &^ 3
	cpu.branch(in, cpu.condition(in, false), target)
}

func opMcrf(cpu *PPC, in Instruction) {
	cpu.SetCRField(in.CRFD(), cpu.CRField(in.CRFS()))
}

func crLogical(f func(a, b bool) bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		cpu.setCRBit(in.RD(), f(cpu.CRBit(in.RA()), cpu.CRBit(in.RB())))
	}
}

func opSc(cpu *PPC, in Instruction) {
	cpu.exception(VECTOR_SYSCALL, cpu.PC, 0)
}

func opTwi(cpu *PPC, in Instruction) {
	if Trap(in.RD(), cpu.GPR[in.RA()], uint32(in.SIMM())) {
		cpu.exception(VECTOR_PROGRAM, cpu.cia, SRR1_TRAP)
	}
}

func opTw(cpu *PPC, in Instruction) {
	if Trap(in.RD(), cpu.GPR[in.RA()], cpu.GPR[in.RB()]) {
		cpu.exception(VECTOR_PROGRAM, cpu.cia, SRR1_TRAP)
	}
}

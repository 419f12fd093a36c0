package ppc

func initSystemOps() {
	ops19[50] = opRfi
	ops19[150] = opNop // isync

	ops31[19] = opMfcr
	ops31[83] = opMfmsr
	ops31[144] = opMtcrf
	ops31[146] = opMtmsr
	ops31[210] = opMtsr
	ops31[242] = opMtsrin
	ops31[339] = opMfspr
	ops31[371] = opMftb
	ops31[467] = opMtspr
	ops31[512] = opMcrxr
	ops31[595] = opMfsr
	ops31[659] = opMfsrin

	// Cache, TLB and ordering instructions have no effect on an
	// uncached, untranslated bus.
	for _, xo := range []uint32{54, 86, 246, 278, 306, 370, 470, 566, 598, 854, 978, 982, 1010} {
		ops31[xo] = opNop
	}
}

func opNop(cpu *PPC, in Instruction) {}

func opRfi(cpu *PPC, in Instruction) {
	cpu.MSR = cpu.MSR&^RFI_MSR_MASK | cpu.SRR1&RFI_MSR_MASK
	cpu.PC = cpu.SRR0 &^ 3
}

func opMfcr(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = cpu.CR
}

func opMtcrf(cpu *PPC, in Instruction) {
	crm := in.CRM()
	v := cpu.GPR[in.RD()]
	for n := uint32(0); n < 8; n++ {
		if crm&(0x80>>n) != 0 {
			cpu.SetCRField(n, v>>(28-4*n))
		}
	}
}

func opMcrxr(cpu *PPC, in Instruction) {
	cpu.SetCRField(in.CRFD(), cpu.XER>>28)
	cpu.XER &^= 0xf0000000
}

func opMfmsr(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = cpu.MSR
}

func opMtmsr(cpu *PPC, in Instruction) {
	cpu.setMSR(cpu.GPR[in.RD()])
}

func opMfsr(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = cpu.SR[in.RA()&15]
}

func opMtsr(cpu *PPC, in Instruction) {
	cpu.SR[in.RA()&15] = cpu.GPR[in.RD()]
}

func opMfsrin(cpu *PPC, in Instruction) {
	cpu.GPR[in.RD()] = cpu.SR[cpu.GPR[in.RB()]>>28]
}

func opMtsrin(cpu *PPC, in Instruction) {
	cpu.SR[cpu.GPR[in.RB()]>>28] = cpu.GPR[in.RD()]
}

func opMftb(cpu *PPC, in Instruction) {
	switch in.SPR() {
	case SPR_TBL_R:
		cpu.GPR[in.RD()] = uint32(cpu.TB)
	case SPR_TBU_R:
		cpu.GPR[in.RD()] = uint32(cpu.TB >> 32)
	default:
		cpu.unknown(in)
	}
}

func opMfspr(cpu *PPC, in Instruction) {
	v, ok := cpu.SPR(in.SPR())
	if !ok {
		cpu.unknown(in)
	}
	cpu.GPR[in.RD()] = v
}

func opMtspr(cpu *PPC, in Instruction) {
	if !cpu.SetSPR(in.SPR(), cpu.GPR[in.RD()]) {
		cpu.unknown(in)
	}
}

// bat returns the BAT register for an SPR in a BAT bank.
func bat(bank *[4]BAT, n uint32) *uint32 {
	if n&1 == 0 {
		return &bank[n/2].U
	}
	return &bank[n/2].L
}

// spr returns the location of a plain read-write SPR.
func (cpu *PPC) spr(n uint32) *uint32 {
	switch {
	case n == SPR_XER:
		return &cpu.XER
	case n == SPR_LR:
		return &cpu.LR
	case n == SPR_CTR:
		return &cpu.CTR
	case n == SPR_DSISR:
		return &cpu.DSISR
	case n == SPR_DAR:
		return &cpu.DAR
	case n == SPR_SDR1:
		return &cpu.SDR1
	case n == SPR_SRR0:
		return &cpu.SRR0
	case n == SPR_SRR1:
		return &cpu.SRR1
	case n >= SPR_SPRG0 && n < SPR_SPRG0+4:
		return &cpu.SPRG[n-SPR_SPRG0]
	case n == SPR_EAR:
		return &cpu.EAR
	case n == SPR_HID0:
		return &cpu.HID[0]
	case n == SPR_HID1:
		return &cpu.HID[1]
	case n == SPR_HID2:
		return &cpu.HID[2]
	case n == SPR_IABR:
		return &cpu.IABR
	case n == SPR_DABR:
		return &cpu.DABR
	case n >= SPR_IBAT && n < SPR_IBAT+8:
		return bat(&cpu.IBAT, n-SPR_IBAT)
	case n >= SPR_DBAT && n < SPR_DBAT+8:
		return bat(&cpu.DBAT, n-SPR_DBAT)
	}
	return nil
}

// SPR reads a special purpose register. An unknown register reads as zero.
func (cpu *PPC) SPR(n uint32) (v uint32, ok bool) {
	switch n {
	case SPR_DEC:
		return cpu.DEC, true
	case SPR_PVR:
		return cpu.PVR, true
	case SPR_TBL_R, SPR_TBL_W:
		return uint32(cpu.TB), true
	case SPR_TBU_R, SPR_TBU_W:
		return uint32(cpu.TB >> 32), true
	}

	if p := cpu.spr(n); p != nil {
		return *p, true
	}

	return 0, false
}

// SetSPR writes a special purpose register. Writes to PVR are ignored.
func (cpu *PPC) SetSPR(n uint32, v uint32) (ok bool) {
	switch n {
	case SPR_DEC:
		cpu.setDEC(v)
		return true
	case SPR_PVR:
		return true
	case SPR_TBL_W:
		cpu.TB = cpu.TB&^0xffffffff | uint64(v)
		return true
	case SPR_TBU_W:
		cpu.TB = cpu.TB&0xffffffff | uint64(v)<<32
		return true
	case SPR_XER:
		cpu.XER = v & 0xe000007f
		return true
	}

	if p := cpu.spr(n); p != nil {
		*p = v
		return true
	}

	return false
}

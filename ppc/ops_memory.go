package ppc

import (
	"math"
	"math/bits"
)

type (
	loadFunc   func(cpu *PPC, ea uint32) uint32
	storeFunc  func(cpu *PPC, ea uint32, v uint32)
	loadFFunc  func(cpu *PPC, ea uint32) uint64
	storeFFunc func(cpu *PPC, ea uint32, v uint64)
)

func lbz(cpu *PPC, ea uint32) uint32   { return uint32(cpu.bus.Read8(ea)) }
func lhz(cpu *PPC, ea uint32) uint32   { return uint32(cpu.bus.Read16(ea)) }
func lha(cpu *PPC, ea uint32) uint32   { return uint32(int32(int16(cpu.bus.Read16(ea)))) }
func lwz(cpu *PPC, ea uint32) uint32   { return cpu.bus.Read32(ea) }
func lhbrx(cpu *PPC, ea uint32) uint32 { return uint32(bits.ReverseBytes16(cpu.bus.Read16(ea))) }
func lwbrx(cpu *PPC, ea uint32) uint32 { return bits.ReverseBytes32(cpu.bus.Read32(ea)) }

func stb(cpu *PPC, ea uint32, v uint32)    { cpu.bus.Write8(ea, uint8(v)) }
func sth(cpu *PPC, ea uint32, v uint32)    { cpu.bus.Write16(ea, uint16(v)) }
func stw(cpu *PPC, ea uint32, v uint32)    { cpu.bus.Write32(ea, v) }
func sthbrx(cpu *PPC, ea uint32, v uint32) { cpu.bus.Write16(ea, bits.ReverseBytes16(uint16(v))) }
func stwbrx(cpu *PPC, ea uint32, v uint32) { cpu.bus.Write32(ea, bits.ReverseBytes32(v)) }

// Single precision loads and stores convert through the register format.
func lfs(cpu *PPC, ea uint32) uint64 {
	return math.Float64bits(float64(math.Float32frombits(cpu.bus.Read32(ea))))
}
func lfd(cpu *PPC, ea uint32) uint64 { return cpu.bus.Read64(ea) }
func stfs(cpu *PPC, ea uint32, v uint64) {
	cpu.bus.Write32(ea, math.Float32bits(float32(math.Float64frombits(v))))
}
func stfd(cpu *PPC, ea uint32, v uint64)   { cpu.bus.Write64(ea, v) }
func stfiwx(cpu *PPC, ea uint32, v uint64) { cpu.bus.Write32(ea, uint32(v)) }

func initMemoryOps() {
	ops31[20] = opLwarx
	ops31[150] = opStwcx
	ops31[23] = loadX(lwz, false)
	ops31[55] = loadX(lwz, true)
	ops31[87] = loadX(lbz, false)
	ops31[119] = loadX(lbz, true)
	ops31[151] = storeX(stw, false)
	ops31[183] = storeX(stw, true)
	ops31[215] = storeX(stb, false)
	ops31[247] = storeX(stb, true)
	ops31[279] = loadX(lhz, false)
	ops31[311] = loadX(lhz, true)
	ops31[343] = loadX(lha, false)
	ops31[375] = loadX(lha, true)
	ops31[407] = storeX(sth, false)
	ops31[439] = storeX(sth, true)
	ops31[534] = loadX(lwbrx, false)
	ops31[662] = storeX(stwbrx, false)
	ops31[790] = loadX(lhbrx, false)
	ops31[918] = storeX(sthbrx, false)
	ops31[310] = loadX(lwz, false)  // eciwx
	ops31[438] = storeX(stw, false) // ecowx

	ops31[533] = opLswx
	ops31[597] = opLswi
	ops31[661] = opStswx
	ops31[725] = opStswi

	ops31[535] = loadFloatX(lfs, false)
	ops31[567] = loadFloatX(lfs, true)
	ops31[599] = loadFloatX(lfd, false)
	ops31[631] = loadFloatX(lfd, true)
	ops31[663] = storeFloatX(stfs, false)
	ops31[695] = storeFloatX(stfs, true)
	ops31[727] = storeFloatX(stfd, false)
	ops31[759] = storeFloatX(stfd, true)
	ops31[983] = storeFloatX(stfiwx, false)

	ops31[1014] = opDcbz
}

// eaD is the effective address of a D-form access. Update forms always
// use rA.
func (cpu *PPC) eaD(in Instruction, update bool) uint32 {
	if update {
		return cpu.GPR[in.RA()] + uint32(in.SIMM())
	}
	return cpu.ra0(in) + uint32(in.SIMM())
}

// eaX is the effective address of an X-form access.
func (cpu *PPC) eaX(in Instruction, update bool) uint32 {
	if update {
		return cpu.GPR[in.RA()] + cpu.GPR[in.RB()]
	}
	return cpu.ra0(in) + cpu.GPR[in.RB()]
}

func loadD(load loadFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaD(in, update)
		cpu.GPR[in.RD()] = load(cpu, ea)
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func loadX(load loadFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaX(in, update)
		cpu.GPR[in.RD()] = load(cpu, ea)
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func storeD(store storeFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaD(in, update)
		store(cpu, ea, cpu.GPR[in.RD()])
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func storeX(store storeFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaX(in, update)
		store(cpu, ea, cpu.GPR[in.RD()])
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func loadFloatD(load loadFFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaD(in, update)
		cpu.FPR[in.RD()] = load(cpu, ea)
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func loadFloatX(load loadFFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaX(in, update)
		cpu.FPR[in.RD()] = load(cpu, ea)
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func storeFloatD(store storeFFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaD(in, update)
		store(cpu, ea, cpu.FPR[in.RD()])
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func storeFloatX(store storeFFunc, update bool) opFunc {
	return func(cpu *PPC, in Instruction) {
		ea := cpu.eaX(in, update)
		store(cpu, ea, cpu.FPR[in.RD()])
		if update {
			cpu.GPR[in.RA()] = ea
		}
	}
}

func opLmw(cpu *PPC, in Instruction) {
	ea := cpu.eaD(in, false)
	for r := in.RD(); r < 32; r++ {
		cpu.GPR[r] = cpu.bus.Read32(ea)
		ea += 4
	}
}

func opStmw(cpu *PPC, in Instruction) {
	ea := cpu.eaD(in, false)
	for r := in.RD(); r < 32; r++ {
		cpu.bus.Write32(ea, cpu.GPR[r])
		ea += 4
	}
}

// loadString fills registers from rd upward, most significant byte first,
// wrapping from r31 to r0.
func (cpu *PPC) loadString(r, ea, nb uint32) {
	shift := 24
	for ; nb > 0; nb-- {
		if shift == 24 {
			cpu.GPR[r] = 0
		}
		cpu.GPR[r] |= uint32(cpu.bus.Read8(ea)) << shift
		ea++
		if shift == 0 {
			shift = 24
			r = (r + 1) & 31
		} else {
			shift -= 8
		}
	}
}

func (cpu *PPC) storeString(r, ea, nb uint32) {
	shift := 24
	for ; nb > 0; nb-- {
		cpu.bus.Write8(ea, uint8(cpu.GPR[r]>>shift))
		ea++
		if shift == 0 {
			shift = 24
			r = (r + 1) & 31
		} else {
			shift -= 8
		}
	}
}

// stringCount is the NB field, where zero means 32 bytes.
func stringCount(in Instruction) uint32 {
	if nb := in.RB(); nb != 0 {
		return nb
	}
	return 32
}

func opLswi(cpu *PPC, in Instruction) {
	cpu.loadString(in.RD(), cpu.ra0(in), stringCount(in))
}

func opStswi(cpu *PPC, in Instruction) {
	cpu.storeString(in.RD(), cpu.ra0(in), stringCount(in))
}

func opLswx(cpu *PPC, in Instruction) {
	cpu.loadString(in.RD(), cpu.eaX(in, false), cpu.XER&0x7f)
}

func opStswx(cpu *PPC, in Instruction) {
	cpu.storeString(in.RD(), cpu.eaX(in, false), cpu.XER&0x7f)
}

func opLwarx(cpu *PPC, in Instruction) {
	ea := cpu.eaX(in, false)
	cpu.GPR[in.RD()] = cpu.bus.Read32(ea)
	cpu.Reserve = true
	cpu.ReserveAddr = ea
}

// stwcx. stores only while the reservation is held, reporting success
// in CR0[EQ].
func opStwcx(cpu *PPC, in Instruction) {
	ea := cpu.eaX(in, false)

	field := uint32(0)
	if cpu.so() {
		field |= CR_SO
	}
	if cpu.Reserve && cpu.ReserveAddr == ea {
		cpu.bus.Write32(ea, cpu.GPR[in.RD()])
		field |= CR_EQ
	}
	cpu.Reserve = false
	cpu.SetCRField(0, field)
}

func opDcbz(cpu *PPC, in Instruction) {
	ea := cpu.eaX(in, false) &^ (DCBZ_BLOCK_BYTES - 1)
	for n := uint32(0); n < DCBZ_BLOCK_BYTES; n += 4 {
		cpu.bus.Write32(ea+n, 0)
	}
}

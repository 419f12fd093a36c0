package z80

// opExtended executes from the ED map. Undefined entries are two-byte no-ops.
func (cpu *Z80) opExtended() {
	op := cpu.fetchOp()
	fn := edOps[op]
	if fn == nil {
		cpu.unknown(0xed00 | uint32(op))
		return
	}
	fn(cpu)
}

var edModes = [8]InterruptMode{IM_0, IM_0, IM_1, IM_2, IM_0, IM_0, IM_1, IM_2}

func initEdOps() {
	for y := range uint8(8) {
		op := 0x40 | y<<3
		p := y >> 1

		edOps[op|0] = func(cpu *Z80) {
			v := cpu.in8(cpu.BC())
			if y != 6 {
				cpu.setReg8(y, v)
			}
			cpu.SetF(In(v, cpu.F()))
		}
		edOps[op|1] = func(cpu *Z80) {
			v := uint8(0)
			if y != 6 {
				v = cpu.reg8(y)
			}
			cpu.out8(cpu.BC(), v)
		}
		if y&1 == 0 {
			edOps[op|2] = func(cpu *Z80) {
				hl, fl := Sbc16(cpu.HL(), *cpu.pair(p, false), cpu.F())
				cpu.SetHL(hl)
				cpu.SetF(fl)
			}
			edOps[op|3] = func(cpu *Z80) {
				cpu.write16(cpu.fetch16(), *cpu.pair(p, false))
			}
		} else {
			edOps[op|2] = func(cpu *Z80) {
				hl, fl := Adc16(cpu.HL(), *cpu.pair(p, false), cpu.F())
				cpu.SetHL(hl)
				cpu.SetF(fl)
			}
			edOps[op|3] = func(cpu *Z80) {
				*cpu.pair(p, false) = cpu.read16(cpu.fetch16())
			}
		}
		edOps[op|4] = func(cpu *Z80) {
			cpu.setAF(Sub8(0, cpu.A(), false))
		}
		edOps[op|5] = func(cpu *Z80) {
			cpu.PC = cpu.pop()
			cpu.IFF1 = cpu.IFF2
		}
		edOps[op|6] = func(cpu *Z80) {
			cpu.IM = edModes[y]
		}
	}

	edOps[0x47] = func(cpu *Z80) { cpu.I = cpu.A() }
	edOps[0x4f] = func(cpu *Z80) { cpu.R = cpu.A() }
	edOps[0x57] = func(cpu *Z80) {
		cpu.setAF(cpu.I, LdAir(cpu.I, cpu.IFF2, cpu.F()))
	}
	edOps[0x5f] = func(cpu *Z80) {
		cpu.setAF(cpu.R, LdAir(cpu.R, cpu.IFF2, cpu.F()))
	}
	edOps[0x67] = func(cpu *Z80) {
		a, v := cpu.A(), cpu.read8(cpu.HL())
		cpu.write8(cpu.HL(), a<<4|v>>4)
		a = a&0xf0 | v&0x0f
		cpu.setAF(a, szxyp(a)|cpu.F()&FLAG_C)
	}
	edOps[0x6f] = func(cpu *Z80) {
		a, v := cpu.A(), cpu.read8(cpu.HL())
		cpu.write8(cpu.HL(), v<<4|a&0x0f)
		a = a&0xf0 | v>>4
		cpu.setAF(a, szxyp(a)|cpu.F()&FLAG_C)
	}

	// Block transfer, compare, input and output. Odd rows step down,
	// the last two rows repeat.
	for y := uint8(4); y < 8; y++ {
		delta := uint16(1)
		if y&1 == 1 {
			delta = 0xffff
		}
		repeat := y >= 6

		edOps[0x80|y<<3|0] = func(cpu *Z80) { cpu.blockLd(delta, repeat) }
		edOps[0x80|y<<3|1] = func(cpu *Z80) { cpu.blockCp(delta, repeat) }
		edOps[0x80|y<<3|2] = func(cpu *Z80) { cpu.blockIn(delta, repeat) }
		edOps[0x80|y<<3|3] = func(cpu *Z80) { cpu.blockOut(delta, repeat) }
	}
}

// again re-executes the current two-byte block instruction.
func (cpu *Z80) again(cond bool) {
	if cond {
		cpu.PC -= 2
	}
}

func (cpu *Z80) blockLd(delta uint16, repeat bool) {
	bank := cpu.bank()

	v := cpu.read8(bank.HL)
	cpu.write8(bank.DE, v)
	bank.HL += delta
	bank.DE += delta
	bank.BC--

	cpu.SetF(Ld(cpu.A(), v, bank.BC, cpu.F()))
	cpu.again(repeat && bank.BC != 0)
}

func (cpu *Z80) blockCp(delta uint16, repeat bool) {
	bank := cpu.bank()

	v := cpu.read8(bank.HL)
	bank.HL += delta
	bank.BC--

	fl := Cp(cpu.A(), v, bank.BC, cpu.F())
	cpu.SetF(fl)
	cpu.again(repeat && bank.BC != 0 && !fl.Has(FLAG_Z))
}

func (cpu *Z80) blockIn(delta uint16, repeat bool) {
	bank := cpu.bank()

	v := cpu.in8(bank.BC)
	cpu.write8(bank.HL, v)
	bank.HL += delta
	b := uint8(bank.BC>>8) - 1
	setHigh(&bank.BC, b)

	k := uint16(v) + uint16(uint8(bank.BC)+uint8(delta))
	cpu.SetF(Io(v, b, k))
	cpu.again(repeat && b != 0)
}

func (cpu *Z80) blockOut(delta uint16, repeat bool) {
	bank := cpu.bank()

	v := cpu.read8(bank.HL)
	b := uint8(bank.BC>>8) - 1
	setHigh(&bank.BC, b)
	cpu.out8(bank.BC, v)
	bank.HL += delta

	k := uint16(v) + uint16(uint8(bank.HL))
	cpu.SetF(Io(v, b, k))
	cpu.again(repeat && b != 0)
}

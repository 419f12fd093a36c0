package z80

type opFunc func(cpu *Z80)

// Opcode maps. Built once, never modified.
var (
	baseOps [256]opFunc
	cbOps   [256]opFunc
	edOps   [256]opFunc
)

func init() {
	initBaseOps()
	initCbOps()
	initEdOps()
	initIndexOps()
	initIndexBitOps()
}

// operand reads a 3-bit operand, where code 6 is the (HL) memory operand.
func (cpu *Z80) operand(code uint8) uint8 {
	if code&7 == 6 {
		return cpu.read8(cpu.HL())
	}
	return cpu.reg8(code)
}

func (cpu *Z80) setOperand(code uint8, v uint8) {
	if code&7 == 6 {
		cpu.write8(cpu.HL(), v)
		return
	}
	cpu.setReg8(code, v)
}

func (cpu *Z80) alu(op AluOp, v uint8) {
	cpu.setAF(Alu(op, cpu.A(), v, cpu.F()))
}

func (cpu *Z80) jr(taken bool) {
	d := int8(cpu.fetch8())
	if taken {
		cpu.PC += uint16(d)
	}
}

func (cpu *Z80) jp(taken bool) {
	target := cpu.fetch16()
	if taken {
		cpu.PC = target
	}
}

func (cpu *Z80) call(taken bool) {
	target := cpu.fetch16()
	if taken {
		cpu.push(cpu.PC)
		cpu.PC = target
	}
}

func (cpu *Z80) ret(taken bool) {
	if taken {
		cpu.PC = cpu.pop()
	}
}

func initBaseOps() {
	baseOps[0x00] = func(cpu *Z80) {}
	baseOps[0x08] = func(cpu *Z80) { cpu.ExchangeAF() }
	baseOps[0x10] = func(cpu *Z80) {
		b := cpu.B() - 1
		setHigh(&cpu.bank().BC, b)
		cpu.jr(b != 0)
	}
	baseOps[0x18] = func(cpu *Z80) { cpu.jr(true) }
	for cc := range uint8(4) {
		baseOps[0x20|cc<<3] = func(cpu *Z80) { cpu.jr(cpu.condition(cc)) }
	}

	for p := range uint8(4) {
		baseOps[0x01|p<<4] = func(cpu *Z80) {
			*cpu.pair(p, false) = cpu.fetch16()
		}
		baseOps[0x03|p<<4] = func(cpu *Z80) {
			*cpu.pair(p, false)++
		}
		baseOps[0x09|p<<4] = func(cpu *Z80) {
			hl, fl := Add16(cpu.HL(), *cpu.pair(p, false), cpu.F())
			cpu.SetHL(hl)
			cpu.SetF(fl)
		}
		baseOps[0x0b|p<<4] = func(cpu *Z80) {
			*cpu.pair(p, false)--
		}
		baseOps[0xc1|p<<4] = func(cpu *Z80) {
			*cpu.pair(p, true) = cpu.pop()
		}
		baseOps[0xc5|p<<4] = func(cpu *Z80) {
			cpu.push(*cpu.pair(p, true))
		}
	}

	baseOps[0x02] = func(cpu *Z80) { cpu.write8(cpu.BC(), cpu.A()) }
	baseOps[0x0a] = func(cpu *Z80) { cpu.SetA(cpu.read8(cpu.BC())) }
	baseOps[0x12] = func(cpu *Z80) { cpu.write8(cpu.DE(), cpu.A()) }
	baseOps[0x1a] = func(cpu *Z80) { cpu.SetA(cpu.read8(cpu.DE())) }
	baseOps[0x22] = func(cpu *Z80) { cpu.write16(cpu.fetch16(), cpu.HL()) }
	baseOps[0x2a] = func(cpu *Z80) { cpu.SetHL(cpu.read16(cpu.fetch16())) }
	baseOps[0x32] = func(cpu *Z80) { cpu.write8(cpu.fetch16(), cpu.A()) }
	baseOps[0x3a] = func(cpu *Z80) { cpu.SetA(cpu.read8(cpu.fetch16())) }

	for y := range uint8(8) {
		baseOps[0x04|y<<3] = func(cpu *Z80) {
			v, fl := Inc8(cpu.operand(y), cpu.F())
			cpu.setOperand(y, v)
			cpu.SetF(fl)
		}
		baseOps[0x05|y<<3] = func(cpu *Z80) {
			v, fl := Dec8(cpu.operand(y), cpu.F())
			cpu.setOperand(y, v)
			cpu.SetF(fl)
		}
		baseOps[0x06|y<<3] = func(cpu *Z80) {
			cpu.setOperand(y, cpu.fetch8())
		}
	}

	for y, op := range []ShiftOp{SHIFT_RLC, SHIFT_RRC, SHIFT_RL, SHIFT_RR} {
		baseOps[0x07|y<<3] = func(cpu *Z80) {
			cpu.setAF(Rota(op, cpu.A(), cpu.F()))
		}
	}
	baseOps[0x27] = func(cpu *Z80) { cpu.setAF(Daa(cpu.A(), cpu.F())) }
	baseOps[0x2f] = func(cpu *Z80) { cpu.setAF(Cpl(cpu.A(), cpu.F())) }
	baseOps[0x37] = func(cpu *Z80) { cpu.SetF(Scf(cpu.A(), cpu.F())) }
	baseOps[0x3f] = func(cpu *Z80) { cpu.SetF(Ccf(cpu.A(), cpu.F())) }

	for y := range uint8(8) {
		for z := range uint8(8) {
			baseOps[0x40|y<<3|z] = func(cpu *Z80) {
				cpu.setOperand(y, cpu.operand(z))
			}
			baseOps[0x80|y<<3|z] = func(cpu *Z80) {
				cpu.alu(AluOp(y), cpu.operand(z))
			}
		}
	}
	baseOps[0x76] = (*Z80).opHalt

	for cc := range uint8(8) {
		baseOps[0xc0|cc<<3] = func(cpu *Z80) { cpu.ret(cpu.condition(cc)) }
		baseOps[0xc2|cc<<3] = func(cpu *Z80) { cpu.jp(cpu.condition(cc)) }
		baseOps[0xc4|cc<<3] = func(cpu *Z80) { cpu.call(cpu.condition(cc)) }
		baseOps[0xc6|cc<<3] = func(cpu *Z80) { cpu.alu(AluOp(cc), cpu.fetch8()) }
		baseOps[0xc7|cc<<3] = func(cpu *Z80) {
			cpu.push(cpu.PC)
			cpu.PC = uint16(cc) << 3
		}
	}

	baseOps[0xc3] = func(cpu *Z80) { cpu.jp(true) }
	baseOps[0xc9] = func(cpu *Z80) { cpu.ret(true) }
	baseOps[0xcd] = func(cpu *Z80) { cpu.call(true) }
	baseOps[0xd9] = func(cpu *Z80) { cpu.Exchange() }
	baseOps[0xe9] = func(cpu *Z80) { cpu.PC = cpu.HL() }
	baseOps[0xf9] = func(cpu *Z80) { cpu.SP = cpu.HL() }
	baseOps[0xeb] = func(cpu *Z80) {
		bank := cpu.bank()
		bank.DE, bank.HL = bank.HL, bank.DE
	}
	baseOps[0xe3] = func(cpu *Z80) {
		v := cpu.read16(cpu.SP)
		cpu.write16(cpu.SP, cpu.HL())
		cpu.SetHL(v)
	}
	baseOps[0xd3] = func(cpu *Z80) {
		n := cpu.fetch8()
		cpu.out8(uint16(cpu.A())<<8|uint16(n), cpu.A())
	}
	baseOps[0xdb] = func(cpu *Z80) {
		n := cpu.fetch8()
		cpu.SetA(cpu.in8(uint16(cpu.A())<<8 | uint16(n)))
	}
	baseOps[0xf3] = func(cpu *Z80) {
		cpu.IFF1 = false
		cpu.IFF2 = false
	}
	baseOps[0xfb] = func(cpu *Z80) {
		cpu.IFF1 = true
		cpu.IFF2 = true
		cpu.EIDelay = true
	}

	baseOps[0xcb] = func(cpu *Z80) { cbOps[cpu.fetchOp()](cpu) }
	baseOps[0xed] = (*Z80).opExtended
	baseOps[0xdd] = func(cpu *Z80) { cpu.opIndexed(&cpu.IX, 0xdd) }
	baseOps[0xfd] = func(cpu *Z80) { cpu.opIndexed(&cpu.IY, 0xfd) }
}

// opHalt leaves the PC on the halt instruction.
func (cpu *Z80) opHalt() {
	cpu.PC--
	cpu.Halted = true
}

func initCbOps() {
	for y := range uint8(8) {
		for z := range uint8(8) {
			cbOps[0x00|y<<3|z] = func(cpu *Z80) {
				v, fl := Shift(ShiftOp(y), cpu.operand(z), cpu.F())
				cpu.setOperand(z, v)
				cpu.SetF(fl)
			}
			cbOps[0x40|y<<3|z] = func(cpu *Z80) {
				v := cpu.operand(z)
				xy := v
				if z == 6 {
					xy = uint8(cpu.HL() >> 8)
				}
				cpu.SetF(Bit(y, v, xy, cpu.F()))
			}
			cbOps[0x80|y<<3|z] = func(cpu *Z80) {
				cpu.setOperand(z, cpu.operand(z)&^(1<<y))
			}
			cbOps[0xc0|y<<3|z] = func(cpu *Z80) {
				cpu.setOperand(z, cpu.operand(z)|(1<<y))
			}
		}
	}
}

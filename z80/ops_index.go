package z80

type indexFunc func(cpu *Z80, xy *uint16)

type indexBitFunc func(cpu *Z80, addr uint16)

// Index register maps. Entries left nil in indexOps have no indexed form.
var (
	indexOps    [256]indexFunc
	indexBitOps [256]indexBitFunc
)

// opIndexed executes from the DD or FD map, with xy the selected index
// register. An opcode with no indexed form backs the PC up over it, so the
// prefix is ignored and the opcode executes unprefixed on the next step.
func (cpu *Z80) opIndexed(xy *uint16, prefix uint32) {
	op := cpu.fetchOp()
	fn := indexOps[op]
	if fn == nil {
		cpu.unknown(prefix<<8 | uint32(op))
		cpu.PC--
		return
	}
	fn(cpu, xy)
}

// displaced fetches a signed displacement and returns the effective address.
func (cpu *Z80) displaced(xy *uint16) uint16 {
	d := int8(cpu.fetch8())
	return *xy + uint16(d)
}

// indexReg8 reads a 3-bit register code, with H and L replaced by the
// halves of the index register.
func (cpu *Z80) indexReg8(code uint8, xy *uint16) uint8 {
	switch code & 7 {
	case 4:
		return uint8(*xy >> 8)
	case 5:
		return uint8(*xy)
	}
	return cpu.reg8(code)
}

func (cpu *Z80) setIndexReg8(code uint8, xy *uint16, v uint8) {
	switch code & 7 {
	case 4:
		setHigh(xy, v)
	case 5:
		setLow(xy, v)
	default:
		cpu.setReg8(code, v)
	}
}

func initIndexOps() {
	for p := range uint8(4) {
		indexOps[0x09|p<<4] = func(cpu *Z80, xy *uint16) {
			src := xy
			if p != 2 {
				src = cpu.pair(p, false)
			}
			v, fl := Add16(*xy, *src, cpu.F())
			*xy = v
			cpu.SetF(fl)
		}
	}

	indexOps[0x21] = func(cpu *Z80, xy *uint16) { *xy = cpu.fetch16() }
	indexOps[0x22] = func(cpu *Z80, xy *uint16) { cpu.write16(cpu.fetch16(), *xy) }
	indexOps[0x2a] = func(cpu *Z80, xy *uint16) { *xy = cpu.read16(cpu.fetch16()) }
	indexOps[0x23] = func(cpu *Z80, xy *uint16) { *xy++ }
	indexOps[0x2b] = func(cpu *Z80, xy *uint16) { *xy-- }

	for _, y := range []uint8{4, 5} {
		indexOps[0x04|y<<3] = func(cpu *Z80, xy *uint16) {
			v, fl := Inc8(cpu.indexReg8(y, xy), cpu.F())
			cpu.setIndexReg8(y, xy, v)
			cpu.SetF(fl)
		}
		indexOps[0x05|y<<3] = func(cpu *Z80, xy *uint16) {
			v, fl := Dec8(cpu.indexReg8(y, xy), cpu.F())
			cpu.setIndexReg8(y, xy, v)
			cpu.SetF(fl)
		}
		indexOps[0x06|y<<3] = func(cpu *Z80, xy *uint16) {
			cpu.setIndexReg8(y, xy, cpu.fetch8())
		}
	}

	indexOps[0x34] = func(cpu *Z80, xy *uint16) {
		addr := cpu.displaced(xy)
		v, fl := Inc8(cpu.read8(addr), cpu.F())
		cpu.write8(addr, v)
		cpu.SetF(fl)
	}
	indexOps[0x35] = func(cpu *Z80, xy *uint16) {
		addr := cpu.displaced(xy)
		v, fl := Dec8(cpu.read8(addr), cpu.F())
		cpu.write8(addr, v)
		cpu.SetF(fl)
	}
	indexOps[0x36] = func(cpu *Z80, xy *uint16) {
		addr := cpu.displaced(xy)
		cpu.write8(addr, cpu.fetch8())
	}

	for y := range uint8(8) {
		for z := range uint8(8) {
			switch {
			case y == 6 && z == 6:
				// HALT has no indexed form.
			case z == 6:
				indexOps[0x40|y<<3|z] = func(cpu *Z80, xy *uint16) {
					cpu.setReg8(y, cpu.read8(cpu.displaced(xy)))
				}
			case y == 6:
				indexOps[0x40|y<<3|z] = func(cpu *Z80, xy *uint16) {
					cpu.write8(cpu.displaced(xy), cpu.reg8(z))
				}
			case y == 4 || y == 5 || z == 4 || z == 5:
				indexOps[0x40|y<<3|z] = func(cpu *Z80, xy *uint16) {
					cpu.setIndexReg8(y, xy, cpu.indexReg8(z, xy))
				}
			}

			switch z {
			case 4, 5:
				indexOps[0x80|y<<3|z] = func(cpu *Z80, xy *uint16) {
					cpu.alu(AluOp(y), cpu.indexReg8(z, xy))
				}
			case 6:
				indexOps[0x80|y<<3|z] = func(cpu *Z80, xy *uint16) {
					cpu.alu(AluOp(y), cpu.read8(cpu.displaced(xy)))
				}
			}
		}
	}

	indexOps[0xcb] = func(cpu *Z80, xy *uint16) {
		addr := cpu.displaced(xy)
		indexBitOps[cpu.fetch8()](cpu, addr)
	}
	indexOps[0xe1] = func(cpu *Z80, xy *uint16) { *xy = cpu.pop() }
	indexOps[0xe5] = func(cpu *Z80, xy *uint16) { cpu.push(*xy) }
	indexOps[0xe9] = func(cpu *Z80, xy *uint16) { cpu.PC = *xy }
	indexOps[0xf9] = func(cpu *Z80, xy *uint16) { cpu.SP = *xy }
	indexOps[0xe3] = func(cpu *Z80, xy *uint16) {
		v := cpu.read16(cpu.SP)
		cpu.write16(cpu.SP, *xy)
		*xy = v
	}
}

// initIndexBitOps builds the DDCB/FDCB map. Rotates, shifts, RES and SET
// also copy the result to the register named by the low three bits,
// unless that is the memory operand.
func initIndexBitOps() {
	for y := range uint8(8) {
		for z := range uint8(8) {
			store := func(cpu *Z80, addr uint16, v uint8) {
				cpu.write8(addr, v)
				if z != 6 {
					cpu.setReg8(z, v)
				}
			}

			indexBitOps[0x00|y<<3|z] = func(cpu *Z80, addr uint16) {
				v, fl := Shift(ShiftOp(y), cpu.read8(addr), cpu.F())
				store(cpu, addr, v)
				cpu.SetF(fl)
			}
			indexBitOps[0x40|y<<3|z] = func(cpu *Z80, addr uint16) {
				cpu.SetF(Bit(y, cpu.read8(addr), uint8(addr>>8), cpu.F()))
			}
			indexBitOps[0x80|y<<3|z] = func(cpu *Z80, addr uint16) {
				store(cpu, addr, cpu.read8(addr)&^(1<<y))
			}
			indexBitOps[0xc0|y<<3|z] = func(cpu *Z80, addr uint16) {
				store(cpu, addr, cpu.read8(addr)|(1<<y))
			}
		}
	}
}

package z80

import (
	"math/bits"
)

// Flags is the flag register.
type Flags uint8

// Flag register bits. X and Y are the undocumented copies of result bits 3
// and 5.
const (
	FLAG_C  = Flags(0x01) // Carry.
	FLAG_N  = Flags(0x02) // Subtract.
	FLAG_PV = Flags(0x04) // Parity or overflow.
	FLAG_X  = Flags(0x08) // Result bit 3.
	FLAG_H  = Flags(0x10) // Half carry.
	FLAG_Y  = Flags(0x20) // Result bit 5.
	FLAG_Z  = Flags(0x40) // Zero.
	FLAG_S  = Flags(0x80) // Sign.
)

// Has returns true if all of the given flags are set.
func (fl Flags) Has(mask Flags) bool {
	return (fl & mask) == mask
}

func (fl Flags) carry() uint8 {
	return uint8(fl & FLAG_C)
}

func flagIf(cond bool, flag Flags) Flags {
	if cond {
		return flag
	}
	return 0
}

// Parity returns true if the byte has an even number of set bits.
func Parity(v uint8) bool {
	return bits.OnesCount8(v)&1 == 0
}

// szxy derives sign, zero and the undocumented bits from a result.
func szxy(r uint8) (fl Flags) {
	fl = Flags(r) & (FLAG_S | FLAG_X | FLAG_Y)
	fl |= flagIf(r == 0, FLAG_Z)
	return
}

func szxyp(r uint8) Flags {
	return szxy(r) | flagIf(Parity(r), FLAG_PV)
}

// AluOp is an 8-bit accumulator operation.
type AluOp uint8

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_ADD = AluOp(0) // add
	ALU_ADC = AluOp(1) // adc
	ALU_SUB = AluOp(2) // sub
	ALU_SBC = AluOp(3) // sbc
	ALU_AND = AluOp(4) // and
	ALU_XOR = AluOp(5) // xor
	ALU_OR  = AluOp(6) // or
	ALU_CP  = AluOp(7) // cp
)

// Add8 adds with carry in.
func Add8(a, b uint8, carry bool) (r uint8, fl Flags) {
	c := uint16(0)
	if carry {
		c = 1
	}

	sum := uint16(a) + uint16(b) + c
	r = uint8(sum)

	fl = szxy(r)
	fl |= flagIf(sum > 0xff, FLAG_C)
	fl |= flagIf((a^b^r)&0x10 != 0, FLAG_H)
	fl |= flagIf((a^r)&(b^r)&0x80 != 0, FLAG_PV)
	return
}

// Sub8 subtracts with borrow in.
func Sub8(a, b uint8, borrow bool) (r uint8, fl Flags) {
	c := 0
	if borrow {
		c = 1
	}

	diff := int(a) - int(b) - c
	r = uint8(diff)

	fl = szxy(r) | FLAG_N
	fl |= flagIf(diff < 0, FLAG_C)
	fl |= flagIf((a^b^r)&0x10 != 0, FLAG_H)
	fl |= flagIf((a^b)&(a^r)&0x80 != 0, FLAG_PV)
	return
}

// Alu performs an accumulator operation, returning the new accumulator and
// flags. Compare leaves the accumulator unchanged, and takes the
// undocumented bits from the operand.
func Alu(op AluOp, a, b uint8, fl Flags) (r uint8, nf Flags) {
	switch op {
	case ALU_ADD:
		r, nf = Add8(a, b, false)
	case ALU_ADC:
		r, nf = Add8(a, b, fl.Has(FLAG_C))
	case ALU_SUB:
		r, nf = Sub8(a, b, false)
	case ALU_SBC:
		r, nf = Sub8(a, b, fl.Has(FLAG_C))
	case ALU_AND:
		r = a & b
		nf = szxyp(r) | FLAG_H
	case ALU_XOR:
		r = a ^ b
		nf = szxyp(r)
	case ALU_OR:
		r = a | b
		nf = szxyp(r)
	case ALU_CP:
		_, nf = Sub8(a, b, false)
		nf = (nf &^ (FLAG_X | FLAG_Y)) | (Flags(b) & (FLAG_X | FLAG_Y))
		r = a
	}
	return
}

// Inc8 increments, preserving carry.
func Inc8(v uint8, fl Flags) (r uint8, nf Flags) {
	r = v + 1
	nf = szxy(r) | (fl & FLAG_C)
	nf |= flagIf(v&0x0f == 0x0f, FLAG_H)
	nf |= flagIf(v == 0x7f, FLAG_PV)
	return
}

// Dec8 decrements, preserving carry.
func Dec8(v uint8, fl Flags) (r uint8, nf Flags) {
	r = v - 1
	nf = szxy(r) | (fl & FLAG_C) | FLAG_N
	nf |= flagIf(v&0x0f == 0x00, FLAG_H)
	nf |= flagIf(v == 0x80, FLAG_PV)
	return
}

// Daa decimal-adjusts the accumulator after an add or subtract. The
// correction depends only on A, H and C; N selects its direction.
func Daa(a uint8, fl Flags) (r uint8, nf Flags) {
	adj := uint8(0)
	sub := fl.Has(FLAG_N)
	lo := a & 0x0f

	if fl.Has(FLAG_H) || lo > 0x09 {
		adj |= 0x06
	}
	if fl.Has(FLAG_C) || a > 0x99 {
		adj |= 0x60
	}

	if sub {
		r = a - adj
		nf = flagIf(fl.Has(FLAG_H) && lo < 0x06, FLAG_H)
	} else {
		r = a + adj
		nf = flagIf(lo > 0x09, FLAG_H)
	}

	nf |= szxyp(r) | (fl & FLAG_N)
	nf |= flagIf(adj >= 0x60, FLAG_C)
	return
}

// Cpl complements the accumulator.
func Cpl(a uint8, fl Flags) (r uint8, nf Flags) {
	r = ^a
	nf = fl&(FLAG_S|FLAG_Z|FLAG_PV|FLAG_C) | FLAG_H | FLAG_N
	nf |= Flags(r) & (FLAG_X | FLAG_Y)
	return
}

// Scf sets the carry flag.
func Scf(a uint8, fl Flags) Flags {
	return fl&(FLAG_S|FLAG_Z|FLAG_PV) | FLAG_C | Flags(a)&(FLAG_X|FLAG_Y)
}

// Ccf complements the carry flag, moving the old carry to half carry.
func Ccf(a uint8, fl Flags) Flags {
	nf := fl&(FLAG_S|FLAG_Z|FLAG_PV) | Flags(a)&(FLAG_X|FLAG_Y)
	nf |= flagIf(fl.Has(FLAG_C), FLAG_H)
	nf |= flagIf(!fl.Has(FLAG_C), FLAG_C)
	return nf
}

// ShiftOp is a rotate or shift operation of the CB map.
type ShiftOp uint8

//go:generate go tool stringer -linecomment -type=ShiftOp
const (
	SHIFT_RLC = ShiftOp(0) // rlc
	SHIFT_RRC = ShiftOp(1) // rrc
	SHIFT_RL  = ShiftOp(2) // rl
	SHIFT_RR  = ShiftOp(3) // rr
	SHIFT_SLA = ShiftOp(4) // sla
	SHIFT_SRA = ShiftOp(5) // sra
	SHIFT_SLL = ShiftOp(6) // sll
	SHIFT_SRL = ShiftOp(7) // srl
)

func shift(op ShiftOp, v uint8, fl Flags) (r uint8, carry bool) {
	switch op {
	case SHIFT_RLC:
		r = bits.RotateLeft8(v, 1)
		carry = v&0x80 != 0
	case SHIFT_RRC:
		r = bits.RotateLeft8(v, -1)
		carry = v&0x01 != 0
	case SHIFT_RL:
		r = v<<1 | fl.carry()
		carry = v&0x80 != 0
	case SHIFT_RR:
		r = v>>1 | fl.carry()<<7
		carry = v&0x01 != 0
	case SHIFT_SLA:
		r = v << 1
		carry = v&0x80 != 0
	case SHIFT_SRA:
		r = v>>1 | v&0x80
		carry = v&0x01 != 0
	case SHIFT_SLL:
		r = v<<1 | 1
		carry = v&0x80 != 0
	case SHIFT_SRL:
		r = v >> 1
		carry = v&0x01 != 0
	}
	return
}

// Shift performs a CB map rotate or shift.
func Shift(op ShiftOp, v uint8, fl Flags) (r uint8, nf Flags) {
	r, carry := shift(op, v, fl)
	nf = szxyp(r) | flagIf(carry, FLAG_C)
	return
}

// Rota performs one of the accumulator rotates (RLCA, RRCA, RLA, RRA),
// which preserve sign, zero and parity.
func Rota(op ShiftOp, a uint8, fl Flags) (r uint8, nf Flags) {
	r, carry := shift(op, a, fl)
	nf = fl&(FLAG_S|FLAG_Z|FLAG_PV) | Flags(r)&(FLAG_X|FLAG_Y)
	nf |= flagIf(carry, FLAG_C)
	return
}

// Bit tests bit n of v. xy supplies the undocumented bits 3 and 5.
func Bit(n uint8, v uint8, xy uint8, fl Flags) (nf Flags) {
	set := v&(1<<(n&7)) != 0

	nf = fl&FLAG_C | FLAG_H | Flags(xy)&(FLAG_X|FLAG_Y)
	nf |= flagIf(!set, FLAG_Z|FLAG_PV)
	nf |= flagIf(set && n&7 == 7, FLAG_S)
	return
}

// Add16 adds two 16-bit values, preserving sign, zero and parity.
func Add16(a, b uint16, fl Flags) (r uint16, nf Flags) {
	sum := uint32(a) + uint32(b)
	r = uint16(sum)

	nf = fl&(FLAG_S|FLAG_Z|FLAG_PV) | Flags(r>>8)&(FLAG_X|FLAG_Y)
	nf |= flagIf(sum > 0xffff, FLAG_C)
	nf |= flagIf((a^b^r)&0x1000 != 0, FLAG_H)
	return
}

// Adc16 adds two 16-bit values with carry in.
func Adc16(a, b uint16, fl Flags) (r uint16, nf Flags) {
	sum := uint32(a) + uint32(b) + uint32(fl.carry())
	r = uint16(sum)

	nf = Flags(r>>8) & (FLAG_S | FLAG_X | FLAG_Y)
	nf |= flagIf(r == 0, FLAG_Z)
	nf |= flagIf(sum > 0xffff, FLAG_C)
	nf |= flagIf((a^b^r)&0x1000 != 0, FLAG_H)
	nf |= flagIf((a^r)&(b^r)&0x8000 != 0, FLAG_PV)
	return
}

// Sbc16 subtracts two 16-bit values with borrow in.
func Sbc16(a, b uint16, fl Flags) (r uint16, nf Flags) {
	diff := int32(a) - int32(b) - int32(fl.carry())
	r = uint16(diff)

	nf = Flags(r>>8)&(FLAG_S|FLAG_X|FLAG_Y) | FLAG_N
	nf |= flagIf(r == 0, FLAG_Z)
	nf |= flagIf(diff < 0, FLAG_C)
	nf |= flagIf((a^b^r)&0x1000 != 0, FLAG_H)
	nf |= flagIf((a^b)&(a^r)&0x8000 != 0, FLAG_PV)
	return
}

// Ld derives the flags of a block transfer step. v is the byte moved, bc
// the counter after the step.
func Ld(a uint8, v uint8, bc uint16, fl Flags) (nf Flags) {
	n := a + v

	nf = fl & (FLAG_S | FLAG_Z | FLAG_C)
	nf |= flagIf(bc != 0, FLAG_PV)
	nf |= flagIf(n&0x08 != 0, FLAG_X)
	nf |= flagIf(n&0x02 != 0, FLAG_Y)
	return
}

// Cp derives the flags of a block compare step. v is the byte compared, bc
// the counter after the step.
func Cp(a uint8, v uint8, bc uint16, fl Flags) (nf Flags) {
	r := a - v
	half := (a^v^r)&0x10 != 0

	n := r
	if half {
		n--
	}

	nf = fl&FLAG_C | FLAG_N | Flags(r)&FLAG_S
	nf |= flagIf(r == 0, FLAG_Z)
	nf |= flagIf(half, FLAG_H)
	nf |= flagIf(bc != 0, FLAG_PV)
	nf |= flagIf(n&0x08 != 0, FLAG_X)
	nf |= flagIf(n&0x02 != 0, FLAG_Y)
	return
}

// Io derives the flags of a block input or output step. v is the byte
// transferred, b the counter after the step, and k the sum of v and the
// low byte of the address register involved.
func Io(v uint8, b uint8, k uint16) (nf Flags) {
	nf = szxy(b)
	nf |= flagIf(v&0x80 != 0, FLAG_N)
	nf |= flagIf(k > 0xff, FLAG_H|FLAG_C)
	nf |= flagIf(Parity(uint8(k)&0x07^b), FLAG_PV)
	return
}

// In derives the flags of IN r,(C), preserving carry.
func In(v uint8, fl Flags) Flags {
	return szxyp(v) | fl&FLAG_C
}

// LdAir derives the flags of LD A,I and LD A,R.
func LdAir(v uint8, iff2 bool, fl Flags) Flags {
	return szxy(v) | fl&FLAG_C | flagIf(iff2, FLAG_PV)
}

package ppc

// Instruction is an instruction word, with field accessors.
type Instruction uint32

func (in Instruction) Opcode() uint32 { return uint32(in) >> 26 }
func (in Instruction) RD() uint32     { return (uint32(in) >> 21) & 31 }
func (in Instruction) RA() uint32     { return (uint32(in) >> 16) & 31 }
func (in Instruction) RB() uint32     { return (uint32(in) >> 11) & 31 }
func (in Instruction) RC() uint32     { return (uint32(in) >> 6) & 31 }
func (in Instruction) MB() uint32     { return (uint32(in) >> 6) & 31 }
func (in Instruction) ME() uint32     { return (uint32(in) >> 1) & 31 }
func (in Instruction) XO() uint32     { return (uint32(in) >> 1) & 0x3ff }
func (in Instruction) UIMM() uint32   { return uint32(in) & 0xffff }
func (in Instruction) SIMM() int32    { return int32(int16(in)) }
func (in Instruction) Rc() bool       { return in&1 != 0 }
func (in Instruction) LK() bool       { return in&1 != 0 }
func (in Instruction) AA() bool       { return in&2 != 0 }
func (in Instruction) OE() bool       { return in&0x400 != 0 }
func (in Instruction) CRFD() uint32   { return (uint32(in) >> 23) & 7 }
func (in Instruction) CRFS() uint32   { return (uint32(in) >> 18) & 7 }
func (in Instruction) CRM() uint32    { return (uint32(in) >> 12) & 0xff }
func (in Instruction) FM() uint32     { return (uint32(in) >> 17) & 0xff }

// BD is the sign extended conditional branch displacement.
func (in Instruction) BD() int32 {
	return int32(int16(in & 0xfffc))
}

// LI is the sign extended branch displacement.
func (in Instruction) LI() int32 {
	return int32(uint32(in)<<6) >> 6 &^ 3
}

// SPR is the special purpose register number, with the halves swapped back.
func (in Instruction) SPR() uint32 {
	return (uint32(in)>>16)&0x1f | (uint32(in)>>6)&0x3e0
}

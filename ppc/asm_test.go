package ppc

// Instruction encoders for test programs.

func dForm(op, rd, ra uint32, imm int32) uint32 {
	return op<<26 | rd<<21 | ra<<16 | uint32(imm)&0xffff
}

func xForm(op, rd, ra, rb, xo uint32) uint32 {
	return op<<26 | rd<<21 | ra<<16 | rb<<11 | xo<<1
}

const (
	opNOP = uint32(0x60000000) // ori r0,r0,0
	opRC  = uint32(1)          // Record bit.
	opOE  = uint32(0x400)      // Overflow enable bit.
)

func asmAddi(rd, ra uint32, imm int32) uint32  { return dForm(14, rd, ra, imm) }
func asmAddis(rd, ra uint32, imm int32) uint32 { return dForm(15, rd, ra, imm) }
func asmOri(ra, rs uint32, imm uint32) uint32  { return dForm(24, rs, ra, int32(imm)) }
func asmCmpwi(crf, ra uint32, imm int32) uint32 {
	return dForm(11, crf<<2, ra, imm)
}
func asmTwi(to, ra uint32, imm int32) uint32 { return dForm(3, to, ra, imm) }
func asmLwz(rd, ra uint32, d int32) uint32   { return dForm(32, rd, ra, d) }
func asmLwzu(rd, ra uint32, d int32) uint32  { return dForm(33, rd, ra, d) }
func asmLbz(rd, ra uint32, d int32) uint32   { return dForm(34, rd, ra, d) }
func asmStw(rs, ra uint32, d int32) uint32   { return dForm(36, rs, ra, d) }
func asmStwu(rs, ra uint32, d int32) uint32  { return dForm(37, rs, ra, d) }
func asmLha(rd, ra uint32, d int32) uint32   { return dForm(42, rd, ra, d) }
func asmLmw(rd, ra uint32, d int32) uint32   { return dForm(46, rd, ra, d) }
func asmStmw(rs, ra uint32, d int32) uint32  { return dForm(47, rs, ra, d) }
func asmLfd(frd, ra uint32, d int32) uint32  { return dForm(50, frd, ra, d) }
func asmStfd(frs, ra uint32, d int32) uint32 { return dForm(54, frs, ra, d) }
func asmStfs(frs, ra uint32, d int32) uint32 { return dForm(52, frs, ra, d) }
func asmAdd(rd, ra, rb uint32) uint32        { return xForm(31, rd, ra, rb, 266) }
func asmAddc(rd, ra, rb uint32) uint32       { return xForm(31, rd, ra, rb, 10) }
func asmAdde(rd, ra, rb uint32) uint32       { return xForm(31, rd, ra, rb, 138) }
func asmDivw(rd, ra, rb uint32) uint32       { return xForm(31, rd, ra, rb, 491) }
func asmMullw(rd, ra, rb uint32) uint32      { return xForm(31, rd, ra, rb, 235) }
func asmSubf(rd, ra, rb uint32) uint32       { return xForm(31, rd, ra, rb, 40) }
func asmNeg(rd, ra uint32) uint32            { return xForm(31, rd, ra, 0, 104) }
func asmSrawi(ra, rs, sh uint32) uint32      { return xForm(31, rs, ra, sh, 824) }
func asmLwbrx(rd, ra, rb uint32) uint32      { return xForm(31, rd, ra, rb, 534) }
func asmLwarx(rd, ra, rb uint32) uint32      { return xForm(31, rd, ra, rb, 20) }
func asmStwcx(rs, ra, rb uint32) uint32      { return xForm(31, rs, ra, rb, 150) | opRC }
func asmDcbz(ra, rb uint32) uint32           { return xForm(31, 0, ra, rb, 1014) }
func asmTw(to, ra, rb uint32) uint32         { return xForm(31, to, ra, rb, 4) }
func asmMtmsr(rs uint32) uint32              { return xForm(31, rs, 0, 0, 146) }
func asmMfcr(rd uint32) uint32               { return xForm(31, rd, 0, 0, 19) }
func asmLswi(rd, ra, nb uint32) uint32       { return xForm(31, rd, ra, nb, 597) }
func asmMtspr(spr, rs uint32) uint32         { return xForm(31, rs, spr&0x1f, spr>>5, 467) }
func asmMfspr(rd, spr uint32) uint32         { return xForm(31, rd, spr&0x1f, spr>>5, 339) }
func asmMftb(rd, tbr uint32) uint32          { return xForm(31, rd, tbr&0x1f, tbr>>5, 371) }
func asmFadd(frd, fra, frb uint32) uint32    { return xForm(63, frd, fra, frb, 21) }
func asmFmul(frd, fra, frc uint32) uint32    { return 63<<26 | frd<<21 | fra<<16 | frc<<6 | 25<<1 }
func asmFmadds(frd, fra, frc, frb uint32) uint32 {
	return 59<<26 | frd<<21 | fra<<16 | frb<<11 | frc<<6 | 29<<1
}
func asmFctiwz(frd, frb uint32) uint32     { return xForm(63, frd, 0, frb, 15) }
func asmFcmpu(crf, fra, frb uint32) uint32 { return xForm(63, crf<<2, fra, frb, 0) }
func asmFneg(frd, frb uint32) uint32       { return xForm(63, frd, 0, frb, 40) }
func asmSc() uint32                        { return 17<<26 | 2 }
func asmRfi() uint32                       { return xForm(19, 0, 0, 0, 50) }
func asmRlwinm(ra, rs, sh, mb, me uint32) uint32 {
	return 21<<26 | rs<<21 | ra<<16 | sh<<11 | mb<<6 | me<<1
}
func asmB(disp int32) uint32                 { return 18<<26 | uint32(disp)&0x03fffffc }
func asmBl(disp int32) uint32                { return asmB(disp) | 1 }
func asmBc(bo, bi uint32, disp int32) uint32 { return 16<<26 | bo<<21 | bi<<16 | uint32(disp)&0xfffc }
func asmBclr(bo, bi uint32) uint32           { return xForm(19, bo, bi, 0, 16) }
func asmBcctr(bo, bi uint32) uint32          { return xForm(19, bo, bi, 0, 528) }

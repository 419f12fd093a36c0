// Package z80 implements the 8-bit processor core used as the sound CPU of
// the board.
//
// The register context carries two copies of AF and two copies of BC, DE
// and HL, each selected by its own bank bit, so the exchange instructions
// are constant time and touch nothing else. Instruction decode is table
// driven: one 256-entry table per opcode map (base, CB, ED, the DD/FD index
// map, and the DDCB/FDCB bit map).
//
// Byte order: the core composes every 16-bit operand, stack word and
// interrupt vector itself from two Read8 accesses, low byte first. The wide
// Bus accessors are never used, so the core is independent of the byte
// order of the map it runs on.
//
// Undefined opcodes never fault. An index prefix (DD or FD) followed by an
// opcode with no indexed form backs the PC up over that opcode, so the
// prefix acts as a no-op and the opcode executes unprefixed on the next
// step. An undefined ED opcode is a two-byte no-op. Both are counted in the
// core statistics.
package z80

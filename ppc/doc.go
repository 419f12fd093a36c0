// Package ppc implements the 32-bit processor core used as the main CPU of
// the board, a PowerPC 603e class interpreter.
//
// Byte order: instruction fetch and every load and store use the wide Bus
// accessors, and the core relies on the bus map being big-endian. The
// byte-reversed loads and stores swap in the core.
//
// Decode is table driven: a 64-entry primary map, and 1024-entry extended
// maps for primary opcodes 19, 31, 59 and 63, indexed by the extended
// opcode field. An opcode with no entry is treated as a no-op, the PC
// advances past it, and it is counted in the core statistics.
//
// The interrupt lines map to exceptions: TriggerNMI latches a system reset
// (non-maskable), SetLevelInterrupt drives the external interrupt, gated by
// MSR[EE]. The decrementer raises its own exception when it underflows.
package ppc

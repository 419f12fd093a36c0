// Package bus implements the memory-mapped access surface shared by the
// processor cores of a board.
//
// A core holds a non-owning Bus reference and presents every access to it
// already masked to the core's native address width. Address decoding,
// wrap-around and device side effects belong to the Bus implementation.
//
// Map is the stock implementation: an address-decoded set of regions backed
// by Device values (plain Memory, or memory-mapped peripherals), plus an
// optional port space for architectures with separate I/O instructions.
// Byte order for the wide accessors is an explicit property of each Map.
package bus

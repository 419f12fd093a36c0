package bus

// Bus is the fixed-width read/write surface a core executes against.
type Bus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Read64(addr uint32) uint64
	Write8(addr uint32, data uint8)
	Write16(addr uint32, data uint16)
	Write32(addr uint32, data uint32)
	Write64(addr uint32, data uint64)
}

// IO is an optional port space, discovered on a Bus by type assertion.
type IO interface {
	IORead8(port uint32) uint8
	IOWrite8(port uint32, data uint8)
}

// Device is a byte-addressed peripheral or memory, accessed at an offset
// relative to the base it is attached at.
type Device interface {
	Read8(offset uint32) uint8
	Write8(offset uint32, data uint8)
}

// Memory is a RAM or ROM backing store.
type Memory struct {
	Data     []byte // Backing store.
	ReadOnly bool   // If set, writes are ignored.
}

var _ Device = (*Memory)(nil)

// NewMemory creates a zeroed memory of the given size.
func NewMemory(size uint32, readOnly bool) (mem *Memory) {
	mem = &Memory{
		Data:     make([]byte, size),
		ReadOnly: readOnly,
	}

	return
}

// Read8 reads a byte, returning 0xff past the end of the backing store.
func (mem *Memory) Read8(offset uint32) uint8 {
	if uint64(offset) >= uint64(len(mem.Data)) {
		return 0xff
	}
	return mem.Data[offset]
}

// Write8 writes a byte, unless the memory is read-only.
func (mem *Memory) Write8(offset uint32, data uint8) {
	if mem.ReadOnly || uint64(offset) >= uint64(len(mem.Data)) {
		return
	}
	mem.Data[offset] = data
}

// DeviceFunc adapts a pair of functions to a Device.
type DeviceFunc struct {
	OnRead  func(offset uint32) uint8
	OnWrite func(offset uint32, data uint8)
}

var _ Device = (*DeviceFunc)(nil)

func (df *DeviceFunc) Read8(offset uint32) uint8 {
	if df.OnRead == nil {
		return 0xff
	}
	return df.OnRead(offset)
}

func (df *DeviceFunc) Write8(offset uint32, data uint8) {
	if df.OnWrite != nil {
		df.OnWrite(offset, data)
	}
}

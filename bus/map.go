package bus

import (
	"cmp"
	"encoding/binary"
	"iter"
	"slices"
)

// Region is a device attached to a range of a Map.
type Region struct {
	Name   string // Name, for diagnostics.
	Base   uint32 // First address decoded by the region.
	Size   uint32 // Number of addresses decoded by the region.
	Device Device // Device accessed at (address - Base).
}

// Contains returns true if the address is decoded by the region.
func (r *Region) Contains(addr uint32) bool {
	return addr >= r.Base && addr-r.Base < r.Size
}

func (r *Region) end() uint64 {
	return uint64(r.Base) + uint64(r.Size)
}

// Map is an address-decoded Bus, with an optional port space.
// Accesses to undecoded addresses read as OpenBus and are counted in Misses.
type Map struct {
	Name    string           // Name, for diagnostics.
	Width   uint             // Address width, in bits (1..32).
	Order   binary.ByteOrder // Byte order of the wide accessors.
	OpenBus uint8            // Value read from undecoded addresses.
	Misses  int              // Count of undecoded accesses.

	// PortMask, if non-zero, masks port numbers before decode. Many boards
	// decode only the low bits of a port.
	PortMask uint32

	regions []*Region
	ports   []*Region
	last    *Region
}

var _ Bus = (*Map)(nil)
var _ IO = (*Map)(nil)

// NewMap creates an empty map with the given address width and byte order.
func NewMap(name string, width uint, order binary.ByteOrder) (m *Map) {
	m = &Map{
		Name:    name,
		Width:   width,
		Order:   order,
		OpenBus: 0xff,
	}

	return
}

// Mask returns the address mask for the map's address width.
func (m *Map) Mask() uint32 {
	if m.Width >= 32 {
		return 0xffffffff
	}
	return uint32(1)<<m.Width - 1
}

func (m *Map) insert(list []*Region, r *Region, limit uint64) (out []*Region, err error) {
	defer func() {
		if err != nil {
			err = &ErrRegion{Map: m.Name, Name: r.Name, Err: err}
		}
	}()

	if m.Width == 0 || m.Width > 32 {
		err = ErrZeroWidth
		return
	}

	if r.Device == nil {
		err = ErrNoDevice
		return
	}

	if r.Size == 0 || r.end() > limit {
		err = ErrRange
		return
	}

	for _, other := range list {
		if uint64(r.Base) < other.end() && uint64(other.Base) < r.end() {
			err = ErrOverlap
			return
		}
	}

	index, _ := slices.BinarySearchFunc(list, r.Base, func(e *Region, base uint32) int {
		return cmp.Compare(e.Base, base)
	})
	out = slices.Insert(list, index, r)

	return
}

// Attach a device to the memory space.
func (m *Map) Attach(name string, base uint32, size uint32, dev Device) (err error) {
	r := &Region{Name: name, Base: base, Size: size, Device: dev}
	regions, err := m.insert(m.regions, r, uint64(m.Mask())+1)
	if err != nil {
		return
	}

	m.regions = regions
	m.last = nil

	return
}

// AttachPort attaches a device to the port space.
func (m *Map) AttachPort(name string, base uint32, size uint32, dev Device) (err error) {
	r := &Region{Name: name, Base: base, Size: size, Device: dev}
	ports, err := m.insert(m.ports, r, 1<<32)
	if err != nil {
		return
	}

	m.ports = ports

	return
}

// Regions returns the memory space regions, in address order.
func (m *Map) Regions() iter.Seq[*Region] {
	return slices.Values(m.regions)
}

// Ports returns the port space regions, in port order.
func (m *Map) Ports() iter.Seq[*Region] {
	return slices.Values(m.ports)
}

func find(list []*Region, addr uint32) *Region {
	index, found := slices.BinarySearchFunc(list, addr, func(e *Region, addr uint32) int {
		return cmp.Compare(e.Base, addr)
	})
	if found {
		return list[index]
	}
	if index > 0 && list[index-1].Contains(addr) {
		return list[index-1]
	}
	return nil
}

func (m *Map) lookup(addr uint32) (r *Region) {
	if m.last != nil && m.last.Contains(addr) {
		return m.last
	}

	r = find(m.regions, addr)
	if r != nil {
		m.last = r
	}

	return
}

// Read8 reads a byte from the memory space.
func (m *Map) Read8(addr uint32) uint8 {
	addr &= m.Mask()
	r := m.lookup(addr)
	if r == nil {
		m.Misses++
		return m.OpenBus
	}
	return r.Device.Read8(addr - r.Base)
}

// Write8 writes a byte to the memory space.
func (m *Map) Write8(addr uint32, data uint8) {
	addr &= m.Mask()
	r := m.lookup(addr)
	if r == nil {
		m.Misses++
		return
	}
	r.Device.Write8(addr-r.Base, data)
}

// memory returns the backing store for [addr, addr+size) when it lies
// entirely within a single Memory region.
func (m *Map) memory(addr uint32, size int) (data []byte, mem *Memory) {
	r := m.lookup(addr)
	if r == nil {
		return
	}

	mem, ok := r.Device.(*Memory)
	if !ok {
		return
	}

	off := uint64(addr - r.Base)
	end := off + uint64(size)
	if end > uint64(r.Size) || end > uint64(len(mem.Data)) {
		mem = nil
		return
	}

	data = mem.Data[off:end]
	return
}

func (m *Map) read(addr uint32, buf []byte) {
	addr &= m.Mask()
	if data, _ := m.memory(addr, len(buf)); data != nil {
		copy(buf, data)
		return
	}

	for n := range buf {
		buf[n] = m.Read8(addr + uint32(n))
	}
}

func (m *Map) write(addr uint32, buf []byte) {
	addr &= m.Mask()
	if data, mem := m.memory(addr, len(buf)); data != nil {
		if !mem.ReadOnly {
			copy(data, buf)
		}
		return
	}

	for n, b := range buf {
		m.Write8(addr+uint32(n), b)
	}
}

// Read16 reads a 16-bit value in the map's byte order.
func (m *Map) Read16(addr uint32) uint16 {
	var buf [2]byte
	m.read(addr, buf[:])
	return m.Order.Uint16(buf[:])
}

// Read32 reads a 32-bit value in the map's byte order.
func (m *Map) Read32(addr uint32) uint32 {
	var buf [4]byte
	m.read(addr, buf[:])
	return m.Order.Uint32(buf[:])
}

// Read64 reads a 64-bit value in the map's byte order.
func (m *Map) Read64(addr uint32) uint64 {
	var buf [8]byte
	m.read(addr, buf[:])
	return m.Order.Uint64(buf[:])
}

// Write16 writes a 16-bit value in the map's byte order.
func (m *Map) Write16(addr uint32, data uint16) {
	var buf [2]byte
	m.Order.PutUint16(buf[:], data)
	m.write(addr, buf[:])
}

// Write32 writes a 32-bit value in the map's byte order.
func (m *Map) Write32(addr uint32, data uint32) {
	var buf [4]byte
	m.Order.PutUint32(buf[:], data)
	m.write(addr, buf[:])
}

// Write64 writes a 64-bit value in the map's byte order.
func (m *Map) Write64(addr uint32, data uint64) {
	var buf [8]byte
	m.Order.PutUint64(buf[:], data)
	m.write(addr, buf[:])
}

func (m *Map) port(port uint32) uint32 {
	if m.PortMask != 0 {
		port &= m.PortMask
	}
	return port
}

// IORead8 reads a byte from the port space.
func (m *Map) IORead8(port uint32) uint8 {
	port = m.port(port)
	r := find(m.ports, port)
	if r == nil {
		m.Misses++
		return m.OpenBus
	}
	return r.Device.Read8(port - r.Base)
}

// IOWrite8 writes a byte to the port space.
func (m *Map) IOWrite8(port uint32, data uint8) {
	port = m.port(port)
	r := find(m.ports, port)
	if r == nil {
		m.Misses++
		return
	}
	r.Device.Write8(port-r.Base, data)
}

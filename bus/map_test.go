package bus

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAttach(t *testing.T) {
	assert := assert.New(t)

	m := NewMap("test", 16, binary.LittleEndian)

	assert.NoError(m.Attach("rom", 0x0000, 0x4000, NewMemory(0x4000, true)))
	assert.NoError(m.Attach("ram", 0x8000, 0x8000, NewMemory(0x8000, false)))

	table := [](struct {
		name string
		base uint32
		size uint32
		dev  Device
		err  error
	}){
		{"overlap-low", 0x3fff, 2, NewMemory(2, false), ErrOverlap},
		{"overlap-high", 0x7fff, 2, NewMemory(2, false), ErrOverlap},
		{"inside", 0x9000, 0x10, NewMemory(0x10, false), ErrOverlap},
		{"beyond", 0x4000, 0x10000, NewMemory(0x10, false), ErrRange},
		{"empty", 0x4000, 0, NewMemory(0x10, false), ErrRange},
		{"nodev", 0x4000, 0x10, nil, ErrNoDevice},
		{"gap", 0x4000, 0x4000, NewMemory(0x4000, false), nil},
	}

	for _, entry := range table {
		err := m.Attach(entry.name, entry.base, entry.size, entry.dev)
		if entry.err == nil {
			assert.NoError(err, entry.name)
			continue
		}
		assert.ErrorIs(err, entry.err, entry.name)
		var rerr *ErrRegion
		if assert.ErrorAs(err, &rerr, entry.name) {
			assert.Equal(entry.name, rerr.Name)
		}
	}

	var names []string
	for r := range m.Regions() {
		names = append(names, r.Name)
	}
	assert.Equal([]string{"rom", "gap", "ram"}, names)
}

func TestMapReadWrite(t *testing.T) {
	assert := assert.New(t)

	rom := &Memory{Data: []byte{0x11, 0x22, 0x33, 0x44}, ReadOnly: true}
	ram := NewMemory(0x100, false)

	m := NewMap("test", 16, binary.LittleEndian)
	assert.NoError(m.Attach("rom", 0x0000, 4, rom))
	assert.NoError(m.Attach("ram", 0xff00, 0x100, ram))

	assert.Equal(uint8(0x22), m.Read8(0x0001))
	assert.Equal(uint16(0x2211), m.Read16(0x0000))
	assert.Equal(uint32(0x44332211), m.Read32(0x0000))

	// Writes to ROM are ignored.
	m.Write8(0x0000, 0xaa)
	m.Write16(0x0002, 0xbbcc)
	assert.Equal([]byte{0x11, 0x22, 0x33, 0x44}, rom.Data)

	// Addresses are masked to the map width.
	m.Write8(0x1ff10, 0x5a)
	assert.Equal(uint8(0x5a), ram.Data[0x10])

	// Wide accesses wrap around the address space.
	m.Write16(0xffff, 0x6655)
	assert.Equal(uint8(0x55), ram.Data[0xff])
	assert.Equal(uint8(0x11), rom.Data[0])
	assert.Equal(uint16(0x1155), m.Read16(0xffff))

	// Undecoded accesses read open bus and are counted.
	assert.Equal(0, m.Misses)
	assert.Equal(uint8(0xff), m.Read8(0x8000))
	m.Write8(0x8000, 0)
	assert.Equal(2, m.Misses)

	m.Write64(0xff20, 0x0807060504030201)
	assert.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8}, ram.Data[0x20:0x28])
	assert.Equal(uint64(0x0807060504030201), m.Read64(0xff20))
}

func TestMapByteOrder(t *testing.T) {
	assert := assert.New(t)

	m := NewMap("test", 32, binary.BigEndian)
	ram := NewMemory(0x100, false)
	assert.NoError(m.Attach("ram", 0xfff00000, 0x100, ram))

	m.Write32(0xfff00010, 0x01020304)
	assert.Equal([]byte{1, 2, 3, 4}, ram.Data[0x10:0x14])
	assert.Equal(uint16(0x0304), m.Read16(0xfff00012))

	// A wide access straddling a device boundary is composed from bytes.
	var trace []uint32
	dev := &DeviceFunc{
		OnRead: func(offset uint32) uint8 {
			trace = append(trace, offset)
			return uint8(0xa0 + offset)
		},
	}
	assert.NoError(m.Attach("dev", 0xfff00100, 0x10, dev))
	assert.Equal(uint32(0x0000a0a1), m.Read32(0xfff000fe))
	assert.Equal([]uint32{0, 1}, trace)
}

func TestMapPorts(t *testing.T) {
	assert := assert.New(t)

	m := NewMap("test", 16, binary.LittleEndian)

	var wrote []uint8
	dev := &DeviceFunc{
		OnRead:  func(offset uint32) uint8 { return uint8(offset) | 0x40 },
		OnWrite: func(offset uint32, data uint8) { wrote = append(wrote, uint8(offset), data) },
	}
	assert.NoError(m.AttachPort("latch", 0xf0, 2, dev))
	assert.ErrorIs(m.AttachPort("dup", 0xf1, 1, dev), ErrOverlap)

	assert.Equal(uint8(0x40), m.IORead8(0xf0))
	assert.Equal(uint8(0x41), m.IORead8(0xf1))
	assert.Equal(uint8(0xff), m.IORead8(0xf2))
	m.IOWrite8(0xf1, 0x99)
	assert.Equal([]uint8{1, 0x99}, wrote)

	// Port and memory spaces are independent.
	assert.Equal(uint8(0xff), m.Read8(0xf0))

	assert.Equal(uint8(0xff), m.IORead8(0x12f0))
	m.PortMask = 0xff
	assert.Equal(uint8(0x40), m.IORead8(0x12f0))
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(2, false)
	mem.Write8(1, 0x12)
	mem.Write8(2, 0x34)
	assert.Equal(uint8(0x12), mem.Read8(1))
	assert.Equal(uint8(0xff), mem.Read8(2))

	mem.ReadOnly = true
	mem.Write8(1, 0x56)
	assert.Equal(uint8(0x12), mem.Read8(1))
}

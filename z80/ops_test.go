package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/arcade/bus"
)

func TestProgramBlockCall(t *testing.T) {
	assert := assert.New(t)

	cpu, tb := newTestZ80(nil,
		0x31, 0x00, 0x90, // LD SP,0x9000
		0x21, 0x00, 0x10, // LD HL,0x1000
		0x11, 0x00, 0x20, // LD DE,0x2000
		0x01, 0x04, 0x00, // LD BC,4
		0xed, 0xb0, // LDIR
		0xcd, 0x20, 0x00, // CALL 0x0020
		0x76, // HALT
	)
	copy(tb.mem[0x0020:], []byte{
		0x3a, 0x03, 0x20, // LD A,(0x2003)
		0xc6, 0x01, // ADD A,1
		0xc9, // RET
	})
	copy(tb.mem[0x1000:], []byte{1, 2, 3, 4})

	assert.Equal(uint32(13), cpu.Run(100))
	assert.True(cpu.Halted)
	assert.Equal(uint16(0x0011), cpu.PC)
	assert.Equal(uint8(5), cpu.A())
	assert.Equal([]byte{1, 2, 3, 4}, tb.mem[0x2000:0x2004])
	assert.Equal(uint16(0x0000), cpu.BC())
	assert.Equal(uint16(0x1004), cpu.HL())
	assert.Equal(uint16(0x2004), cpu.DE())
	assert.Equal(uint16(0x9000), cpu.SP)
	assert.False(cpu.F().Has(FLAG_PV))
}

func TestProgramIndexed(t *testing.T) {
	assert := assert.New(t)

	cpu, tb := newTestZ80(nil,
		0xdd, 0x21, 0x00, 0x30, // LD IX,0x3000
		0xdd, 0x36, 0x05, 0x7f, // LD (IX+5),0x7F
		0xdd, 0x34, 0x05, // INC (IX+5)
		0xdd, 0x7e, 0x05, // LD A,(IX+5)
		0xfd, 0x21, 0x10, 0x30, // LD IY,0x3010
		0xfd, 0xcb, 0xf5, 0x06, // RLC (IY-11)
		0xfd, 0xcb, 0xf5, 0xc0, // SET 0,(IY-11),B
		0xdd, 0x26, 0x12, // LD IXH,0x12
		0xdd, 0x7c, // LD A,IXH
	)

	assert.Equal(uint32(4), cpu.Run(4))
	assert.Equal(uint8(0x80), tb.mem[0x3005])
	assert.Equal(uint8(0x80), cpu.A())
	assert.True(cpu.F().Has(FLAG_S | FLAG_H | FLAG_PV))

	assert.Equal(uint32(2), cpu.Run(2))
	assert.Equal(uint8(0x01), tb.mem[0x3005])
	assert.True(cpu.F().Has(FLAG_C))

	assert.Equal(uint32(1), cpu.Run(1))
	assert.Equal(uint8(0x01), tb.mem[0x3005])
	assert.Equal(uint8(0x01), cpu.B())

	assert.Equal(uint32(2), cpu.Run(2))
	assert.Equal(uint16(0x1200), cpu.IX)
	assert.Equal(uint8(0x12), cpu.A())
}

func TestProgramPorts(t *testing.T) {
	assert := assert.New(t)

	cpu, tb := newTestZ80(nil,
		0x3e, 0x12, // LD A,0x12
		0xd3, 0x34, // OUT (0x34),A
		0x01, 0x78, 0x56, // LD BC,0x5678
		0xed, 0x78, // IN A,(C)
		0xed, 0x41, // OUT (C),B
	)
	tb.port[0x5678] = 0x80

	assert.Equal(uint32(5), cpu.Run(5))
	assert.Equal(uint8(0x12), tb.port[0x1234])
	assert.Equal(uint8(0x80), cpu.A())
	assert.True(cpu.F().Has(FLAG_S))
	assert.Equal(uint8(0x56), tb.port[0x5678])
	assert.Equal([]uint16{0x1234, 0x5678}, tb.wrote)

	// Without a port space, input reads open bus and output is dropped.
	tb = &testBus{}
	copy(tb.mem[:], []byte{0xdb, 0x00, 0xd3, 0x00})
	cpu = NewZ80()
	cpu.Init(struct{ bus.Bus }{tb}, nil)
	cpu.Reset()
	assert.Equal(uint32(2), cpu.Run(2))
	assert.Equal(uint8(0xff), cpu.A())
	assert.Empty(tb.wrote)
}

func TestProgramArithmetic(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestZ80(nil,
		0x3e, 0x15, // LD A,0x15
		0xc6, 0x27, // ADD A,0x27
		0x27,             // DAA
		0x21, 0xff, 0x7f, // LD HL,0x7FFF
		0x11, 0x01, 0x00, // LD DE,1
		0xb7,       // OR A
		0xed, 0x5a, // ADC HL,DE
		0xed, 0x44, // NEG
		0xed, 0x5e, // IM 2
	)

	assert.Equal(uint32(3), cpu.Run(3))
	assert.Equal(uint8(0x42), cpu.A())

	assert.Equal(uint32(4), cpu.Run(4))
	assert.Equal(uint16(0x8000), cpu.HL())
	assert.True(cpu.F().Has(FLAG_PV | FLAG_S))

	assert.Equal(uint32(2), cpu.Run(2))
	assert.Equal(uint8(0xbe), cpu.A())
	assert.True(cpu.F().Has(FLAG_N | FLAG_C))
	assert.Equal(IM_2, cpu.IM)
}

func TestProgramStack(t *testing.T) {
	assert := assert.New(t)

	cpu, tb := newTestZ80(nil,
		0x01, 0x34, 0x12, // LD BC,0x1234
		0xc5,             // PUSH BC
		0xf1,             // POP AF
		0xe5,             // PUSH HL
		0x21, 0xcd, 0xab, // LD HL,0xABCD
		0xe3, // EX (SP),HL
		0xc7, // RST 00h
	)

	assert.Equal(uint32(6), cpu.Run(6))
	assert.Equal(uint16(0x1234), cpu.AFReg())
	assert.Equal(uint16(0x0000), cpu.HL())
	assert.Equal([]byte{0xcd, 0xab}, tb.mem[0xeffe:0xf000])

	assert.Equal(uint32(1), cpu.Run(1))
	assert.Equal(uint16(0x0000), cpu.PC)
	assert.Equal(uint16(0xeffc), cpu.SP)
	assert.Equal([]byte{0x0b, 0x00}, tb.mem[0xeffc:0xeffe])
}

func FuzzZ80(f *testing.F) {
	f.Add([]byte{0x00}, uint8(0))
	f.Add([]byte{0xdd, 0xcb, 0x01, 0x06}, uint8(1))
	f.Add([]byte{0xed, 0xb0, 0xed, 0xb8}, uint8(2))
	f.Add([]byte{0xfd, 0xdd, 0xed, 0xcb}, uint8(3))

	f.Fuzz(func(t *testing.T, program []byte, lines uint8) {
		assert := assert.New(t)

		cpu, _ := newTestZ80(nil, program...)
		cpu.IM = InterruptMode(lines % 3)
		cpu.IFF1 = lines&4 != 0
		if lines&8 != 0 {
			cpu.TriggerNMI()
		}
		cpu.SetLevelInterrupt(lines&16 != 0)

		assert.NotPanics(func() {
			executed := cpu.Run(64)
			assert.LessOrEqual(executed, uint32(64))
		})

		blob := cpu.SaveContext()
		other := NewZ80()
		other.Init(&testBus{}, nil)
		assert.NoError(other.LoadContext(blob))
		assert.Equal(cpu.Context, other.Context)
	})
}

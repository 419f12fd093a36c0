package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/arcade/z80"
)

func TestLatch(t *testing.T) {
	assert := assert.New(t)

	target := z80.NewZ80()
	latch := NewLatch("test", target)
	latch.Depth = 2

	assert.Equal(LATCH_READY, latch.Status())
	_, ok := latch.Pop()
	assert.False(ok)

	latch.Push(0x10)
	latch.Push(0x20)
	latch.Push(0x30)
	assert.Equal(1, latch.Dropped)
	assert.True(latch.Pending())
	assert.Equal(LATCH_READY|LATCH_PENDING, latch.Status())
	assert.Equal([]uint8{0x10, 0x20}, latch.Commands())

	command, ok := latch.Pop()
	assert.True(ok)
	assert.Equal(uint8(0x10), command)

	latch.Reset()
	assert.False(latch.Pending())
	assert.Equal(0, latch.Dropped)
}

func TestLatchDevices(t *testing.T) {
	assert := assert.New(t)

	target := z80.NewZ80()
	latch := NewLatch("test", target)

	source := latch.Source()
	sink := latch.Target()

	assert.Equal(LATCH_READY, source.Read8(0))
	source.Write8(0, 0x42)
	source.Write8(0, 0x43)
	assert.Equal(LATCH_READY|LATCH_PENDING, source.Read8(0))
	assert.Equal(LATCH_READY|LATCH_PENDING, sink.Read8(1))

	// Reading a command acknowledges the target's interrupt.
	target.SetLevelInterrupt(true)
	assert.Equal(uint8(0x42), sink.Read8(0))
	assert.False(target.INT)

	assert.Equal(uint8(0x43), sink.Read8(0))
	assert.Equal(uint8(0xff), sink.Read8(0))
	assert.Equal(LATCH_READY, sink.Read8(1))
}

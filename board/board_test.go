package board

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/arcade/core"
	"github.com/ezrec/arcade/ppc"
	"github.com/ezrec/arcade/z80"
)

var (
	// Pushes commands 1 and 2 to the latch at 0x9000, then halts.
	mainProgram = []byte{0x3e, 0x01, 0x32, 0x00, 0x90, 0x3c, 0x32, 0x00, 0x90, 0x76}

	// Sums each command from port 0 into 0x8000, one per interrupt.
	soundProgram = func() (rom []byte) {
		rom = make([]byte, 0x100)
		copy(rom, []byte{0x31, 0x00, 0x90, 0xed, 0x56, 0xfb, 0x76, 0x18, 0xfd})
		copy(rom[0x38:], []byte{0xdb, 0x00, 0x21, 0x00, 0x80, 0x86, 0x77, 0xfb, 0xed, 0x4d})
		return
	}()
)

// newSoundBoard creates a main and sound Z80 pair, connected by a latch.
func newSoundBoard(t *testing.T) (b *Board) {
	assert := assert.New(t)

	b = NewBoard("sound")

	_, err := b.AddCore("main", ARCH_Z80, CoreConfig{Slice: 100})
	assert.NoError(err)
	_, err = b.AddCore("sound", ARCH_Z80, CoreConfig{Slice: 100})
	assert.NoError(err)

	assert.NoError(b.AttachROM("main", "rom", 0, mainProgram))
	assert.NoError(b.AttachROM("sound", "rom", 0, soundProgram))
	assert.NoError(b.AttachRAM("sound", "ram", 0x8000, 0x1000))

	_, err = b.AddLatch("soundlatch", "main", 0x9000, "sound", 0x00)
	assert.NoError(err)

	b.Reset()

	return
}

func ram(b *Board, key string) []byte {
	return b.ram[key].Data
}

func TestAddCore(t *testing.T) {
	assert := assert.New(t)

	b := NewBoard("test")

	slot, err := b.AddCore("main", ARCH_Z80, CoreConfig{})
	assert.NoError(err)
	assert.Equal(uint32(DEFAULT_SLICE), slot.Config.Slice)
	assert.Equal(DEFAULT_SLICES, slot.Config.Slices)
	assert.IsType(&z80.Z80{}, slot.Core)
	assert.Equal(uint32(0xff), slot.Map.PortMask)

	slot, err = b.AddCore("cpu", ARCH_PPC, CoreConfig{PVR: 0x00081202})
	assert.NoError(err)
	assert.IsType(&ppc.PPC{}, slot.Core)
	assert.Equal(uint32(0xfff00100), slot.Core.(*ppc.PPC).PC)
	assert.Equal(uint32(0x00081202), slot.Core.(*ppc.PPC).PVR)

	_, err = b.AddCore("main", ARCH_PPC, CoreConfig{})
	assert.ErrorIs(err, ErrDuplicate)

	_, err = b.AddCore("other", "6502", CoreConfig{})
	assert.ErrorIs(err, ErrArch)
	var errCore *ErrCore
	assert.ErrorAs(err, &errCore)
	assert.Equal("other", errCore.Core)

	_, ok := b.Slot("other")
	assert.False(ok)

	var names []string
	for slot := range b.Slots() {
		names = append(names, slot.Name)
	}
	assert.Equal([]string{"main", "cpu"}, names)
}

func TestAttach(t *testing.T) {
	assert := assert.New(t)

	b := NewBoard("test")
	_, err := b.AddCore("main", ARCH_Z80, CoreConfig{})
	assert.NoError(err)
	_, err = b.AddCore("sub", ARCH_Z80, CoreConfig{})
	assert.NoError(err)

	assert.ErrorIs(b.AttachRAM("none", "ram", 0, 0x100), ErrUnknownCore)
	assert.NoError(b.AttachRAM("main", "ram", 0x8000, 0x100))
	assert.ErrorIs(b.AttachRAM("main", "ram", 0x9000, 0x100), ErrDuplicate)
	assert.Error(b.AttachRAM("main", "over", 0x80f0, 0x100))
	assert.Error(b.AttachRAM("main", "big", 0xff00, 0x200))

	rom := []byte{1, 2, 3, 4}
	assert.NoError(b.AttachROM("main", "rom", 0, rom))
	rom[0] = 0x55

	assert.NoError(b.AttachShared("work", 0x100, "main", 0xc000))
	assert.NoError(b.AttachShared("work", 0x100, "sub", 0xd000))
	assert.ErrorIs(b.AttachShared("work", 0x200, "sub", 0xe000), ErrSharedSize)

	slot, _ := b.Slot("main")
	assert.Equal(uint8(1), slot.Map.Read8(0))
	slot.Map.Write8(0, 0x99)
	assert.Equal(uint8(1), slot.Map.Read8(0))

	slot.Map.Write8(0xc010, 0x42)
	other, _ := b.Slot("sub")
	assert.Equal(uint8(0x42), other.Map.Read8(0xd010))

	assert.ErrorIs(b.SetVblank("main", "irq"), ErrVblankLine)
	assert.NoError(b.SetVblank("main", VBLANK_NMI))

	count := 0
	for range b.Regions() {
		count++
	}
	assert.Equal(4, count)

	keys := slices.Sorted(maps.Keys(maps.Collect(b.Memory())))
	assert.Equal([]string{"main:ram", "shared:work"}, keys)
}

func TestRunFrameEmpty(t *testing.T) {
	assert := assert.New(t)

	b := NewBoard("empty")
	assert.ErrorIs(b.RunFrame(), ErrNoCores)
	assert.Equal(0, b.Frame)
}

func TestSoundLatch(t *testing.T) {
	assert := assert.New(t)

	b := newSoundBoard(t)

	for range 3 {
		assert.NoError(b.RunFrame())
	}

	assert.Equal(3, b.Frame)
	assert.Equal(uint8(3), ram(b, "sound:ram")[0])

	sound, _ := b.Slot("sound")
	assert.Equal(uint64(2), sound.Core.Stats().Interrupts)
	assert.True(sound.Core.(*z80.Z80).Halted)

	mainSlot, _ := b.Slot("main")
	assert.Equal(uint64(5), mainSlot.Executed)
	assert.Equal(uint64(5), mainSlot.Core.Stats().Instructions)

	latch := b.latches[0]
	assert.False(latch.Pending())
	assert.Equal(0, latch.Dropped)
	assert.Equal(core.INTERRUPT_IDLE, sound.Core.InterruptState())
}

func TestVblankNMI(t *testing.T) {
	assert := assert.New(t)

	rom := make([]byte, 0x100)
	copy(rom, []byte{0x76, 0x18, 0xfd})
	copy(rom[0x66:], []byte{0x21, 0x00, 0x80, 0x34, 0xed, 0x45})

	b := NewBoard("vblank")
	_, err := b.AddCore("main", ARCH_Z80, CoreConfig{Slice: 50})
	assert.NoError(err)
	assert.NoError(b.AttachROM("main", "rom", 0, rom))
	assert.NoError(b.AttachRAM("main", "ram", 0x8000, 0x8000))
	assert.NoError(b.SetVblank("main", VBLANK_NMI))
	b.Reset()

	for range 5 {
		assert.NoError(b.RunFrame())
	}

	assert.Equal(uint8(5), ram(b, "main:ram")[0])
	slot, _ := b.Slot("main")
	assert.Equal(uint64(5), slot.Core.Stats().Interrupts)
}

func TestVblankInt(t *testing.T) {
	assert := assert.New(t)

	b := NewBoard("vblank")
	_, err := b.AddCore("main", ARCH_Z80, CoreConfig{Slice: 10, Slices: 3})
	assert.NoError(err)
	assert.NoError(b.SetVblank("main", VBLANK_INT))

	slot, _ := b.Slot("main")
	assert.True(slot.level(0))
	assert.False(slot.level(1))
	assert.False(slot.level(2))
}

func TestSharedPPC(t *testing.T) {
	assert := assert.New(t)

	rom := make([]byte, 0x200)
	for n, word := range []uint32{
		0x3c601000, // lis r3,0x1000
		0x3c801234, // lis r4,0x1234
		0x60845678, // ori r4,r4,0x5678
		0x90830000, // stw r4,0(r3)
		0x48000000, // b .
	} {
		offset := 0x100 + n*4
		rom[offset+0] = uint8(word >> 24)
		rom[offset+1] = uint8(word >> 16)
		rom[offset+2] = uint8(word >> 8)
		rom[offset+3] = uint8(word)
	}

	b := NewBoard("shared")
	_, err := b.AddCore("cpu", ARCH_PPC, CoreConfig{Slice: 100})
	assert.NoError(err)
	_, err = b.AddCore("audio", ARCH_Z80, CoreConfig{Slice: 100})
	assert.NoError(err)

	assert.NoError(b.AttachROM("cpu", "rom", 0xfff00000, rom))
	assert.NoError(b.AttachROM("audio", "rom", 0, []byte{
		0x3a, 0x00, 0xa0, // ld a,(0xa000)
		0x32, 0x00, 0x80, // ld (0x8000),a
		0x76, // halt
	}))
	assert.NoError(b.AttachRAM("audio", "ram", 0x8000, 0x100))
	assert.NoError(b.AttachShared("sram", 0x100, "cpu", 0x10000000))
	assert.NoError(b.AttachShared("sram", 0x100, "audio", 0xa000))
	b.Reset()

	assert.NoError(b.RunFrame())

	assert.Equal([]byte{0x12, 0x34, 0x56, 0x78}, b.shared["sram"].Data[:4])
	assert.Equal(uint8(0x12), ram(b, "audio:ram")[0])

	cpu, _ := b.Slot("cpu")
	assert.Equal(uint64(100), cpu.Executed)
	assert.Equal(uint32(0xfff00110), cpu.Core.(*ppc.PPC).PC)
}

func TestStrict(t *testing.T) {
	assert := assert.New(t)

	b := NewBoard("strict")
	_, err := b.AddCore("main", ARCH_Z80, CoreConfig{Slice: 10})
	assert.NoError(err)
	assert.NoError(b.AttachROM("main", "rom", 0, []byte{0x00, 0xed, 0x00, 0x76}))
	b.Reset()

	// Unimplemented opcodes execute as no-ops unless strict.
	assert.NoError(b.RunFrame())
	slot, _ := b.Slot("main")
	assert.Equal(uint64(1), slot.Core.Stats().Unimplemented)

	b.Reset()
	b.Strict = true
	err = b.RunFrame()
	assert.Error(err)

	var errRuntime *ErrRuntime
	assert.ErrorAs(err, &errRuntime)
	assert.Equal(0, errRuntime.Frame)
	assert.Equal("main", errRuntime.Core)

	var errUnimplemented *ErrUnimplemented
	assert.ErrorAs(err, &errUnimplemented)
	assert.Equal(uint32(0xed00), errUnimplemented.Opcode)
	assert.Equal(uint32(1), errUnimplemented.Address)
	assert.Equal(0, b.Frame)
}

func TestSnapshotRestore(t *testing.T) {
	assert := assert.New(t)

	b := newSoundBoard(t)
	assert.NoError(b.RunFrame())

	snap := b.Snapshot()
	assert.Equal(1, snap.Frame)
	assert.Equal([]uint8{1, 2}, snap.Latches["soundlatch"])
	assert.Contains(snap.Memory, "sound:ram")

	for range 2 {
		assert.NoError(b.RunFrame())
	}
	after := b.Snapshot()
	assert.Equal(uint8(3), after.Memory["sound:ram"][0])

	assert.NoError(b.Restore(snap))
	assert.Equal(1, b.Frame)
	assert.Equal(uint8(0), ram(b, "sound:ram")[0])
	assert.Equal([]uint8{1, 2}, b.latches[0].Commands())

	for range 2 {
		assert.NoError(b.RunFrame())
	}
	assert.Equal(after, b.Snapshot())
}

func TestRestoreMismatch(t *testing.T) {
	assert := assert.New(t)

	b := newSoundBoard(t)
	assert.NoError(b.RunFrame())
	before := b.Snapshot()

	other := NewBoard("other")
	_, err := other.AddCore("main", ARCH_Z80, CoreConfig{})
	assert.NoError(err)
	assert.ErrorIs(b.Restore(other.Snapshot()), ErrSnapshot)

	// A context of the wrong architecture rolls back every core.
	bad := b.Snapshot()
	ppcCore := ppc.NewPPC(ppc.Config{})
	bad.Contexts["sound"] = ppcCore.SaveContext()
	bad.Frame = 7
	assert.ErrorIs(b.Restore(bad), core.ErrContextInvalid)

	assert.Equal(before, b.Snapshot())
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package board assembles cores, buses and devices into an arcade board,
// and drives the cores in deterministic, bounded, round-robin slices.
package board

import (
	"encoding/binary"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/arcade/bus"
	"github.com/ezrec/arcade/core"
	"github.com/ezrec/arcade/internal"
	"github.com/ezrec/arcade/ppc"
	"github.com/ezrec/arcade/z80"
)

const (
	ARCH_Z80 = "z80" // 8-bit core, 16-bit little-endian bus with ports.
	ARCH_PPC = "ppc" // 32-bit core, 32-bit big-endian bus.

	VBLANK_NONE = ""    // No vertical blank interrupt.
	VBLANK_NMI  = "nmi" // Non-maskable pulse at the start of each frame.
	VBLANK_INT  = "int" // Maskable line, asserted for the first round.

	DEFAULT_SLICE  = 1000 // Instructions per slice.
	DEFAULT_SLICES = 1    // Slices per frame.
)

// CoreConfig are the scheduling and model parameters of a core.
type CoreConfig struct {
	Slice           uint32              // Instructions per slice.
	Slices          int                 // Slices per frame.
	Vector          core.VectorSelector // Supplied on interrupt acknowledge.
	PVR             uint32              // ppc: processor version.
	TimebaseDivider uint32              // ppc: instructions per time base tick.
}

// Slot is a core installed on the board, with its bus.
type Slot struct {
	Name     string
	Arch     string
	Config   CoreConfig
	Core     core.Core
	Map      *bus.Map
	Executed uint64 // Instructions executed since reset.

	vblank   string
	latches  []*Latch
	reported uint64
}

// level returns the state of the maskable line for a round of a frame.
func (slot *Slot) level(round int) bool {
	if slot.vblank == VBLANK_INT && round == 0 {
		return true
	}
	for _, latch := range slot.latches {
		if latch.Pending() {
			return true
		}
	}
	return false
}

func (slot *Slot) vector(c core.Core) core.VectorSelector {
	return slot.Config.Vector
}

// Snapshot is the complete run state of a board.
type Snapshot struct {
	Frame    int
	Contexts map[string][]byte // Core contexts, by core name.
	Memory   map[string][]byte // Writable memory, by region key.
	Latches  map[string][]uint8
}

// Board is a set of cores, their buses, and shared devices.
type Board struct {
	Verbose bool // If set, enables verbose logging.
	Strict  bool // If set, an unimplemented opcode stops the board.
	Name    string
	Frame   int // Frames run since reset.

	slots   []*Slot
	latches []*Latch
	shared  map[string]*bus.Memory
	ram     map[string]*bus.Memory
}

// NewBoard creates an empty board.
func NewBoard(name string) (b *Board) {
	b = &Board{
		Name:   name,
		shared: map[string]*bus.Memory{},
		ram:    map[string]*bus.Memory{},
	}

	return
}

// Slot returns the named core.
func (b *Board) Slot(name string) (slot *Slot, ok bool) {
	index := slices.IndexFunc(b.slots, func(s *Slot) bool { return s.Name == name })
	if index < 0 {
		return
	}
	return b.slots[index], true
}

func (b *Board) slot(name string) (slot *Slot, err error) {
	slot, ok := b.Slot(name)
	if !ok {
		err = &ErrCore{Core: name, Err: ErrUnknownCore}
	}
	return
}

// Slots returns the cores in declaration order.
func (b *Board) Slots() iter.Seq[*Slot] {
	return slices.Values(b.slots)
}

// Latches returns the command latches in declaration order.
func (b *Board) Latches() iter.Seq[*Latch] {
	return slices.Values(b.latches)
}

// Regions returns every memory and port region of every core.
func (b *Board) Regions() iter.Seq[*bus.Region] {
	var seqs []iter.Seq[*bus.Region]
	for _, slot := range b.slots {
		seqs = append(seqs, slot.Map.Regions(), slot.Map.Ports())
	}
	return internal.Concat(seqs...)
}

// AddCore installs a core, and initializes it on a new bus.
func (b *Board) AddCore(name string, arch string, config CoreConfig) (slot *Slot, err error) {
	defer func() {
		if err != nil {
			slot = nil
			err = &ErrCore{Core: name, Err: err}
		}
	}()

	if _, ok := b.Slot(name); ok {
		err = ErrDuplicate
		return
	}

	if config.Slice == 0 {
		config.Slice = DEFAULT_SLICE
	}
	if config.Slices <= 0 {
		config.Slices = DEFAULT_SLICES
	}

	slot = &Slot{
		Name:   name,
		Arch:   arch,
		Config: config,
	}

	switch arch {
	case ARCH_Z80:
		slot.Map = bus.NewMap(name, 16, binary.LittleEndian)
		slot.Map.PortMask = 0xff
		slot.Core = z80.NewZ80()
	case ARCH_PPC:
		slot.Map = bus.NewMap(name, 32, binary.BigEndian)
		slot.Core = ppc.NewPPC(ppc.Config{
			PVR:             config.PVR,
			TimebaseDivider: config.TimebaseDivider,
		})
	default:
		err = ErrArch
		return
	}

	slot.Core.Init(slot.Map, core.VectorProviderFunc(slot.vector))
	slot.Core.Reset()
	b.slots = append(b.slots, slot)

	if b.Verbose {
		log.Printf("board: %v: %v core, %d x %d instructions per frame", name, arch, config.Slices, config.Slice)
	}

	return
}

// AttachRAM maps new read-write memory into a core's memory space.
func (b *Board) AttachRAM(cpu string, name string, base uint32, size uint32) (err error) {
	slot, err := b.slot(cpu)
	if err != nil {
		return
	}

	key := cpu + ":" + name
	if _, ok := b.ram[key]; ok {
		err = &ErrCore{Core: cpu, Err: ErrDuplicate}
		return
	}

	mem := bus.NewMemory(size, false)
	err = slot.Map.Attach(name, base, size, mem)
	if err != nil {
		return
	}

	b.ram[key] = mem
	return
}

// AttachROM maps an image read-only into a core's memory space.
func (b *Board) AttachROM(cpu string, name string, base uint32, data []byte) (err error) {
	slot, err := b.slot(cpu)
	if err != nil {
		return
	}

	mem := &bus.Memory{Data: slices.Clone(data), ReadOnly: true}
	err = slot.Map.Attach(name, base, uint32(len(data)), mem)
	return
}

// AttachShared maps the named shared memory into a core's memory space,
// creating it on first use.
func (b *Board) AttachShared(name string, size uint32, cpu string, base uint32) (err error) {
	slot, err := b.slot(cpu)
	if err != nil {
		return
	}

	mem, ok := b.shared[name]
	if !ok {
		mem = bus.NewMemory(size, false)
	} else if uint32(len(mem.Data)) != size {
		err = &ErrCore{Core: cpu, Err: ErrSharedSize}
		return
	}

	err = slot.Map.Attach(name, base, size, mem)
	if err != nil {
		return
	}

	b.shared[name] = mem
	return
}

// AddLatch connects a command latch from the source core, at base in its
// memory space, to the target core, at port in its port space (or memory
// space, for a core without one).
func (b *Board) AddLatch(name string, source string, base uint32, target string, port uint32) (latch *Latch, err error) {
	from, err := b.slot(source)
	if err != nil {
		return
	}
	to, err := b.slot(target)
	if err != nil {
		return
	}

	if slices.ContainsFunc(b.latches, func(l *Latch) bool { return l.Name == name }) {
		err = &ErrCore{Core: target, Err: ErrDuplicate}
		return
	}

	latch = NewLatch(name, to.Core)

	err = from.Map.Attach(name, base, 1, latch.Source())
	if err != nil {
		latch = nil
		return
	}

	if to.Arch == ARCH_Z80 {
		err = to.Map.AttachPort(name, port, 2, latch.Target())
	} else {
		err = to.Map.Attach(name, port, 2, latch.Target())
	}
	if err != nil {
		latch = nil
		return
	}

	to.latches = append(to.latches, latch)
	b.latches = append(b.latches, latch)
	return
}

// SetVblank selects the interrupt line pulsed at the start of each frame.
func (b *Board) SetVblank(cpu string, line string) (err error) {
	slot, err := b.slot(cpu)
	if err != nil {
		return
	}

	switch line {
	case VBLANK_NONE, VBLANK_NMI, VBLANK_INT:
		slot.vblank = line
	default:
		err = &ErrCore{Core: cpu, Err: ErrVblankLine}
	}

	return
}

// Reset every core and latch.
func (b *Board) Reset() {
	for _, slot := range b.slots {
		slot.Core.Reset()
		slot.Executed = 0
		slot.reported = 0
	}
	for _, latch := range b.latches {
		latch.Reset()
	}
	b.Frame = 0
}

// RunFrame runs one frame. Each core gets its configured number of
// slices, round-robin in declaration order. Interrupt lines are updated
// only at slice boundaries.
func (b *Board) RunFrame() (err error) {
	if len(b.slots) == 0 {
		err = ErrNoCores
		return
	}

	rounds := 0
	for _, slot := range b.slots {
		rounds = max(rounds, slot.Config.Slices)
		if slot.vblank == VBLANK_NMI {
			slot.Core.TriggerNMI()
		}
	}

	for round := range rounds {
		for _, slot := range b.slots {
			if round >= slot.Config.Slices {
				continue
			}

			slot.Core.SetLevelInterrupt(slot.level(round))
			executed := slot.Core.Run(slot.Config.Slice)
			slot.Executed += uint64(executed)

			err = b.check(slot)
			if err != nil {
				return
			}
		}
	}

	b.Frame++
	return
}

// check reports unimplemented opcodes met during the last slice.
func (b *Board) check(slot *Slot) (err error) {
	st := slot.Core.Stats()
	if st.Unimplemented == slot.reported {
		return
	}
	slot.reported = st.Unimplemented

	if b.Verbose {
		log.Printf("board: %v: unimplemented opcode %#x at %#x", slot.Name, st.LastOpcode, st.LastAddress)
	}

	if b.Strict {
		err = &ErrRuntime{
			Frame: b.Frame,
			Core:  slot.Name,
			Err:   &ErrUnimplemented{Opcode: st.LastOpcode, Address: st.LastAddress},
		}
	}

	return
}

// Memory yields all writable memory. RAM is keyed by "cpu:name", and
// shared memory by "shared:name".
func (b *Board) Memory() iter.Seq2[string, *bus.Memory] {
	return internal.Concat2(maps.All(b.ram), internal.Prefixed("shared:", maps.All(b.shared)))
}

func (b *Board) writable() map[string]*bus.Memory {
	return maps.Collect(b.Memory())
}

// Snapshot captures the run state of the board.
func (b *Board) Snapshot() (snap *Snapshot) {
	snap = &Snapshot{
		Frame:    b.Frame,
		Contexts: map[string][]byte{},
		Memory:   map[string][]byte{},
		Latches:  map[string][]uint8{},
	}

	for _, slot := range b.slots {
		snap.Contexts[slot.Name] = slot.Core.SaveContext()
	}
	for key, mem := range b.writable() {
		snap.Memory[key] = slices.Clone(mem.Data)
	}
	for _, latch := range b.latches {
		snap.Latches[latch.Name] = latch.Commands()
	}

	return
}

// Restore returns the board to a snapshot. On error the board is unchanged.
func (b *Board) Restore(snap *Snapshot) (err error) {
	mems := b.writable()

	if len(snap.Contexts) != len(b.slots) || len(snap.Memory) != len(mems) || len(snap.Latches) != len(b.latches) {
		err = ErrSnapshot
		return
	}
	for key, mem := range mems {
		data, ok := snap.Memory[key]
		if !ok || len(data) != len(mem.Data) {
			err = ErrSnapshot
			return
		}
	}
	for _, latch := range b.latches {
		if _, ok := snap.Latches[latch.Name]; !ok {
			err = ErrSnapshot
			return
		}
	}

	backup := map[string][]byte{}
	for _, slot := range b.slots {
		blob, ok := snap.Contexts[slot.Name]
		if !ok {
			err = &ErrCore{Core: slot.Name, Err: ErrSnapshot}
		} else {
			backup[slot.Name] = slot.Core.SaveContext()
			err = slot.Core.LoadContext(blob)
			if err != nil {
				err = &ErrCore{Core: slot.Name, Err: err}
			}
		}
		if err != nil {
			for name, blob := range backup {
				undo, _ := b.Slot(name)
				_ = undo.Core.LoadContext(blob)
			}
			return
		}
	}

	for key, mem := range mems {
		copy(mem.Data, snap.Memory[key])
	}
	for _, latch := range b.latches {
		latch.fifo = slices.Clone(snap.Latches[latch.Name])
	}
	b.Frame = snap.Frame

	return
}

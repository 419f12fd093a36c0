// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package board

import (
	"log"
	"path/filepath"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/arcade/core"
	"github.com/ezrec/arcade/romset"
)

// LoadScript creates a board from a board description script. The board
// is named after the script file.
func LoadScript(path string, verbose bool) (b *Board, err error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	b = NewBoard(name)
	b.Verbose = verbose

	err = b.Exec(path, nil)
	if err != nil {
		b = nil
	}

	return
}

// Exec runs a board description script against the board. If src is nil
// the script is read from path. ROM file paths in the script are relative
// to the script's directory.
//
// Builtins:
//
//	cpu(name, arch, slice=1000, slices=1, vector=0xff, pvr=0, tb_divider=0)
//	ram(cpu, name, base, size)
//	rom(cpu, name, base, data)
//	shared(name, size, maps)   # maps is a list of (cpu, base)
//	latch(name, source, base, target, port)
//	vblank(cpu, line)          # line is "nmi" or "int"
//	rom_file(path, member="", crc=0) -> bytes
//	interleave(images, chunk=2) -> bytes
//	byteswap(data, width) -> bytes
func (b *Board) Exec(path string, src any) (err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Path: path, Err: err}
		}
	}()

	dir := filepath.Dir(path)

	thread := &starlark.Thread{
		Name: path,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("board: %v: %v", path, msg)
		},
	}

	predeclared := starlark.StringDict{
		"cpu":        starlark.NewBuiltin("cpu", b.starCpu),
		"ram":        starlark.NewBuiltin("ram", b.starRam),
		"rom":        starlark.NewBuiltin("rom", b.starRom),
		"shared":     starlark.NewBuiltin("shared", b.starShared),
		"latch":      starlark.NewBuiltin("latch", b.starLatch),
		"vblank":     starlark.NewBuiltin("vblank", b.starVblank),
		"rom_file":   starlark.NewBuiltin("rom_file", starRomFile(dir)),
		"interleave": starlark.NewBuiltin("interleave", starInterleave),
		"byteswap":   starlark.NewBuiltin("byteswap", starByteswap),
	}

	opts := syntax.FileOptions{}
	_, err = starlark.ExecFileOptions(&opts, thread, path, src, predeclared)
	return
}

// address checks a script integer fits a 32-bit address or size.
func address(value starlark.Int) (addr uint32, err error) {
	v, ok := value.Uint64()
	if !ok || v > 0xffffffff {
		err = ErrValue
		return
	}
	addr = uint32(v)
	return
}

func (b *Board) starCpu(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name, arch string
	slice := starlark.MakeInt(DEFAULT_SLICE)
	slices := DEFAULT_SLICES
	vector := int(core.VECTOR_RST_38)
	pvr := starlark.MakeInt(0)
	tbDivider := starlark.MakeInt(0)

	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"arch", &arch,
		"slice?", &slice,
		"slices?", &slices,
		"vector?", &vector,
		"pvr?", &pvr,
		"tb_divider?", &tbDivider,
	)
	if err != nil {
		return
	}

	config := CoreConfig{
		Slices: slices,
		Vector: core.VectorSelector(vector),
	}
	config.Slice, err = address(slice)
	if err != nil {
		return
	}
	config.PVR, err = address(pvr)
	if err != nil {
		return
	}
	config.TimebaseDivider, err = address(tbDivider)
	if err != nil {
		return
	}

	_, err = b.AddCore(name, arch, config)
	if err != nil {
		return
	}

	value = starlark.String(name)
	return
}

func (b *Board) starRam(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var cpu, name string
	var base, size starlark.Int

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "cpu", &cpu, "name", &name, "base", &base, "size", &size)
	if err != nil {
		return
	}

	addr, err := address(base)
	if err != nil {
		return
	}
	length, err := address(size)
	if err != nil {
		return
	}

	err = b.AttachRAM(cpu, name, addr, length)
	value = starlark.None
	return
}

func (b *Board) starRom(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var cpu, name string
	var base starlark.Int
	var data starlark.Bytes

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "cpu", &cpu, "name", &name, "base", &base, "data", &data)
	if err != nil {
		return
	}

	addr, err := address(base)
	if err != nil {
		return
	}

	err = b.AttachROM(cpu, name, addr, []byte(data))
	value = starlark.None
	return
}

func (b *Board) starShared(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	var size starlark.Int
	var mappings *starlark.List

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "size", &size, "maps", &mappings)
	if err != nil {
		return
	}

	length, err := address(size)
	if err != nil {
		return
	}

	for n := range mappings.Len() {
		var cpu string
		var base starlark.Int
		tuple, ok := mappings.Index(n).(starlark.Tuple)
		if !ok {
			err = ErrValue
			return
		}
		err = starlark.UnpackPositionalArgs(fn.Name(), tuple, nil, 2, &cpu, &base)
		if err != nil {
			return
		}

		var addr uint32
		addr, err = address(base)
		if err != nil {
			return
		}

		err = b.AttachShared(name, length, cpu, addr)
		if err != nil {
			return
		}
	}

	value = starlark.None
	return
}

func (b *Board) starLatch(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name, source, target string
	var base, port starlark.Int

	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name,
		"source", &source,
		"base", &base,
		"target", &target,
		"port", &port,
	)
	if err != nil {
		return
	}

	addr, err := address(base)
	if err != nil {
		return
	}
	portAddr, err := address(port)
	if err != nil {
		return
	}

	_, err = b.AddLatch(name, source, addr, target, portAddr)
	value = starlark.None
	return
}

func (b *Board) starVblank(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var cpu, line string

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "cpu", &cpu, "line", &line)
	if err != nil {
		return
	}

	err = b.SetVblank(cpu, line)
	value = starlark.None
	return
}

func starRomFile(dir string) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var path, member string
		crc := starlark.MakeInt(0)

		err = starlark.UnpackArgs(fn.Name(), args, kwargs, "path", &path, "member?", &member, "crc?", &crc)
		if err != nil {
			return
		}

		sum, err := address(crc)
		if err != nil {
			return
		}

		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		data, err := romset.Load(path, member, sum)
		if err != nil {
			return
		}

		value = starlark.Bytes(data)
		return
	}
}

func starInterleave(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var list *starlark.List
	chunk := 2

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "images", &list, "chunk?", &chunk)
	if err != nil {
		return
	}

	images := make([][]byte, 0, list.Len())
	for n := range list.Len() {
		image, ok := list.Index(n).(starlark.Bytes)
		if !ok {
			err = ErrValue
			return
		}
		images = append(images, []byte(image))
	}

	data, err := romset.Interleave(chunk, images...)
	if err != nil {
		return
	}

	value = starlark.Bytes(data)
	return
}

func starByteswap(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var data starlark.Bytes
	var width int

	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "data", &data, "width", &width)
	if err != nil {
		return
	}

	swapped, err := romset.ByteSwap([]byte(data), width)
	if err != nil {
		return
	}

	value = starlark.Bytes(swapped)
	return
}

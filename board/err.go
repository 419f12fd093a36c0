package board

import (
	"errors"

	"github.com/ezrec/arcade/translate"
)

var f = translate.From

var (
	ErrNoCores     = errors.New(f("board has no cores"))
	ErrUnknownCore = errors.New(f("unknown core"))
	ErrDuplicate   = errors.New(f("duplicate name"))
	ErrArch        = errors.New(f("unsupported architecture"))
	ErrVblankLine  = errors.New(f("unknown vblank line"))
	ErrSharedSize  = errors.New(f("shared memory size mismatch"))
	ErrValue       = errors.New(f("value out of range"))
	ErrSnapshot    = errors.New(f("snapshot does not match board"))
)

// ErrCore indicates which core a configuration error applies to.
type ErrCore struct {
	Core string
	Err  error
}

func (err *ErrCore) Error() string {
	return f("%v: %v", err.Core, err.Err)
}

func (err *ErrCore) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the frame and core of a runtime error.
type ErrRuntime struct {
	Frame int
	Core  string
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("frame %d %v: %v", err.Frame, err.Core, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrUnimplemented reports an opcode the core could not execute.
type ErrUnimplemented struct {
	Opcode  uint32
	Address uint32
}

func (err *ErrUnimplemented) Error() string {
	return f("unimplemented opcode %#x at %#x", err.Opcode, err.Address)
}

// ErrScript indicates a board description script failure.
type ErrScript struct {
	Path string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

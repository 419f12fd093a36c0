package core

import (
	"errors"

	"github.com/ezrec/arcade/translate"
)

var f = translate.From

var (
	// Precondition violations. These are programming errors, and panic.
	ErrNotInitialized     = errors.New(f("core not initialized"))
	ErrAlreadyInitialized = errors.New(f("core already initialized"))

	// Context restore errors.
	ErrContextInvalid = errors.New(f("context invalid"))
	ErrContextMagic   = errors.New(f("context magic mismatch"))
	ErrContextVersion = errors.New(f("context version unsupported"))
	ErrContextSize    = errors.New(f("context size mismatch"))
)

// ErrContext indicates why a context blob was rejected.
type ErrContext struct {
	Arch string
	Err  error
}

func (err *ErrContext) Error() string {
	return f("%v: %v", err.Arch, err.Err)
}

func (err *ErrContext) Unwrap() error {
	return errors.Join(ErrContextInvalid, err.Err)
}

package romset

import (
	"errors"

	"github.com/ezrec/arcade/translate"
)

var f = translate.From

var (
	ErrNoMember          = errors.New(f("member not found in archive"))
	ErrUnsupportedFormat = errors.New(f("unsupported file format"))
	ErrTooLarge          = errors.New(f("image exceeds maximum size"))
	ErrChecksum          = errors.New(f("image checksum mismatch"))
	ErrWidth             = errors.New(f("invalid word width"))
	ErrLength            = errors.New(f("image length mismatch"))
)

// ErrImage indicates which image of which file could not be loaded.
type ErrImage struct {
	Path   string
	Member string
	Err    error
}

func (err *ErrImage) Error() string {
	if err.Member == "" {
		return f("%v: %v", err.Path, err.Err)
	}
	return f("%v(%v): %v", err.Path, err.Member, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}

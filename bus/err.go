package bus

import (
	"errors"

	"github.com/ezrec/arcade/translate"
)

var f = translate.From

var (
	ErrOverlap   = errors.New(f("region overlap"))
	ErrRange     = errors.New(f("region outside address space"))
	ErrNoDevice  = errors.New(f("region has no device"))
	ErrZeroWidth = errors.New(f("address width invalid"))
)

// ErrRegion indicates the region a mapping error applies to.
type ErrRegion struct {
	Map  string
	Name string
	Err  error
}

func (err *ErrRegion) Error() string {
	return f("%v: %v: %v", err.Map, err.Name, err.Err)
}

func (err *ErrRegion) Unwrap() error {
	return err.Err
}

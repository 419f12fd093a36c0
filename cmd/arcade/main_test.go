package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const haltScript = `
main = cpu("main", "z80", slice = 10)
rom(main, "rom", 0, b"\x00\x00\x76")
ram(main, "ram", 0x8000, 0x100)
`

func TestRun(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "halt.star")
	assert.NoError(os.WriteFile(path, []byte(haltScript), 0o644))

	report, err := run(path, &options{frames: 2, verbose: true})
	assert.NoError(err)
	assert.Contains(report, "halt: 2 frames\n")
	assert.Contains(report, "main (z80): executed 3, interrupts 0, unimplemented 0\n")
}

func TestRunStrict(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "bad.star")
	script := `cpu("main", "z80")` + "\n" + `rom("main", "rom", 0, b"\xed\x00\x76")` + "\n"
	assert.NoError(os.WriteFile(path, []byte(script), 0o644))

	report, err := run(path, &options{frames: 2, strict: true})
	assert.Error(err)
	assert.Contains(report, "bad: 0 frames\n")
}

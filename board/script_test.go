package board

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/arcade/romset"
)

const soundScript = `
main = cpu("main", "z80", slice = 100)
sound = cpu("sound", "z80", slice = 100, vector = 0xff)

rom(main, "rom", 0, b"\x3e\x01\x32\x00\x90\x3c\x32\x00\x90\x76")
rom(sound, "rom", 0, rom_file("sound.bin", crc = %d))
ram(sound, "ram", 0x8000, 0x1000)
shared("work", 0x100, [(main, 0xc000), (sound, 0xc000)])
latch("soundlatch", main, 0x9000, sound, 0x00)

def check():
    if interleave([b"\x01\x02", b"\x03\x04"], chunk = 1) != b"\x01\x03\x02\x04":
        fail("interleave")
    if byteswap(b"\x01\x02\x03\x04", 2) != b"\x02\x01\x04\x03":
        fail("byteswap")

check()
`

func writeSoundBoard(t *testing.T) (path string) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "sound.bin"), soundProgram, 0o644)
	assert.NoError(t, err)

	path = filepath.Join(dir, "sound.star")
	script := fmt.Sprintf(soundScript, crc32.ChecksumIEEE(soundProgram))
	err = os.WriteFile(path, []byte(script), 0o644)
	assert.NoError(t, err)

	return
}

func TestLoadScript(t *testing.T) {
	assert := assert.New(t)

	b, err := LoadScript(writeSoundBoard(t), false)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal("sound", b.Name)
	assert.Len(b.slots, 2)
	assert.Len(b.latches, 1)
	assert.Contains(b.shared, "work")

	for range 3 {
		assert.NoError(b.RunFrame())
	}
	assert.Equal(uint8(3), ram(b, "sound:ram")[0])
}

func TestLoadScriptMissing(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "missing.star")
	b, err := LoadScript(path, false)
	assert.Nil(b)

	var errScript *ErrScript
	assert.ErrorAs(err, &errScript)
	assert.Equal(path, errScript.Path)
}

func TestExecErrors(t *testing.T) {
	table := map[string]struct {
		src string
		err error
	}{
		"syntax":       {src: "cpu(", err: nil},
		"arch":         {src: `cpu("main", "68000")`, err: ErrArch},
		"duplicate":    {src: `cpu("main", "z80")` + "\n" + `cpu("main", "z80")`, err: ErrDuplicate},
		"slice":        {src: `cpu("main", "z80", slice = -1)`, err: ErrValue},
		"base":         {src: `cpu("main", "z80")` + "\n" + `ram("main", "ram", 0x100000000, 16)`, err: ErrValue},
		"unknown":      {src: `ram("nope", "ram", 0, 16)`, err: ErrUnknownCore},
		"shared":       {src: `cpu("main", "z80")` + "\n" + `shared("work", 16, ["main"])`, err: ErrValue},
		"vblank":       {src: `cpu("main", "z80")` + "\n" + `vblank("main", "firq")`, err: ErrVblankLine},
		"interleave":   {src: `interleave([b"\x01", "text"])`, err: ErrValue},
		"interleaving": {src: `interleave([b"\x01", b"\x02\x03"], chunk = 1)`, err: romset.ErrLength},
		"byteswap":     {src: `byteswap(b"\x01\x02\x03", 3)`, err: romset.ErrWidth},
		"rom_file":     {src: `rom_file("missing.bin")`, err: os.ErrNotExist},
		"fail":         {src: `fail("stop")`, err: nil},
	}

	for name, entry := range table {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			path := filepath.Join(t.TempDir(), name+".star")
			b := NewBoard(name)
			err := b.Exec(path, entry.src)
			assert.Error(err)

			var errScript *ErrScript
			assert.ErrorAs(err, &errScript)
			if entry.err != nil {
				assert.ErrorIs(err, entry.err)
			}
		})
	}
}

func TestRomFileChecksum(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	assert.NoError(os.WriteFile(filepath.Join(dir, "rom.bin"), []byte{1, 2, 3, 4}, 0o644))

	b := NewBoard("test")
	err := b.Exec(filepath.Join(dir, "test.star"), `rom_file("rom.bin", crc = 1)`)
	assert.ErrorIs(err, romset.ErrChecksum)

	crc := crc32.ChecksumIEEE([]byte{1, 2, 3, 4})
	err = b.Exec(filepath.Join(dir, "test.star"), fmt.Sprintf(`data = rom_file("rom.bin", crc = %d)`, crc))
	assert.NoError(err)
}

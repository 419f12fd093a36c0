package core

import (
	"bytes"
	"encoding/binary"
)

// Context blobs are a 4-byte magic, a version byte, then the big-endian
// encoding of a fixed-size register context structure.
const contextHeader = 5

// EncodeContext serializes a fixed-size context structure.
func EncodeContext(magic string, version uint8, state any) (blob []byte) {
	var buf bytes.Buffer

	buf.Grow(contextHeader + binary.Size(state))
	buf.WriteString(magic[:4])
	buf.WriteByte(version)

	err := binary.Write(&buf, binary.BigEndian, state)
	if err != nil {
		panic(err)
	}

	blob = buf.Bytes()
	return
}

// DecodeContext restores a fixed-size context structure. On error, state
// is left untouched.
func DecodeContext(arch string, magic string, version uint8, blob []byte, state any) (err error) {
	defer func() {
		if err != nil {
			err = &ErrContext{Arch: arch, Err: err}
		}
	}()

	if len(blob) < contextHeader || string(blob[:4]) != magic[:4] {
		err = ErrContextMagic
		return
	}

	if blob[4] != version {
		err = ErrContextVersion
		return
	}

	if len(blob)-contextHeader != binary.Size(state) {
		err = ErrContextSize
		return
	}

	_, err = binary.Decode(blob[contextHeader:], binary.BigEndian, state)
	return
}

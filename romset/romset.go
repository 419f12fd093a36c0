// Package romset loads ROM images for a board from raw files or archives,
// and rearranges them into the layout the board's buses expect.
package romset

import (
	"bytes"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MAX_IMAGE_SIZE limits the size of a single extracted image.
const MAX_IMAGE_SIZE = 64 * 1024 * 1024

var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21}
)

// Format is a detected file format.
type Format int

//go:generate go tool stringer -linecomment -type=Format

const (
	FORMAT_UNKNOWN Format = iota // unknown
	FORMAT_RAW                   // raw
	FORMAT_ZIP                   // zip
	FORMAT_7Z                    // 7z
	FORMAT_GZIP                  // gzip
	FORMAT_RAR                   // rar
)

// Detect returns the format of a file, from its leading bytes, falling
// back to the file name's extension.
func Detect(header []byte, path string) Format {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return FORMAT_ZIP
	case bytes.HasPrefix(header, magicRAR):
		return FORMAT_RAR
	case bytes.HasPrefix(header, magic7z):
		return FORMAT_7Z
	case bytes.HasPrefix(header, magicGzip):
		return FORMAT_GZIP
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return FORMAT_ZIP
	case ".7z":
		return FORMAT_7Z
	case ".gz", ".tgz":
		return FORMAT_GZIP
	case ".rar":
		return FORMAT_RAR
	}

	return FORMAT_RAW
}

// Load reads an image. For an archive, member names the entry to extract,
// matched against the entry's base name without regard to case; an empty
// member selects the first file. A raw or plain gzip file is the image
// itself. When crc is non-zero the image's CRC32 must match it.
func Load(path string, member string, crc uint32) (data []byte, err error) {
	defer func() {
		if err != nil {
			data = nil
			err = &ErrImage{Path: path, Member: member, Err: err}
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	header := make([]byte, 16)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return
	}
	header = header[:n]

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return
	}

	switch Detect(header, path) {
	case FORMAT_RAW:
		data, err = limitedRead(file)
	case FORMAT_ZIP:
		data, err = extractZIP(path, member)
	case FORMAT_7Z:
		data, err = extract7z(path, member)
	case FORMAT_RAR:
		data, err = extractRAR(path, member)
	case FORMAT_GZIP:
		data, err = extractGzip(file, path, member)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		return
	}

	if crc != 0 && crc32.ChecksumIEEE(data) != crc {
		err = ErrChecksum
		return
	}

	return
}

// matches returns true if an archive entry is the requested member.
func matches(name string, member string) bool {
	return member == "" || strings.EqualFold(filepath.Base(name), member)
}

// limitedRead reads at most MAX_IMAGE_SIZE bytes.
func limitedRead(r io.Reader) (data []byte, err error) {
	data, err = io.ReadAll(io.LimitReader(r, MAX_IMAGE_SIZE+1))
	if err != nil {
		return
	}
	if len(data) > MAX_IMAGE_SIZE {
		data = nil
		err = ErrTooLarge
	}
	return
}

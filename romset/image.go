package romset

import (
	"slices"
)

// Interleave merges images of equal length, taking chunk bytes from each
// in turn. Boards with several ROM chips on a wide data bus store the
// chips' contents this way.
func Interleave(chunk int, images ...[]byte) (data []byte, err error) {
	if chunk <= 0 {
		err = ErrWidth
		return
	}
	if len(images) == 0 {
		return
	}

	size := len(images[0])
	for _, image := range images {
		if len(image) != size || size%chunk != 0 {
			err = ErrLength
			return
		}
	}

	data = make([]byte, 0, size*len(images))
	for offset := 0; offset < size; offset += chunk {
		for _, image := range images {
			data = append(data, image[offset:offset+chunk]...)
		}
	}

	return
}

// ByteSwap reverses the byte order of each width byte word.
func ByteSwap(data []byte, width int) (swapped []byte, err error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		err = ErrWidth
		return
	}
	if len(data)%width != 0 {
		err = ErrLength
		return
	}

	swapped = slices.Clone(data)
	for word := range slices.Chunk(swapped, width) {
		slices.Reverse(word)
	}

	return
}

package ppc

import (
	"math"
	"math/bits"
)

// Record returns the CR0 field for a result.
func Record(r uint32, so bool) (field uint32) {
	switch {
	case int32(r) < 0:
		field = CR_LT
	case r > 0:
		field = CR_GT
	default:
		field = CR_EQ
	}
	if so {
		field |= CR_SO
	}
	return
}

// CompareSigned returns the CR field for a signed comparison.
func CompareSigned(a, b int32, so bool) (field uint32) {
	switch {
	case a < b:
		field = CR_LT
	case a > b:
		field = CR_GT
	default:
		field = CR_EQ
	}
	if so {
		field |= CR_SO
	}
	return
}

// CompareUnsigned returns the CR field for an unsigned comparison.
func CompareUnsigned(a, b uint32, so bool) (field uint32) {
	switch {
	case a < b:
		field = CR_LT
	case a > b:
		field = CR_GT
	default:
		field = CR_EQ
	}
	if so {
		field |= CR_SO
	}
	return
}

// CompareFloat returns the CR field for a floating point comparison.
func CompareFloat(a, b float64) uint32 {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return CR_SO
	case a < b:
		return CR_LT
	case a > b:
		return CR_GT
	}
	return CR_EQ
}

// AddCarry adds with carry in, returning the carry out and signed overflow.
// Subtraction is a + ^b + 1.
func AddCarry(a, b, c uint32) (r uint32, ca bool, ov bool) {
	sum, carry := bits.Add32(a, b, c)
	r = sum
	ca = carry != 0
	ov = ((a^r)&(b^r))>>31 != 0
	return
}

// RotateMask returns the mask of bits mb through me, numbered from the
// most significant bit. A mask with mb > me wraps around.
func RotateMask(mb, me uint32) uint32 {
	begin := uint32(0xffffffff) >> (mb & 31)
	end := uint32(0xffffffff) << (31 - me&31)
	if mb&31 <= me&31 {
		return begin & end
	}
	return begin | end
}

// Trap returns true if the TO field condition holds for a and b.
func Trap(to uint32, a, b uint32) bool {
	sa, sb := int32(a), int32(b)
	return (to&0x10 != 0 && sa < sb) ||
		(to&0x08 != 0 && sa > sb) ||
		(to&0x04 != 0 && a == b) ||
		(to&0x02 != 0 && a < b) ||
		(to&0x01 != 0 && a > b)
}

// Floating point status and control register bits.
const (
	FPSCR_FX   = uint32(0x80000000) // Exception summary.
	FPSCR_VX   = uint32(0x20000000) // Invalid operation summary.
	FPSCR_ZX   = uint32(0x04000000) // Zero divide.
	FPSCR_FR   = uint32(0x00040000) // Fraction rounded.
	FPSCR_FI   = uint32(0x00020000) // Fraction inexact.
	FPSCR_FPRF = uint32(0x0001f000) // Result class and condition.
	FPSCR_RN   = uint32(0x00000003) // Rounding mode.
)

// ResultFlags returns the FPSCR[FPRF] class and condition bits for a result.
func ResultFlags(v float64) uint32 {
	var class uint32
	switch {
	case math.IsNaN(v):
		class = 0x11
	case math.IsInf(v, -1):
		class = 0x09
	case math.IsInf(v, 1):
		class = 0x05
	case v == 0 && math.Signbit(v):
		class = 0x12
	case v == 0:
		class = 0x02
	case math.Abs(v) < 0x1p-1022 && v < 0:
		class = 0x18
	case math.Abs(v) < 0x1p-1022:
		class = 0x14
	case v < 0:
		class = 0x08
	default:
		class = 0x04
	}
	return class << 12
}

// RoundToInt32 converts to a saturated signed word, in rounding mode rn.
func RoundToInt32(v float64, rn uint32) int32 {
	switch {
	case math.IsNaN(v):
		return math.MinInt32
	}

	switch rn & 3 {
	case 0:
		v = math.RoundToEven(v)
	case 1:
		v = math.Trunc(v)
	case 2:
		v = math.Ceil(v)
	case 3:
		v = math.Floor(v)
	}

	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

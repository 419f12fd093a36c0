package ppc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(CR_EQ, Record(0, false))
	assert.Equal(CR_GT, Record(1, false))
	assert.Equal(CR_LT|CR_SO, Record(0x80000000, true))

	assert.Equal(CR_LT, CompareSigned(-1, 0, false))
	assert.Equal(CR_GT, CompareUnsigned(0xffffffff, 0, false))
	assert.Equal(CR_EQ|CR_SO, CompareUnsigned(7, 7, true))

	assert.Equal(CR_SO, CompareFloat(math.NaN(), 1))
	assert.Equal(CR_LT, CompareFloat(-1, 1))
	assert.Equal(CR_EQ, CompareFloat(0, math.Copysign(0, -1)))
}

func TestAddCarry(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b, c uint32
		r       uint32
		ca, ov  bool
	}{
		{1, 2, 0, 3, false, false},
		{0xffffffff, 1, 0, 0, true, false},
		{0x7fffffff, 1, 0, 0x80000000, false, true},
		{0x80000000, 0x80000000, 0, 0, true, true},
		{0xffffffff, 0, 1, 0, true, false},
		// 5 - 3 as 5 + ^3 + 1
		{^uint32(3), 5, 1, 2, true, false},
		// 3 - 5 borrows
		{^uint32(5), 3, 1, 0xfffffffe, false, false},
	}

	for n, entry := range table {
		r, ca, ov := AddCarry(entry.a, entry.b, entry.c)
		assert.Equal(entry.r, r, "%d", n)
		assert.Equal(entry.ca, ca, "%d", n)
		assert.Equal(entry.ov, ov, "%d", n)
	}
}

func TestRotateMask(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0xffffffff), RotateMask(0, 31))
	assert.Equal(uint32(0x80000000), RotateMask(0, 0))
	assert.Equal(uint32(0x000000ff), RotateMask(24, 31))
	assert.Equal(uint32(0x00ffff00), RotateMask(8, 23))
	assert.Equal(uint32(0xff0000ff), RotateMask(24, 7))
}

func TestTrap(t *testing.T) {
	assert := assert.New(t)

	assert.True(Trap(0x10, 0xffffffff, 0))
	assert.False(Trap(0x02, 0xffffffff, 0))
	assert.True(Trap(0x01, 0xffffffff, 0))
	assert.True(Trap(0x04, 5, 5))
	assert.True(Trap(0x1f, 1, 2))
	assert.False(Trap(0x00, 1, 2))
}

func TestResultFlags(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0x04)<<12, ResultFlags(1.5))
	assert.Equal(uint32(0x08)<<12, ResultFlags(-1.5))
	assert.Equal(uint32(0x02)<<12, ResultFlags(0))
	assert.Equal(uint32(0x12)<<12, ResultFlags(math.Copysign(0, -1)))
	assert.Equal(uint32(0x11)<<12, ResultFlags(math.NaN()))
	assert.Equal(uint32(0x05)<<12, ResultFlags(math.Inf(1)))
	assert.Equal(uint32(0x14)<<12, ResultFlags(math.SmallestNonzeroFloat64))
}

func TestRoundToInt32(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		v  float64
		rn uint32
		r  int32
	}{
		{2.5, 0, 2},
		{3.5, 0, 4},
		{-2.7, 1, -2},
		{2.1, 2, 3},
		{-2.1, 3, -3},
		{1e20, 0, math.MaxInt32},
		{-1e20, 1, math.MinInt32},
		{math.NaN(), 0, math.MinInt32},
	}

	for _, entry := range table {
		assert.Equal(entry.r, RoundToInt32(entry.v, entry.rn), "%v rn=%d", entry.v, entry.rn)
	}
}

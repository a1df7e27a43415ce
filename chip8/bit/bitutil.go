package bit

import "iter"

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// Nibbles splits a 16 bit word into its four nibbles, most significant first.
func Nibbles(word uint16) [4]uint8 {
	return [4]uint8{
		uint8(word>>12) & 0xF,
		uint8(word>>8) & 0xF,
		uint8(word>>4) & 0xF,
		uint8(word) & 0xF,
	}
}

// Bits yields the 8 bits of b as booleans, most significant bit first.
// Each call returns a fresh sequence.
func Bits(b uint8) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 7; i >= 0; i-- {
			if !yield(IsSet(uint8(i), b)) {
				return
			}
		}
	}
}

// CheckedAdd adds two 8 bit unsigned values and detects if an overflow happened.
func CheckedAdd(a, b uint8) (result uint8, overflow bool) {
	overflow = (uint16(a)+uint16(b))&0xFF00 > 0
	result = a + b
	return
}

// CheckedSub subtracts two 8 bit unsigned values and detects if a borrow happened.
func CheckedSub(a, b uint8) (result uint8, borrow bool) {
	borrow = b > a
	result = a - b
	return
}

// IsSet will check if the bit at the specified index is Set to 1 or not.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value)
}

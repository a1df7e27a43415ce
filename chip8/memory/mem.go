package memory

import (
	"errors"
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

const (
	// Size is the total amount of addressable memory.
	Size = 0x1000
	// ProgramStart is where programs are loaded and where execution begins.
	ProgramStart uint16 = 0x200
	// StackReservedStart marks the top region historically used for the stack and display.
	StackReservedStart uint16 = 0xEA0
	// AvailableStorage is the room left for a program between ProgramStart and the reserved region.
	AvailableStorage = int(StackReservedStart - ProgramStart)
	// InstructionSize is the width in bytes of every instruction.
	InstructionSize uint16 = 2
	// FontAddress is where the hexadecimal glyphs are stored.
	FontAddress uint16 = 0x50
	// GlyphSize is the number of bytes (rows) of a single glyph.
	GlyphSize = 5
)

// ErrAddressOutOfRange is returned when PC or I would leave the range they are allowed in.
var ErrAddressOutOfRange = errors.New("address out of range")

// ROMTooBigError is returned when a program does not fit in the available storage.
type ROMTooBigError struct {
	Size      int
	Available int
}

func (e *ROMTooBigError) Error() string {
	return fmt.Sprintf("rom too big: %d bytes, %d available", e.Size, e.Available)
}

var fontSet = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory holds the 4K address space together with the two address registers, PC and I.
type Memory struct {
	ram [Size]byte
	pc  uint16
	i   uint16
}

// New returns memory with the font loaded, PC at the program start and I at the font.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes memory, reloads the font and restores PC and I.
func (m *Memory) Reset() {
	clear(m.ram[:])
	copy(m.ram[FontAddress:], fontSet[:])
	m.pc = ProgramStart
	m.i = FontAddress
}

// LoadProgram copies rom at ProgramStart. Nothing is written if it does not fit.
func (m *Memory) LoadProgram(rom []byte) error {
	if len(rom) >= AvailableStorage {
		return &ROMTooBigError{Size: len(rom), Available: AvailableStorage}
	}
	copy(m.ram[ProgramStart:], rom)
	return nil
}

// Read returns the byte at addr. Addresses wrap around the 4K space.
func (m *Memory) Read(addr uint16) byte {
	return m.ram[addr%Size]
}

// Fetch reads the big-endian instruction word at PC and advances PC past it.
func (m *Memory) Fetch() (uint16, error) {
	if int(m.pc)+1 >= Size {
		return 0, fmt.Errorf("%w: fetch at 0x%03X", ErrAddressOutOfRange, m.pc)
	}
	word := bit.Combine(m.ram[m.pc], m.ram[m.pc+1])
	m.pc += InstructionSize
	return word, nil
}

func (m *Memory) PC() uint16 {
	return m.pc
}

// SetPC jumps to addr, which must lie within the program area.
func (m *Memory) SetPC(addr uint16) error {
	if addr < ProgramStart || addr > StackReservedStart {
		return fmt.Errorf("%w: pc 0x%03X", ErrAddressOutOfRange, addr)
	}
	m.pc = addr
	return nil
}

// SkipNext moves PC past the next instruction.
func (m *Memory) SkipNext() {
	m.pc += InstructionSize
}

// Rewind moves PC back to the instruction that was just fetched.
func (m *Memory) Rewind() {
	m.pc -= InstructionSize
}

func (m *Memory) Index() uint16 {
	return m.i
}

// SetIndex points I at addr.
func (m *Memory) SetIndex(addr uint16) error {
	if addr >= Size {
		return fmt.Errorf("%w: index 0x%X", ErrAddressOutOfRange, addr)
	}
	m.i = addr
	return nil
}

// PointToGlyph points I at the glyph of a hexadecimal digit. With mask set only
// the low nibble of digit is used, otherwise digits over 0xF are rejected.
func (m *Memory) PointToGlyph(digit uint8, mask bool) error {
	if mask {
		digit &= 0xF
	} else if digit > 0xF {
		return fmt.Errorf("%w: no glyph for 0x%02X", ErrAddressOutOfRange, digit)
	}
	m.i = FontAddress + uint16(digit)*GlyphSize
	return nil
}

// AddIndex adds v to I, wrapping to 12 bits. It reports whether I left the address space.
func (m *Memory) AddIndex(v uint8) (overflow bool) {
	sum := m.i + uint16(v)
	m.i = sum % Size
	return sum >= Size
}

// AdvanceIndex moves I forward by n, wrapping to 12 bits.
func (m *Memory) AdvanceIndex(n uint16) {
	m.i = (m.i + n) % Size
}

func (m *Memory) window(n int) (int, error) {
	start := int(m.i)
	if start+n > Size {
		return 0, fmt.Errorf("%w: %d bytes at 0x%03X", ErrAddressOutOfRange, n, m.i)
	}
	return start, nil
}

// ReadBytes returns a copy of the n bytes starting at I.
func (m *Memory) ReadBytes(n int) ([]byte, error) {
	start, err := m.window(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.ram[start:start+n])
	return out, nil
}

// WriteBytes copies b to memory starting at I. I is left unchanged.
func (m *Memory) WriteBytes(b []byte) error {
	start, err := m.window(len(b))
	if err != nil {
		return err
	}
	copy(m.ram[start:], b)
	return nil
}

// StoreBCD writes the decimal digits of v at I, I+1 and I+2.
func (m *Memory) StoreBCD(v uint8) error {
	digits := BCD(v)
	return m.WriteBytes(digits[:])
}

// BCD splits v into hundreds, tens and units.
func BCD(v uint8) [3]uint8 {
	return [3]uint8{v / 100, (v / 10) % 10, v % 10}
}

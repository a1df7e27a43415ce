package cpu

import (
	"errors"
	"fmt"

	"github.com/valerio/go-chip8/chip8/bit"
)

var (
	ErrUnknownOpcode    = errors.New("unknown opcode")
	ErrDeprecatedOpcode = errors.New("machine code routines (0NNN) are not supported")
)

// Kind identifies a decoded instruction.
type Kind uint8

const (
	Invalid          Kind = iota
	Sys                   // 0NNN
	ClearScreen           // 00E0
	Return                // 00EE
	Jump                  // 1NNN
	Call                  // 2NNN
	SkipEqualByte         // 3XNN
	SkipNotEqualByte      // 4XNN
	SkipEqualReg          // 5XY0
	LoadByte              // 6XNN
	AddByte               // 7XNN
	LoadReg               // 8XY0
	Or                    // 8XY1
	And                   // 8XY2
	Xor                   // 8XY3
	AddReg                // 8XY4
	Sub                   // 8XY5
	ShiftRight            // 8XY6
	SubN                  // 8XY7
	ShiftLeft             // 8XYE
	SkipNotEqualReg       // 9XY0
	LoadIndex             // ANNN
	JumpOffset            // BNNN
	Random                // CXNN
	Draw                  // DXYN
	SkipKeyDown           // EX9E
	SkipKeyUp             // EXA1
	LoadDelay             // FX07
	WaitKey               // FX0A
	SetDelay              // FX15
	SetSound              // FX18
	AddIndex              // FX1E
	LoadGlyph             // FX29
	StoreBCD              // FX33
	StoreRegisters        // FX55
	LoadRegisters         // FX65
)

// Instruction is a decoded opcode. Only the operands relevant to Kind are meaningful.
type Instruction struct {
	Kind   Kind
	Opcode uint16
	X      uint8
	Y      uint8
	N      uint8
	NN     uint8
	NNN    uint16
}

// Decode turns an opcode into an Instruction.
func Decode(word uint16) (Instruction, error) {
	n := bit.Nibbles(word)
	in := Instruction{
		Opcode: word,
		X:      n[1],
		Y:      n[2],
		N:      n[3],
		NN:     bit.Low(word),
		NNN:    word & 0x0FFF,
	}

	switch n[0] {
	case 0x0:
		switch word {
		case 0x00E0:
			in.Kind = ClearScreen
		case 0x00EE:
			in.Kind = Return
		default:
			in.Kind = Sys
			return in, fmt.Errorf("%w: 0x%04X", ErrDeprecatedOpcode, word)
		}
	case 0x1:
		in.Kind = Jump
	case 0x2:
		in.Kind = Call
	case 0x3:
		in.Kind = SkipEqualByte
	case 0x4:
		in.Kind = SkipNotEqualByte
	case 0x5:
		if in.N == 0 {
			in.Kind = SkipEqualReg
		}
	case 0x6:
		in.Kind = LoadByte
	case 0x7:
		in.Kind = AddByte
	case 0x8:
		switch in.N {
		case 0x0:
			in.Kind = LoadReg
		case 0x1:
			in.Kind = Or
		case 0x2:
			in.Kind = And
		case 0x3:
			in.Kind = Xor
		case 0x4:
			in.Kind = AddReg
		case 0x5:
			in.Kind = Sub
		case 0x6:
			in.Kind = ShiftRight
		case 0x7:
			in.Kind = SubN
		case 0xE:
			in.Kind = ShiftLeft
		}
	case 0x9:
		if in.N == 0 {
			in.Kind = SkipNotEqualReg
		}
	case 0xA:
		in.Kind = LoadIndex
	case 0xB:
		in.Kind = JumpOffset
	case 0xC:
		in.Kind = Random
	case 0xD:
		in.Kind = Draw
	case 0xE:
		switch in.NN {
		case 0x9E:
			in.Kind = SkipKeyDown
		case 0xA1:
			in.Kind = SkipKeyUp
		}
	case 0xF:
		switch in.NN {
		case 0x07:
			in.Kind = LoadDelay
		case 0x0A:
			in.Kind = WaitKey
		case 0x15:
			in.Kind = SetDelay
		case 0x18:
			in.Kind = SetSound
		case 0x1E:
			in.Kind = AddIndex
		case 0x29:
			in.Kind = LoadGlyph
		case 0x33:
			in.Kind = StoreBCD
		case 0x55:
			in.Kind = StoreRegisters
		case 0x65:
			in.Kind = LoadRegisters
		}
	}

	if in.Kind == Invalid {
		return in, fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, word)
	}
	return in, nil
}

// String renders the instruction in the conventional assembly syntax.
func (in Instruction) String() string {
	switch in.Kind {
	case Sys:
		return fmt.Sprintf("SYS 0x%03X", in.NNN)
	case ClearScreen:
		return "CLS"
	case Return:
		return "RET"
	case Jump:
		return fmt.Sprintf("JP 0x%03X", in.NNN)
	case Call:
		return fmt.Sprintf("CALL 0x%03X", in.NNN)
	case SkipEqualByte:
		return fmt.Sprintf("SE V%X, 0x%02X", in.X, in.NN)
	case SkipNotEqualByte:
		return fmt.Sprintf("SNE V%X, 0x%02X", in.X, in.NN)
	case SkipEqualReg:
		return fmt.Sprintf("SE V%X, V%X", in.X, in.Y)
	case LoadByte:
		return fmt.Sprintf("LD V%X, 0x%02X", in.X, in.NN)
	case AddByte:
		return fmt.Sprintf("ADD V%X, 0x%02X", in.X, in.NN)
	case LoadReg:
		return fmt.Sprintf("LD V%X, V%X", in.X, in.Y)
	case Or:
		return fmt.Sprintf("OR V%X, V%X", in.X, in.Y)
	case And:
		return fmt.Sprintf("AND V%X, V%X", in.X, in.Y)
	case Xor:
		return fmt.Sprintf("XOR V%X, V%X", in.X, in.Y)
	case AddReg:
		return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y)
	case Sub:
		return fmt.Sprintf("SUB V%X, V%X", in.X, in.Y)
	case ShiftRight:
		return fmt.Sprintf("SHR V%X, V%X", in.X, in.Y)
	case SubN:
		return fmt.Sprintf("SUBN V%X, V%X", in.X, in.Y)
	case ShiftLeft:
		return fmt.Sprintf("SHL V%X, V%X", in.X, in.Y)
	case SkipNotEqualReg:
		return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y)
	case LoadIndex:
		return fmt.Sprintf("LD I, 0x%03X", in.NNN)
	case JumpOffset:
		return fmt.Sprintf("JP V0, 0x%03X", in.NNN)
	case Random:
		return fmt.Sprintf("RND V%X, 0x%02X", in.X, in.NN)
	case Draw:
		return fmt.Sprintf("DRW V%X, V%X, 0x%X", in.X, in.Y, in.N)
	case SkipKeyDown:
		return fmt.Sprintf("SKP V%X", in.X)
	case SkipKeyUp:
		return fmt.Sprintf("SKNP V%X", in.X)
	case LoadDelay:
		return fmt.Sprintf("LD V%X, DT", in.X)
	case WaitKey:
		return fmt.Sprintf("LD V%X, K", in.X)
	case SetDelay:
		return fmt.Sprintf("LD DT, V%X", in.X)
	case SetSound:
		return fmt.Sprintf("LD ST, V%X", in.X)
	case AddIndex:
		return fmt.Sprintf("ADD I, V%X", in.X)
	case LoadGlyph:
		return fmt.Sprintf("LD F, V%X", in.X)
	case StoreBCD:
		return fmt.Sprintf("LD B, V%X", in.X)
	case StoreRegisters:
		return fmt.Sprintf("LD [I], V%X", in.X)
	case LoadRegisters:
		return fmt.Sprintf("LD V%X, [I]", in.X)
	default:
		return fmt.Sprintf("DW 0x%04X", in.Opcode)
	}
}

package cpu

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/memory"
)

func (c *CPU) execute(in Instruction) {
	x, y := in.X, in.Y
	vx, vy := c.v.Get(x), c.v.Get(y)

	switch in.Kind {
	case ClearScreen:
		c.display.Clear()
		c.redraw = true
	case Return:
		addr, err := c.stack.Pop()
		if err != nil {
			c.fault(err)
		}
		c.jump(addr)
	case Jump:
		c.jump(in.NNN)
	case Call:
		if err := c.stack.Push(c.mem.PC()); err != nil {
			c.fault(err)
		}
		c.jump(in.NNN)
	case SkipEqualByte:
		c.skipIf(vx == in.NN)
	case SkipNotEqualByte:
		c.skipIf(vx != in.NN)
	case SkipEqualReg:
		c.skipIf(vx == vy)
	case SkipNotEqualReg:
		c.skipIf(vx != vy)
	case LoadByte:
		c.v.Set(x, in.NN)
	case AddByte:
		c.v.Set(x, vx+in.NN)
	case LoadReg:
		c.v.Set(x, vy)
	case Or:
		c.logic(x, vx|vy)
	case And:
		c.logic(x, vx&vy)
	case Xor:
		c.logic(x, vx^vy)
	case AddReg:
		result, carry := bit.CheckedAdd(vx, vy)
		c.v.Set(x, result)
		c.v.SetFlag(carry)
	case Sub:
		result, borrow := bit.CheckedSub(vx, vy)
		c.v.Set(x, result)
		c.v.SetFlag(!borrow)
	case SubN:
		result, borrow := bit.CheckedSub(vy, vx)
		c.v.Set(x, result)
		c.v.SetFlag(!borrow)
	case ShiftRight:
		src := c.shiftSource(vx, vy)
		c.v.Set(x, src>>1)
		c.v.SetFlag(bit.IsSet(0, src))
	case ShiftLeft:
		src := c.shiftSource(vx, vy)
		c.v.Set(x, src<<1)
		c.v.SetFlag(bit.IsSet(7, src))
	case LoadIndex:
		if err := c.mem.SetIndex(in.NNN); err != nil {
			c.fault(err)
		}
	case JumpOffset:
		offset := c.v.Get(0)
		if c.quirks.JumpUsesVX {
			offset = vx
		}
		c.jump(in.NNN + uint16(offset))
	case Random:
		c.v.Set(x, uint8(c.rng.UintN(256))&in.NN)
	case Draw:
		sprite, err := c.mem.ReadBytes(int(in.N))
		if err != nil {
			c.fault(err)
		}
		collision := c.display.Draw(vx, vy, sprite)
		c.v.SetFlag(collision)
		c.redraw = true
	case SkipKeyDown:
		c.skipIf(c.keyDown(vx))
	case SkipKeyUp:
		c.skipIf(!c.keyDown(vx))
	case LoadDelay:
		c.v.Set(x, c.delay.Load())
	case WaitKey:
		key, ok := c.keys.AnyPressed()
		if !ok {
			c.state = PausedAwaitingKey
			c.mem.Rewind()
			return
		}
		c.v.Set(x, key)
	case SetDelay:
		c.delay.Store(vx)
	case SetSound:
		if err := c.sound.Store(vx); err != nil {
			c.fault(err)
		}
	case AddIndex:
		overflow := c.mem.AddIndex(vx)
		if c.quirks.IndexOverflowFlag {
			c.v.SetFlag(overflow)
		} else if overflow {
			c.fault(memory.ErrAddressOutOfRange)
		}
	case LoadGlyph:
		if err := c.mem.PointToGlyph(vx, c.quirks.MaskFontDigit); err != nil {
			c.fault(err)
		}
	case StoreBCD:
		if err := c.mem.StoreBCD(vx); err != nil {
			c.fault(err)
		}
	case StoreRegisters:
		if err := c.mem.WriteBytes(c.v.Range(x)); err != nil {
			c.fault(err)
		}
		c.advanceIndexAfterTransfer(x)
	case LoadRegisters:
		values, err := c.mem.ReadBytes(int(x) + 1)
		if err != nil {
			c.fault(err)
		}
		c.v.Load(values)
		c.advanceIndexAfterTransfer(x)
	default:
		c.fault(ErrUnknownOpcode)
	}
}

func (c *CPU) jump(addr uint16) {
	if err := c.mem.SetPC(addr); err != nil {
		c.fault(err)
	}
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.mem.SkipNext()
	}
}

// logic stores the result of a bitwise operation, clearing VF on interpreters that did.
func (c *CPU) logic(x, result uint8) {
	c.v.Set(x, result)
	if c.quirks.LogicResetsFlag {
		c.v.SetFlag(false)
	}
}

func (c *CPU) shiftSource(vx, vy uint8) uint8 {
	if c.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

func (c *CPU) keyDown(key uint8) bool {
	if key >= memory.KeyCount {
		c.fault(ErrInvalidKey)
	}
	return c.keys.IsDown(key)
}

func (c *CPU) advanceIndexAfterTransfer(x uint8) {
	if c.quirks.LoadStoreIncrementsIndex {
		c.mem.AdvanceIndex(uint16(x) + 1)
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the instruction set behaviour and display resolution of the machine.
type Mode int

const (
	// Classic follows the original COSMAC VIP interpreter.
	Classic Mode = iota
	// Modern follows the behaviour most contemporary ROMs expect.
	Modern
	// Extended is Modern with the 128x64 high resolution display.
	Extended
)

const (
	// DefaultClockHz is the default number of instructions executed per second.
	DefaultClockHz = 540
	// FrameRate is the rate at which timers tick and frames are presented.
	FrameRate = 60

	lowResWidth   = 64
	lowResHeight  = 32
	highResWidth  = 128
	highResHeight = 64
)

var ErrInvalidClock = errors.New("clock must be at least one instruction per second")

func (m Mode) String() string {
	switch m {
	case Classic:
		return "classic"
	case Modern:
		return "modern"
	case Extended:
		return "extended"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name, case insensitive, to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classic", "original", "cosmac":
		return Classic, nil
	case "modern", "":
		return Modern, nil
	case "extended", "chip48", "hires":
		return Extended, nil
	default:
		return Modern, fmt.Errorf("unknown mode %q (expected classic, modern or extended)", name)
	}
}

// Quirks toggles the individual behaviours that differ between interpreters.
type Quirks struct {
	// JumpUsesVX makes BNNN jump to XNN + VX instead of NNN + V0.
	JumpUsesVX bool
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting VX in place.
	ShiftUsesVY bool
	// MaskFontDigit makes FX29 use the low nibble of VX instead of rejecting values over 0xF.
	MaskFontDigit bool
	// IndexOverflowFlag makes FX1E set VF when I leaves the addressable range.
	IndexOverflowFlag bool
	// LoadStoreIncrementsIndex makes FX55 and FX65 leave I pointing past the last register.
	LoadStoreIncrementsIndex bool
	// LogicResetsFlag makes 8XY1, 8XY2 and 8XY3 clear VF.
	LogicResetsFlag bool
}

// QuirksFor returns the quirk preset of a mode.
func QuirksFor(m Mode) Quirks {
	switch m {
	case Classic:
		return Quirks{
			ShiftUsesVY:              true,
			MaskFontDigit:            true,
			LoadStoreIncrementsIndex: true,
			LogicResetsFlag:          true,
		}
	default:
		return Quirks{
			JumpUsesVX: true,
		}
	}
}

// Config holds the machine configuration.
type Config struct {
	Mode    Mode
	Quirks  Quirks
	ClockHz int
	// Seed feeds the random number generator used by CXNN. Zero picks a random seed.
	Seed uint64
}

// Default returns the configuration for the given mode with its quirk preset.
func Default(m Mode) Config {
	return Config{
		Mode:    m,
		Quirks:  QuirksFor(m),
		ClockHz: DefaultClockHz,
	}
}

// DisplaySize returns the framebuffer dimensions for the configured mode.
func (c Config) DisplaySize() (width, height int) {
	if c.Mode == Extended {
		return highResWidth, highResHeight
	}
	return lowResWidth, lowResHeight
}

// CyclesPerFrame returns how many instructions run between two frames, at least one.
func (c Config) CyclesPerFrame() int {
	n := c.ClockHz / FrameRate
	if n < 1 {
		return 1
	}
	return n
}

// Validate reports configuration values that cannot be run.
func (c Config) Validate() error {
	if c.Mode < Classic || c.Mode > Extended {
		return fmt.Errorf("invalid mode %d", int(c.Mode))
	}
	if c.ClockHz < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidClock, c.ClockHz)
	}
	return nil
}

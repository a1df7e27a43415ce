package cpu

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/valerio/go-chip8/chip8/config"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// State is the run-state of the CPU.
type State int

const (
	// Running executes instructions continuously.
	Running State = iota
	// Step executes one instruction at a time, on request of the host.
	Step
	// PausedAwaitingKey blocks on FX0A until a key is pressed.
	PausedAwaitingKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Step:
		return "step"
	case PausedAwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrInvalidKey = errors.New("key index out of range")

// Fault is raised, as a panic, when the program does something the machine
// cannot continue from: a bad opcode, a stack overflow, an address out of range.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at 0x%03X (opcode 0x%04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// CPU holds the complete machine state and executes instructions.
type CPU struct {
	quirks config.Quirks

	v       Registers
	stack   Stack
	mem     *memory.Memory
	keys    *memory.Keypad
	delay   *memory.DelayTimer
	sound   memory.SoundTimer
	display *video.Display
	rng     *rand.Rand

	// metadata
	state         State
	redraw        bool
	currentOpcode uint16
	instructionPC uint16
	cycles        uint64
}

// New returns a CPU in its initial state, ready for a program to be loaded.
func New(cfg config.Config) *CPU {
	width, height := cfg.DisplaySize()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &CPU{
		quirks:  cfg.Quirks,
		mem:     memory.New(),
		keys:    memory.NewKeypad(),
		delay:   memory.NewDelayTimer(time.Now),
		display: video.NewDisplay(width, height),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		state:   Running,
		redraw:  true,
	}
}

// Reset puts every component back in its initial state. The loaded program is lost.
func (c *CPU) Reset() {
	c.v.Reset()
	c.stack.Reset()
	c.mem.Reset()
	c.keys.Reset()
	c.delay.Reset()
	c.sound.Reset()
	c.display.Clear()
	c.state = Running
	c.redraw = true
	c.currentOpcode = 0
	c.instructionPC = 0
	c.cycles = 0
}

// LoadGame copies a program into memory at the program start address.
func (c *CPU) LoadGame(rom []byte) error {
	return c.mem.LoadProgram(rom)
}

// Exec executes a single instruction and reports whether the display changed.
// Nothing happens while the CPU is waiting for a key. Unrecoverable program
// errors panic with a *Fault.
func (c *CPU) Exec() bool {
	if c.state == PausedAwaitingKey {
		return false
	}

	c.redraw = false
	c.instructionPC = c.mem.PC()

	word, err := c.mem.Fetch()
	if err != nil {
		c.fault(err)
	}
	c.currentOpcode = word

	instruction, err := Decode(word)
	if err != nil {
		c.fault(err)
	}

	c.execute(instruction)
	c.sound.Decrease()
	c.cycles++

	return c.redraw
}

func (c *CPU) fault(err error) {
	panic(&Fault{PC: c.instructionPC, Opcode: c.currentOpcode, Err: err})
}

// SetKey updates the state of one of the 16 keys.
func (c *CPU) SetKey(key uint8, pressed bool) {
	c.keys.Set(key, pressed)
}

// Framebuffer returns a read-only view of the display.
func (c *CPU) Framebuffer() video.View {
	return c.display
}

// Redraw reports whether the last executed instruction changed the display.
func (c *CPU) Redraw() bool {
	return c.redraw
}

func (c *CPU) State() State {
	return c.state
}

func (c *CPU) SetState(s State) {
	c.state = s
}

// Sounding reports whether the buzzer is on.
func (c *CPU) Sounding() bool {
	return c.sound.Active()
}

func (c *CPU) GetPC() uint16 {
	return c.mem.PC()
}

func (c *CPU) GetI() uint16 {
	return c.mem.Index()
}

func (c *CPU) GetV(x uint8) uint8 {
	return c.v.Get(x)
}

func (c *CPU) GetCycles() uint64 {
	return c.cycles
}

func (c *CPU) GetDelay() uint8 {
	return c.delay.Peek()
}

func (c *CPU) GetSound() uint8 {
	return c.sound.Value()
}

func (c *CPU) GetStackDepth() int {
	return c.stack.Len()
}

// CurrentOpcode returns the opcode of the instruction executed last.
func (c *CPU) CurrentOpcode() uint16 {
	return c.currentOpcode
}

// RegisterDump renders V0-VF, I and PC on a single line.
func (c *CPU) RegisterDump() string {
	return fmt.Sprintf("%s I=%03X PC=%03X", c.v.String(), c.mem.Index(), c.mem.PC())
}

// Peek returns the byte at addr without side effects.
func (c *CPU) Peek(addr uint16) byte {
	return c.mem.Read(addr)
}

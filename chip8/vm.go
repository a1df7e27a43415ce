package chip8

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-chip8/chip8/config"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

//go:embed roms/ibm_logo.ch8
var ibmLogo []byte

// DefaultROM returns a copy of the bundled IBM logo program.
func DefaultROM() []byte {
	return append([]byte(nil), ibmLogo...)
}

// debugWindow is the number of memory bytes around PC exposed to debug panels.
const debugWindow = 32

// VM wraps the CPU with everything a host needs: frame pacing, fault capture,
// pause and single step, reset and a coloured frame buffer.
type VM struct {
	cpu     *cpu.CPU
	cfg     config.Config
	rom     []byte
	frame   *video.FrameBuffer
	palette video.Palette
	limiter timing.Limiter

	paused bool
	dirty  bool
	fault  error

	frameCount       uint64
	instructionCount uint64
}

// New creates a VM running the bundled IBM logo program.
func New(cfg config.Config) (*VM, error) {
	return NewWithROM(cfg, ibmLogo)
}

// NewWithFile creates a VM and loads the program at path into it.
func NewWithFile(cfg config.Config, path string) (*VM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	slog.Info("Loaded ROM", "path", path, "bytes", len(data))

	return NewWithROM(cfg, data)
}

// NewWithROM creates a VM with rom loaded at the program start address.
func NewWithROM(cfg config.Config, rom []byte) (*VM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	width, height := cfg.DisplaySize()
	v := &VM{
		cpu:     cpu.New(cfg),
		cfg:     cfg,
		rom:     append([]byte(nil), rom...),
		frame:   video.NewFrameBuffer(uint(width), uint(height)),
		palette: video.DefaultPalette,
		limiter: timing.NewAdaptiveLimiter(),
	}

	if err := v.cpu.LoadGame(v.rom); err != nil {
		return nil, err
	}
	v.dirty = v.cpu.Redraw()

	slog.Debug("VM ready", "mode", cfg.Mode, "clock_hz", cfg.ClockHz, "quirks", fmt.Sprintf("%+v", cfg.Quirks))

	return v, nil
}

// RunUntilFrame executes one frame worth of instructions, refreshes the frame
// buffer and waits for the frame limiter. Once the program has faulted the
// fault is returned and nothing else runs.
func (v *VM) RunUntilFrame() error {
	if v.fault != nil {
		return v.fault
	}

	if v.cpu.State() == cpu.Running {
		for range v.cfg.CyclesPerFrame() {
			if !v.step() || v.cpu.State() != cpu.Running {
				break
			}
		}
	}

	v.present()
	v.frameCount++
	v.limiter.WaitForNextFrame()

	return v.fault
}

// step executes a single instruction. A *cpu.Fault raised by the CPU is
// latched and reported as false, any other panic is not ours to handle.
func (v *VM) step() (ok bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		fault, isFault := r.(*cpu.Fault)
		if !isFault {
			panic(r)
		}

		slog.Error("CPU fault",
			"pc", fmt.Sprintf("0x%03X", fault.PC),
			"opcode", fmt.Sprintf("0x%04X", fault.Opcode),
			"instruction", disassemble(fault.Opcode),
			"error", fault.Err,
			"registers", v.cpu.RegisterDump())

		v.fault = fault
		ok = false
	}()

	if v.cpu.Exec() {
		v.dirty = true
	}
	v.instructionCount++

	return true
}

func disassemble(opcode uint16) string {
	in, err := cpu.Decode(opcode)
	if err != nil {
		return "??"
	}
	return in.String()
}

func (v *VM) present() {
	if !v.dirty {
		return
	}
	v.frame.Blit(v.cpu.Framebuffer(), v.palette)
	v.dirty = false
}

// GetCurrentFrame returns the frame buffer as of the last RunUntilFrame.
func (v *VM) GetCurrentFrame() *video.FrameBuffer {
	return v.frame
}

// HandleKey implements input.KeySink. Pressing a key while the program waits
// for one resumes execution.
func (v *VM) HandleKey(key uint8, pressed bool) {
	v.cpu.SetKey(key, pressed)

	if pressed && v.cpu.State() == cpu.PausedAwaitingKey {
		v.cpu.SetState(v.runState())
	}
}

// HandleAction applies an input action to the machine.
func (v *VM) HandleAction(act action.Action, pressed bool) {
	if key, ok := action.KeypadKey(act); ok {
		v.HandleKey(key, pressed)
		return
	}

	if !pressed {
		return
	}

	switch act {
	case action.EmulatorPauseToggle:
		v.TogglePause()
	case action.EmulatorStepInstruction:
		v.StepInstruction()
	case action.EmulatorReset:
		if err := v.Reset(); err != nil {
			slog.Error("Reset failed", "error", err)
		}
	}
}

func (v *VM) runState() cpu.State {
	if v.paused {
		return cpu.Step
	}
	return cpu.Running
}

// TogglePause switches between free running and single step execution.
// A pending key wait is kept, the new mode applies once it is satisfied.
func (v *VM) TogglePause() {
	v.paused = !v.paused
	slog.Info("Execution mode changed", "paused", v.paused)

	if v.cpu.State() == cpu.PausedAwaitingKey {
		return
	}
	v.cpu.SetState(v.runState())
}

// Paused reports whether the VM is in single step mode.
func (v *VM) Paused() bool {
	return v.paused
}

// StepInstruction executes exactly one instruction while in single step mode.
// It reports whether an instruction was executed.
func (v *VM) StepInstruction() bool {
	if v.fault != nil || v.cpu.State() != cpu.Step {
		return false
	}

	if !v.step() {
		return false
	}

	slog.Debug("Step", "pc", fmt.Sprintf("0x%03X", v.cpu.GetPC()), "registers", v.cpu.RegisterDump())
	return true
}

// Reset restarts the loaded program from a clean machine and clears any fault.
func (v *VM) Reset() error {
	v.cpu.Reset()
	if err := v.cpu.LoadGame(v.rom); err != nil {
		return err
	}

	v.cpu.SetState(v.runState())
	v.fault = nil
	v.dirty = v.cpu.Redraw()
	v.limiter.Reset()

	slog.Info("VM reset")
	return nil
}

// SetFrameLimiter replaces the frame limiter. A nil limiter disables pacing.
func (v *VM) SetFrameLimiter(l timing.Limiter) {
	if l == nil {
		l = timing.NewNoOpLimiter()
	}
	v.limiter = l
}

// SetPalette changes the colours of lit and unlit pixels.
func (v *VM) SetPalette(p video.Palette) {
	v.palette = p
	v.dirty = true
}

func (v *VM) Config() config.Config {
	return v.cfg
}

// Sounding reports whether the buzzer is on.
func (v *VM) Sounding() bool {
	return v.cpu.Sounding()
}

func (v *VM) State() cpu.State {
	return v.cpu.State()
}

// Fault returns the latched fault, or nil while the program is healthy.
func (v *VM) Fault() error {
	return v.fault
}

// Faulted reports whether err came from a faulting program.
func Faulted(err error) bool {
	var fault *cpu.Fault
	return errors.As(err, &fault)
}

func (v *VM) GetFrameCount() uint64 {
	return v.frameCount
}

func (v *VM) GetInstructionCount() uint64 {
	return v.instructionCount
}

// Peek returns the byte at addr without side effects.
func (v *VM) Peek(addr uint16) uint8 {
	return v.cpu.Peek(addr)
}

// ExtractDebugData collects the machine state shown by debug panels.
func (v *VM) ExtractDebugData() *debug.CompleteDebugData {
	state := &debug.CPUState{
		I:          v.cpu.GetI(),
		PC:         v.cpu.GetPC(),
		Opcode:     v.cpu.CurrentOpcode(),
		DelayTimer: v.cpu.GetDelay(),
		SoundTimer: v.cpu.GetSound(),
		StackDepth: v.cpu.GetStackDepth(),
		Cycles:     v.cpu.GetCycles(),
	}
	for x := range state.V {
		state.V[x] = v.cpu.GetV(uint8(x))
	}

	return &debug.CompleteDebugData{
		CPU:           state,
		Memory:        debug.SnapshotAround(v.cpu, state.PC, debugWindow),
		DebuggerState: v.debuggerState(),
		Sounding:      v.cpu.Sounding(),
	}
}

func (v *VM) debuggerState() debug.DebuggerState {
	switch {
	case v.fault != nil:
		return debug.DebuggerFaulted
	case v.cpu.State() == cpu.PausedAwaitingKey:
		return debug.DebuggerAwaitingKey
	case v.cpu.State() == cpu.Step:
		return debug.DebuggerPaused
	default:
		return debug.DebuggerRunning
	}
}

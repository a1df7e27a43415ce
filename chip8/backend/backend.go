package backend

import (
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend represents a complete emulator platform (rendering + input + buzzer)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, log panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame and returns the input events collected since the last call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Beeper is implemented by backends that can signal the buzzer.
type Beeper interface {
	SetBeep(on bool)
}

// ActionHandler is implemented by backends that react to emulator actions themselves,
// e.g. saving a snapshot of what they last rendered.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// InputEvent is a single input action reported by a backend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// DebugDataProvider exposes emulator state to debug panels.
type DebugDataProvider interface {
	ExtractDebugData() *debug.CompleteDebugData
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title      string
	Scale      int
	VSync      bool
	Fullscreen bool
	ShowDebug  bool             // Backends may ignore unsupported features
	Width      int              // Emulated display width in pixels
	Height     int              // Emulated display height in pixels
	Palette    video.Palette    // Colours used for the frame, needed to decode it
	Callbacks  BackendCallbacks // Callbacks for backend communication

	DebugProvider DebugDataProvider // Source of register and disassembly panels, may be nil
}

// BackendCallbacks allows backends to communicate with the emulator
type BackendCallbacks struct {
	// OnQuit is called when the backend requests shutdown (e.g., window close)
	OnQuit func()
}

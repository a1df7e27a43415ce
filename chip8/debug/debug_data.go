package debug

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V [16]uint8
	I uint16

	PC         uint16
	Opcode     uint16
	DelayTimer uint8
	SoundTimer uint8
	StackDepth int
	Cycles     uint64
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerAwaitingKey
	DebuggerFaulted
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerAwaitingKey:
		return "WAIT KEY"
	case DebuggerFaulted:
		return "FAULT"
	default:
		return "RUNNING"
	}
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	CPU           *CPUState
	Memory        *MemorySnapshot
	DebuggerState DebuggerState
	Sounding      bool
}

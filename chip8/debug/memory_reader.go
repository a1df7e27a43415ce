package debug

// MemoryReader provides read-only access to emulator memory for debug tools
type MemoryReader interface {
	// Peek reads a single byte from the specified address without side effects
	Peek(addr uint16) uint8
}

// SnapshotAround copies a window of memory centred on addr. The window is
// aligned to instruction boundaries relative to addr and clamped to the address space.
func SnapshotAround(reader MemoryReader, addr uint16, size int) *MemorySnapshot {
	const memSize = 0x1000

	start := int(addr) - size/2
	start -= (start - int(addr)) % 2
	if start < 0 {
		start = int(addr) % 2
	}
	end := start + size
	if end > memSize {
		end = memSize
	}

	snap := &MemorySnapshot{
		StartAddr: uint16(start),
		Bytes:     make([]uint8, 0, end-start),
	}
	for a := start; a < end; a++ {
		snap.Bytes = append(snap.Bytes, reader.Peek(uint16(a)))
	}
	return snap
}

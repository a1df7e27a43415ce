package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMemory map[uint16]uint8

func (m fakeMemory) Peek(addr uint16) uint8 {
	return m[addr]
}

func TestDisassemble(t *testing.T) {
	assert.Equal(t, "CLS", Disassemble(0x00E0))
	assert.Equal(t, "DRW V0, V1, 0xF", Disassemble(0xD01F))
	assert.Equal(t, "SYS 0x123", Disassemble(0x0123))
	assert.Equal(t, "DW 0xFFFF", Disassemble(0xFFFF))
}

func TestCreateDisassembly(t *testing.T) {
	snap := &MemorySnapshot{
		StartAddr: 0x200,
		Bytes:     []uint8{0x00, 0xE0, 0xA2, 0x2A, 0x60, 0x0C, 0x12, 0x28},
	}

	lines := CreateDisassembly(snap, 0x204, 10)
	require.Len(t, lines, 4)
	assert.Equal(t, DisasmLine{Address: 0x200, Instruction: "CLS"}, lines[0])
	assert.Equal(t, DisasmLine{Address: 0x204, Instruction: "LD V0, 0x0C", IsCurrent: true}, lines[2])

	lines = CreateDisassembly(snap, 0x206, 2)
	require.Len(t, lines, 2)
	assert.Equal(t, uint16(0x204), lines[0].Address)
	assert.True(t, lines[1].IsCurrent)

	assert.Nil(t, CreateDisassembly(nil, 0x200, 5))
}

func TestSnapshotAround(t *testing.T) {
	mem := fakeMemory{0x300: 0xAB, 0x301: 0xCD}

	snap := SnapshotAround(mem, 0x300, 16)
	assert.Equal(t, uint16(0x2F8), snap.StartAddr)
	assert.Len(t, snap.Bytes, 16)
	assert.Equal(t, uint8(0xAB), snap.Bytes[8])

	snap = SnapshotAround(mem, 0x002, 16)
	assert.Equal(t, uint16(0), snap.StartAddr)

	snap = SnapshotAround(mem, 0xFFC, 16)
	assert.Equal(t, 0x1000-int(snap.StartAddr), len(snap.Bytes))
}

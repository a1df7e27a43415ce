package debug

import (
	"github.com/valerio/go-chip8/chip8/bit"
	"github.com/valerio/go-chip8/chip8/cpu"
)

type DisasmLine struct {
	Address     uint16
	Instruction string
	IsCurrent   bool
}

// Disassemble renders a single instruction word.
func Disassemble(word uint16) string {
	in, _ := cpu.Decode(word)
	return in.String()
}

// CreateDisassembly disassembles up to maxLines instructions of snapshot,
// keeping the line at pc roughly in the middle.
func CreateDisassembly(snapshot *MemorySnapshot, pc uint16, maxLines int) []DisasmLine {
	if snapshot == nil || maxLines <= 0 {
		return nil
	}

	var all []DisasmLine
	current := -1
	for i := 0; i+1 < len(snapshot.Bytes); i += 2 {
		addr := snapshot.StartAddr + uint16(i)
		word := bit.Combine(snapshot.Bytes[i], snapshot.Bytes[i+1])
		if addr == pc {
			current = len(all)
		}
		all = append(all, DisasmLine{
			Address:     addr,
			Instruction: Disassemble(word),
			IsCurrent:   addr == pc,
		})
	}

	if len(all) <= maxLines {
		return all
	}

	start := 0
	if current >= 0 {
		start = current - maxLines/2
	}
	start = max(0, min(start, len(all)-maxLines))

	return all[start : start+maxLines]
}

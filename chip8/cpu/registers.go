package cpu

import (
	"fmt"
	"strings"
)

const (
	// RegisterCount is the number of general purpose registers, V0 to VF.
	RegisterCount = 16
	// FlagRegister is the index of VF, which doubles as the flag register.
	FlagRegister = 0xF
)

// Registers is the V0-VF register file.
type Registers struct {
	v [RegisterCount]uint8
}

func (r *Registers) Get(x uint8) uint8 {
	return r.v[x]
}

func (r *Registers) Set(x, value uint8) {
	r.v[x] = value
}

// SetFlag writes 1 or 0 to VF.
func (r *Registers) SetFlag(on bool) {
	if on {
		r.v[FlagRegister] = 1
	} else {
		r.v[FlagRegister] = 0
	}
}

// Range returns a copy of V0 through Vn, inclusive.
func (r *Registers) Range(n uint8) []uint8 {
	out := make([]uint8, int(n)+1)
	copy(out, r.v[:int(n)+1])
	return out
}

// Load writes values into V0, V1 and onwards.
func (r *Registers) Load(values []uint8) {
	copy(r.v[:], values)
}

func (r *Registers) Reset() {
	clear(r.v[:])
}

func (r *Registers) String() string {
	var sb strings.Builder
	for i, v := range r.v {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "V%X=%02X", i, v)
	}
	return sb.String()
}

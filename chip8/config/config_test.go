package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"classic", Classic, false},
		{"CLASSIC", Classic, false},
		{"original", Classic, false},
		{"modern", Modern, false},
		{"", Modern, false},
		{"extended", Extended, false},
		{"chip48", Extended, false},
		{"superchip", Modern, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}
}

func TestQuirkPresets(t *testing.T) {
	classic := QuirksFor(Classic)
	assert.True(t, classic.ShiftUsesVY)
	assert.True(t, classic.MaskFontDigit)
	assert.True(t, classic.LoadStoreIncrementsIndex)
	assert.True(t, classic.LogicResetsFlag)
	assert.False(t, classic.JumpUsesVX)
	assert.False(t, classic.IndexOverflowFlag)

	modern := QuirksFor(Modern)
	assert.True(t, modern.JumpUsesVX)
	assert.False(t, modern.ShiftUsesVY)
	assert.False(t, modern.MaskFontDigit)
	assert.False(t, modern.LoadStoreIncrementsIndex)

	assert.Equal(t, modern, QuirksFor(Extended))
}

func TestDisplaySize(t *testing.T) {
	w, h := Default(Classic).DisplaySize()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)

	w, h = Default(Extended).DisplaySize()
	assert.Equal(t, 128, w)
	assert.Equal(t, 64, h)
}

func TestCyclesPerFrame(t *testing.T) {
	cfg := Default(Modern)
	assert.Equal(t, 9, cfg.CyclesPerFrame())

	cfg.ClockHz = 30
	assert.Equal(t, 1, cfg.CyclesPerFrame())

	cfg.ClockHz = 1200
	assert.Equal(t, 20, cfg.CyclesPerFrame())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default(Classic).Validate())

	cfg := Default(Modern)
	cfg.ClockHz = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidClock)

	cfg = Default(Modern)
	cfg.Mode = Mode(7)
	assert.Error(t, cfg.Validate())
}

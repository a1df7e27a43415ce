package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8/config"
	"github.com/valerio/go-chip8/chip8/video"
)

func newApp(action func(c *cli.Context) error) *cli.App {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Flags = flags()
	app.Action = action
	app.Writer = os.Stderr
	return app
}

func parseConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()

	var (
		cfg    config.Config
		cfgErr error
	)
	app := newApp(func(c *cli.Context) error {
		cfg, cfgErr = machineConfig(c)
		return nil
	})
	require.NoError(t, app.Run(append([]string{"chip8"}, args...)))

	return cfg, cfgErr
}

func TestMachineConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := parseConfig(t)
		require.NoError(t, err)
		assert.Equal(t, config.Default(config.Modern), cfg)
	})

	t.Run("classic preset", func(t *testing.T) {
		cfg, err := parseConfig(t, "--mode", "classic", "--seed", "7", "--clock", "700")
		require.NoError(t, err)
		assert.Equal(t, config.Classic, cfg.Mode)
		assert.Equal(t, config.QuirksFor(config.Classic), cfg.Quirks)
		assert.Equal(t, uint64(7), cfg.Seed)
		assert.Equal(t, 700, cfg.ClockHz)
	})

	t.Run("explicit quirks override the preset", func(t *testing.T) {
		cfg, err := parseConfig(t, "--mode", "classic", "--jump-vx", "--reset-vf=false")
		require.NoError(t, err)
		assert.True(t, cfg.Quirks.JumpUsesVX)
		assert.False(t, cfg.Quirks.LogicResetsFlag)
		assert.True(t, cfg.Quirks.ShiftUsesVY, "quirks not named keep the preset")
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := parseConfig(t, "--mode", "superchip")
		assert.Error(t, err)
	})

	t.Run("invalid clock", func(t *testing.T) {
		_, err := parseConfig(t, "--clock", "0")
		assert.ErrorIs(t, err, config.ErrInvalidClock)
	})
}

func TestPalette(t *testing.T) {
	p, err := palette("amber")
	require.NoError(t, err)
	assert.Equal(t, video.AmberPalette, p)

	p, err = palette("")
	require.NoError(t, err)
	assert.Equal(t, video.DefaultPalette, p)

	_, err = palette("green")
	assert.Error(t, err)
}

func TestHeadlessRun(t *testing.T) {
	t.Run("bundled rom", func(t *testing.T) {
		dir := t.TempDir()
		err := newApp(runEmulator).Run([]string{"chip8", "--headless", "--frames", "5", "--snapshot-interval", "5", "--snapshot-dir", dir})
		require.NoError(t, err)

		matches, err := filepath.Glob(filepath.Join(dir, "ibm_logo_frame_5_*.png"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("rom from argument", func(t *testing.T) {
		rom := filepath.Join(t.TempDir(), "loop.ch8")
		require.NoError(t, os.WriteFile(rom, []byte{0x12, 0x00}, 0o644))

		err := newApp(runEmulator).Run([]string{"chip8", "--headless", "--frames", "2", rom})
		assert.NoError(t, err)
	})

	t.Run("faulting rom", func(t *testing.T) {
		rom := filepath.Join(t.TempDir(), "bad.ch8")
		require.NoError(t, os.WriteFile(rom, []byte{0xFF, 0xFF}, 0o644))

		err := newApp(runEmulator).Run([]string{"chip8", "--headless", "--frames", "2", "--rom", rom})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "program faulted")
	})

	t.Run("frames required", func(t *testing.T) {
		err := newApp(runEmulator).Run([]string{"chip8", "--headless"})
		assert.ErrorContains(t, err, "--frames")
	})

	t.Run("unknown backend", func(t *testing.T) {
		err := newApp(runEmulator).Run([]string{"chip8", "--backend", "opengl"})
		assert.ErrorContains(t, err, "unknown backend")
	})
}

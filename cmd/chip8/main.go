package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/config"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// quirkFlags maps each quirk override flag to the field it controls.
var quirkFlags = []struct {
	name  string
	usage string
	field func(*config.Quirks) *bool
}{
	{"shift-vy", "8XY6/8XYE shift VY into VX", func(q *config.Quirks) *bool { return &q.ShiftUsesVY }},
	{"jump-vx", "BNNN jumps to XNN + VX", func(q *config.Quirks) *bool { return &q.JumpUsesVX }},
	{"mask-font", "FX29 uses the low nibble of VX", func(q *config.Quirks) *bool { return &q.MaskFontDigit }},
	{"index-overflow-flag", "FX1E sets VF when I overflows instead of faulting", func(q *config.Quirks) *bool { return &q.IndexOverflowFlag }},
	{"increment-index", "FX55/FX65 leave I past the last register", func(q *config.Quirks) *bool { return &q.LoadStoreIncrementsIndex }},
	{"reset-vf", "8XY1/8XY2/8XY3 clear VF", func(q *config.Quirks) *bool { return &q.LogicResetsFlag }},
}

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 virtual machine"
	app.Usage = "chip8 [options] [ROM file]"
	app.Version = "1.0.0"
	app.Flags = flags()
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func flags() []cli.Flag {
	fs := []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file, the bundled IBM logo runs when omitted",
		},
		cli.StringFlag{
			Name:  "mode",
			Usage: "Machine mode: classic, modern or extended",
			Value: "modern",
		},
		cli.IntFlag{
			Name:  "clock",
			Usage: "Instructions executed per second",
			Value: config.DefaultClockHz,
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "Seed for the random number generator (0 = random)",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal or sdl2",
			Value: "terminal",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window pixel scale for the sdl2 backend",
			Value: display.DefaultPixelScale,
		},
		cli.StringFlag{
			Name:  "palette",
			Usage: "Display colours: default or amber",
			Value: "default",
		},
		cli.StringFlag{
			Name:  "limiter",
			Usage: "Frame pacing: adaptive, ticker or none",
			Value: "adaptive",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Show debug panels and log at debug level",
		},
	}

	for _, q := range quirkFlags {
		fs = append(fs, cli.BoolFlag{
			Name:  q.name,
			Usage: "Override quirk: " + q.usage,
		})
	}

	return fs
}

// machineConfig builds the machine configuration from the mode preset and
// any quirk flags given explicitly on the command line.
func machineConfig(c *cli.Context) (config.Config, error) {
	mode, err := config.ParseMode(c.String("mode"))
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Default(mode)
	cfg.ClockHz = c.Int("clock")
	cfg.Seed = c.Uint64("seed")

	for _, q := range quirkFlags {
		if c.IsSet(q.name) {
			*q.field(&cfg.Quirks) = c.Bool(q.name)
		}
	}

	return cfg, cfg.Validate()
}

func romPath(c *cli.Context) string {
	if path := c.String("rom"); path != "" {
		return path
	}
	return c.Args().First()
}

func palette(name string) (video.Palette, error) {
	switch strings.ToLower(name) {
	case "default", "":
		return video.DefaultPalette, nil
	case "amber":
		return video.AmberPalette, nil
	default:
		return video.Palette{}, fmt.Errorf("unknown palette %q", name)
	}
}

func runEmulator(c *cli.Context) error {
	if c.Bool("debug") || c.Bool("headless") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := machineConfig(c)
	if err != nil {
		return err
	}

	colours, err := palette(c.String("palette"))
	if err != nil {
		return err
	}

	path := romPath(c)
	var vm *chip8.VM
	if path == "" {
		slog.Info("No ROM given, running the bundled IBM logo")
		vm, err = chip8.New(cfg)
	} else {
		vm, err = chip8.NewWithFile(cfg, path)
	}
	if err != nil {
		return err
	}
	vm.SetPalette(colours)

	title := fmt.Sprintf("CHIP-8 (%s)", vm.Config().Mode)
	if path != "" {
		title += " - " + filepath.Base(path)
	}
	backendConfig := backend.BackendConfig{
		Title:     title,
		Scale:     c.Int("scale"),
		ShowDebug: c.Bool("debug"),
	}

	b, err := selectBackend(c, vm, path)
	if err != nil {
		return err
	}

	err = vm.Run(b, backendConfig)
	if chip8.Faulted(err) {
		return fmt.Errorf("program faulted: %w", err)
	}
	return err
}

func selectBackend(c *cli.Context, vm *chip8.VM, path string) (backend.Backend, error) {
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}

		snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), path)
		if err != nil {
			return nil, err
		}

		vm.SetFrameLimiter(nil)
		return headless.New(frames, snapshots), nil
	}

	limiter, ok := timing.New(c.String("limiter"))
	if !ok {
		return nil, fmt.Errorf("unknown limiter %q", c.String("limiter"))
	}
	vm.SetFrameLimiter(limiter)

	switch name := c.String("backend"); name {
	case "terminal":
		return terminal.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected terminal or sdl2)", name)
	}
}

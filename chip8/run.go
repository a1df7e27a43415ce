package chip8

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// Run drives the VM with the given backend until the user quits, the backend
// asks to stop, or the program faults. A fault is returned as the error.
func (v *VM) Run(b backend.Backend, cfg backend.BackendConfig) error {
	running := true
	stop := func() { running = false }

	manager := input.NewManager(v)
	handler := input.NewHandler()

	manager.On(action.EmulatorQuit, event.Press, stop)
	manager.On(action.EmulatorPauseToggle, event.Press, v.TogglePause)
	manager.On(action.EmulatorStepInstruction, event.Press, func() { v.StepInstruction() })
	manager.On(action.EmulatorReset, event.Press, func() {
		if err := v.Reset(); err != nil {
			slog.Error("Reset failed", "error", err)
		}
	})

	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = v.cfg.DisplaySize()
	}
	cfg.Palette = v.palette
	cfg.DebugProvider = v

	onQuit := cfg.Callbacks.OnQuit
	cfg.Callbacks.OnQuit = func() {
		stop()
		if onQuit != nil {
			onQuit()
		}
	}

	if err := b.Init(cfg); err != nil {
		return fmt.Errorf("initializing backend: %w", err)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			slog.Error("Backend cleanup failed", "error", err)
		}
	}()

	beeper, _ := b.(backend.Beeper)
	actions, _ := b.(backend.ActionHandler)

	for running {
		if err := v.RunUntilFrame(); err != nil {
			return err
		}

		if beeper != nil {
			beeper.SetBeep(v.Sounding())
		}

		events, err := b.Update(v.frame)
		if err != nil {
			return fmt.Errorf("updating backend: %w", err)
		}

		for _, evt := range events {
			if !handler.ProcessEvent(evt) {
				continue
			}
			if actions != nil && evt.Type == event.Press && action.GetInfo(evt.Action).Category != action.CategoryGameInput {
				actions.HandleAction(evt.Action)
			}
			manager.Trigger(evt.Action, evt.Type)
		}
	}

	slog.Info("Emulation stopped", "frames", v.frameCount, "instructions", v.instructionCount)
	return nil
}

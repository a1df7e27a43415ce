package chip8

import (
	"testing"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/config"
)

func BenchmarkEmulatorHeadless(b *testing.B) {
	cases := []struct {
		name   string
		mode   config.Mode
		frames int
	}{
		{"ibm_modern_100", config.Modern, 100},
		{"ibm_modern_1000", config.Modern, 1000},
		{"ibm_extended_1000", config.Extended, 1000},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			emu, err := New(config.Default(tc.mode))
			if err != nil {
				b.Fatalf("Failed to create emulator: %v", err)
			}

			// Large frame count so the backend never asks to quit.
			hBackend := headless.New(tc.frames*(b.N+1), headless.SnapshotConfig{})
			width, height := emu.Config().DisplaySize()
			if err := hBackend.Init(backend.BackendConfig{Title: "Benchmark", Width: width, Height: height}); err != nil {
				b.Fatalf("Failed to initialize backend: %v", err)
			}
			defer hBackend.Cleanup()

			emu.SetFrameLimiter(nil)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				for range tc.frames {
					if err := emu.RunUntilFrame(); err != nil {
						b.Fatalf("Emulation failed: %v", err)
					}
					if _, err := hBackend.Update(emu.GetCurrentFrame()); err != nil {
						b.Fatalf("Backend update failed: %v", err)
					}
				}
			}
		})
	}
}

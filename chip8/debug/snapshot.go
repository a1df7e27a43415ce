package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
	"golang.org/x/image/draw"
)

// TakeSnapshot handles F12 snapshot logic for backends
func TakeSnapshot(frame *video.FrameBuffer) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}

	if _, err := SaveFramePNGToDir(frame, "chip8_snapshot", "", display.SnapshotPixelScale); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage converts a frame buffer to an image, upscaled by scale with
// nearest neighbour sampling so pixels stay sharp.
func FrameImage(frame *video.FrameBuffer, scale int) image.Image {
	width, height := int(frame.Width()), int(frame.Height())

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, pixel := range frame.ToSlice() {
		r, g, b, a := display.Components(pixel)
		src.SetRGBA(i%width, i/width, color.RGBA{R: r, G: g, B: b, A: a})
	}

	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific directory.
// It returns the path of the written file.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string, scale int) (string, error) {
	img := FrameImage(frame, scale)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	bounds := img.Bounds()
	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()), "format", "PNG")
	return filePath, nil
}

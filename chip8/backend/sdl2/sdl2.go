//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
	"github.com/veandco/go-sdl2/sdl"
)

// refresh the debug title every N frames
const titleFrameRate = 15

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.BackendConfig
	width    int
	height   int
	pixels   []byte

	beeping   bool
	frames    int
	quitAsked bool

	// Snapshot state
	currentFrame *video.FrameBuffer
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config
	s.width, s.height = config.Width, config.Height
	if s.width == 0 || s.height == 0 {
		s.width, s.height = 64, 32
	}
	s.pixels = make([]byte, s.width*s.height*display.RGBABytesPerPixel)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	windowWidth, windowHeight := display.WindowSize(s.width, s.height, config.Scale)
	flags := uint32(sdl.WINDOW_SHOWN)
	if config.Fullscreen {
		flags |= uint32(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(windowWidth),
		int32(windowHeight),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	rendererFlags := uint32(sdl.RENDERER_ACCELERATED)
	if config.VSync {
		rendererFlags |= uint32(sdl.RENDERER_PRESENTVSYNC)
	}
	renderer, err := sdl.CreateRenderer(window, -1, rendererFlags)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(s.width),
		int32(s.height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	slog.Info("SDL2 backend initialized", "width", s.width, "height", s.height, "window", fmt.Sprintf("%dx%d", windowWidth, windowHeight))
	return nil
}

// Update renders a frame and returns the input collected since the last call.
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	var events []backend.InputEvent
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		events = append(events, s.handleEvent(e)...)
	}

	if s.quitAsked {
		return events, nil
	}

	s.currentFrame = frame
	if err := s.renderFrame(frame); err != nil {
		return events, err
	}

	s.frames++
	if s.config.ShowDebug && s.frames%titleFrameRate == 0 {
		s.updateTitle()
	}

	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// SetBeep marks the buzzer in the window title. No tone is played.
func (s *Backend) SetBeep(on bool) {
	if on == s.beeping {
		return
	}
	s.beeping = on
	slog.Debug("Buzzer", "on", on)
	s.updateTitle()
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(s.currentFrame)
	case action.EmulatorQuit:
		s.quitAsked = true
	}
}

func (s *Backend) handleEvent(e sdl.Event) []backend.InputEvent {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		s.quitAsked = true
		if s.config.Callbacks.OnQuit != nil {
			s.config.Callbacks.OnQuit()
		}

	case *sdl.KeyboardEvent:
		act, ok := keyMapping[e.Keysym.Sym]
		if !ok {
			return nil
		}

		switch {
		case e.Type == sdl.KEYDOWN && e.Repeat == 0:
			return []backend.InputEvent{{Action: act, Type: event.Press}}
		case e.Type == sdl.KEYUP && action.GetInfo(act).Category == action.CategoryGameInput:
			return []backend.InputEvent{{Action: act, Type: event.Release}}
		}
	}
	return nil
}

// sdlKeyNameMap converts SDL keycodes to key names used in default mappings
var sdlKeyNameMap = map[sdl.Keycode]string{
	sdl.K_1: "1", sdl.K_2: "2", sdl.K_3: "3", sdl.K_4: "4",
	sdl.K_q: "q", sdl.K_w: "w", sdl.K_e: "e", sdl.K_r: "r",
	sdl.K_a: "a", sdl.K_s: "s", sdl.K_d: "d", sdl.K_f: "f",
	sdl.K_z: "z", sdl.K_x: "x", sdl.K_c: "c", sdl.K_v: "v",

	sdl.K_SPACE:   "Space",
	sdl.K_p:       "p",
	sdl.K_n:       "n",
	sdl.K_F5:      "F5",
	sdl.K_F12:     "F12",
	sdl.K_ESCAPE:  "Escape",
	sdl.K_EQUALS:  "=",
	sdl.K_KP_PLUS: "+",
	sdl.K_MINUS:   "-",
}

// keyMapping maps SDL2 keys to actions
var keyMapping = buildKeyMapping()

func buildKeyMapping() map[sdl.Keycode]action.Action {
	mapping := make(map[sdl.Keycode]action.Action)
	for key, name := range sdlKeyNameMap {
		if act, ok := input.GetDefaultMapping(name); ok {
			mapping[key] = act
		}
	}
	return mapping
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	frameData := frame.ToSlice()
	if len(frameData)*display.RGBABytesPerPixel != len(s.pixels) {
		return fmt.Errorf("frame is %dx%d, window expects %dx%d", frame.Width(), frame.Height(), s.width, s.height)
	}

	// ABGR byte order for little-endian RGBA8888
	for i, pixel := range frameData {
		r, g, b, a := display.Components(pixel)
		dst := s.pixels[i*display.RGBABytesPerPixel:]
		dst[0], dst[1], dst[2], dst[3] = a, b, g, r
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), s.width*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	s.renderer.SetDrawColor(display.GrayscaleBlack, display.GrayscaleBlack, display.GrayscaleBlack, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

// updateTitle shows the buzzer and, with debug enabled, the run state and PC
// in the window title.
func (s *Backend) updateTitle() {
	if s.window == nil {
		return
	}
	title := s.config.Title
	if s.beeping {
		title += " ♪"
	}

	if s.config.ShowDebug && s.config.DebugProvider != nil {
		if data := s.config.DebugProvider.ExtractDebugData(); data != nil && data.CPU != nil {
			title += fmt.Sprintf(" [%s] PC=0x%03X I=0x%03X", data.DebuggerState, data.CPU.PC, data.CPU.I)
		}
	}

	s.window.SetTitle(title)
}

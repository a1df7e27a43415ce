package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	registerHeight = 10
	disasmHeight   = 9
	minPanelWidth  = 30
	logCapacity    = 200
)

// Backend renders the display with half-block characters in a terminal,
// two emulated rows per text row, next to register, disassembly and log panels.
type Backend struct {
	screen    tcell.Screen
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	logger    *slog.Logger // logger in place before Init, restored on Cleanup
	config    backend.BackendConfig
	width     int
	height    int

	mu         sync.Mutex
	eventQueue []backend.InputEvent // non-keypad events, also fed by the signal handler
	done       chan struct{}
	watcher    sync.WaitGroup

	keyStates  map[action.Action]time.Time // Last time each key was seen
	activeKeys map[action.Action]bool      // Keys reported as down on the previous frame

	beeping      bool
	currentFrame *video.FrameBuffer
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
	}
}

// NewWithScreen creates a backend drawing to an existing screen, such as a
// tcell simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.screen = screen
	return b
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.width, t.height = config.Width, config.Height
	if t.width == 0 || t.height == 0 {
		t.width, t.height = 64, 32
	}
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.done = make(chan struct{})

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}

	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	// Logs would garble the screen, keep them in the log panel instead.
	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.logger = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	slog.Info("Terminal backend initialized", "width", t.width, "height", t.height)
	if config.ShowDebug {
		slog.Debug("Debug panels enabled")
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.watcher.Add(1)
	go t.handleSignals(t.done)

	return nil
}

// Key expiry timeout, slightly longer than a typical key repeat interval.
// Terminals only report presses, so a key counts as held while it keeps repeating.
const keyTimeout = 100 * time.Millisecond

// Update renders a frame and returns the input collected since the last call.
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := time.Now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	events := t.keypadEvents(now)

	t.mu.Lock()
	for _, evt := range t.eventQueue {
		slog.Debug("UI event", "action", action.GetInfo(evt.Action).Description, "type", evt.Type)
	}
	events = append(events, t.eventQueue...)
	t.eventQueue = nil
	t.mu.Unlock()

	t.currentFrame = frame
	t.render(frame)
	t.screen.Show()

	return events, nil
}

// keypadEvents turns the timestamps of recently seen keys into press, hold
// and release events.
func (t *Backend) keypadEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			slog.Debug("Key press", "action", action.GetInfo(act).Description)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", action.GetInfo(act).Description)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup restores the terminal and the previous logger
func (t *Backend) Cleanup() error {
	if t.done != nil {
		close(t.done)
		t.done = nil
		t.watcher.Wait()
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
		t.screen = nil
	}
	if t.logger != nil {
		slog.SetDefault(t.logger)
		t.logger = nil
	}
	return nil
}

// SetBeep rings the terminal bell when the buzzer turns on.
func (t *Backend) SetBeep(on bool) {
	if on && !t.beeping && t.screen != nil {
		if err := t.screen.Beep(); err != nil {
			slog.Debug("Terminal bell failed", "error", err)
		}
	}
	t.beeping = on
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame)
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

func (t *Backend) queue(act action.Action) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

// handleSignals queues a quit on a termination signal until done is closed.
func (t *Backend) handleSignals(done <-chan struct{}) {
	defer t.watcher.Done()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer signal.Stop(signals)

	select {
	case <-signals:
		t.queue(action.EmulatorQuit)
	case <-done:
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	info := action.GetInfo(act)
	if info.Category == action.CategoryGameInput {
		t.keyStates[act] = now
		return
	}
	t.queue(act)
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)

	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}

	mapping[tcell.KeyCtrlC] = action.EmulatorQuit

	return mapping
}

// buildRuneMapping creates the rune mapping from default mappings.
// Every single character key name maps to its rune, upper case included.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)

	for keyName, act := range input.DefaultKeyMap {
		r := []rune(keyName)
		if len(r) != 1 {
			continue
		}
		mapping[r[0]] = act
		if r[0] >= 'a' && r[0] <= 'z' {
			mapping[r[0]-'a'+'A'] = act
		}
	}
	mapping[' '] = input.DefaultKeyMap["Space"]

	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}

func (t *Backend) minSize() (int, int) {
	return t.width + 3 + minPanelWidth, t.height/2 + 2
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	minWidth, minHeight := t.minSize()
	if termWidth < minWidth || termHeight < minHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minWidth, minHeight)
		drawText(t.screen, 0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	dividerX := t.width + 2
	rightPanelX := dividerX + 1
	rightPanelWidth := termWidth - rightPanelX

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawDisplay(frame)

	logsY := 0
	if t.config.ShowDebug && t.config.DebugProvider != nil {
		if data := t.config.DebugProvider.ExtractDebugData(); data != nil {
			t.drawRegisters(data, rightPanelX, 1, rightPanelWidth, termHeight)
			t.drawDisassembly(data, rightPanelX, registerHeight+3, rightPanelWidth, termHeight)
		}
		logsY = registerHeight + disasmHeight + 4
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	title := " CHIP-8 "
	if t.config.Title != "" {
		title = " " + t.config.Title + " "
	}
	drawText(t.screen, 1, 0, dividerX-1, title, titleStyle)

	startX := dividerX + 2
	panelWidth := termWidth - startX
	logTitleY := 0

	if t.config.ShowDebug {
		drawText(t.screen, startX, 0, panelWidth, " Registers ", titleStyle)

		for _, y := range []int{registerHeight + 1, registerHeight + disasmHeight + 3} {
			if y >= termHeight {
				continue
			}
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, y, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, y, '├', nil, borderStyle)
		}

		drawText(t.screen, startX, registerHeight+2, panelWidth, " Disassembly ", titleStyle)
		logTitleY = registerHeight + disasmHeight + 4
	}

	if logTitleY < termHeight {
		title = fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel)
		drawText(t.screen, startX, logTitleY, panelWidth, title, titleStyle)
	}

	help := " 1234/QWER/ASDF/ZXCV=keypad SPACE=pause N=step F5=reset F12=snapshot ESC=quit "
	drawText(t.screen, 0, termHeight-1, termWidth, help, borderStyle)
}

func (t *Backend) drawDisplay(frame *video.FrameBuffer) {
	if frame == nil {
		return
	}

	on := uint32(t.config.Palette.On)
	if on == 0 {
		on = uint32(video.DefaultPalette.On)
	}
	style := tcell.StyleDefault.
		Foreground(tcell.NewHexColor(int32(on >> 8))).
		Background(tcell.ColorBlack)

	w, h := int(frame.Width()), int(frame.Height())
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := render.IsLit(frame.GetPixel(uint(x), uint(y)), on)
			bottom := y+1 < h && render.IsLit(frame.GetPixel(uint(x), uint(y+1)), on)
			t.screen.SetContent(x+1, y/2+1, render.HalfBlock(top, bottom), nil, style)
		}
	}
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, startX, startY, width, termHeight int) {
	cpu := data.CPU
	if cpu == nil || width <= 0 {
		return
	}

	status := data.DebuggerState.String()
	if data.Sounding {
		status += " ♪"
	}

	v := cpu.V
	lines := []string{
		"Status: " + status,
		fmt.Sprintf("V0:%02X V1:%02X V2:%02X V3:%02X", v[0], v[1], v[2], v[3]),
		fmt.Sprintf("V4:%02X V5:%02X V6:%02X V7:%02X", v[4], v[5], v[6], v[7]),
		fmt.Sprintf("V8:%02X V9:%02X VA:%02X VB:%02X", v[8], v[9], v[10], v[11]),
		fmt.Sprintf("VC:%02X VD:%02X VE:%02X VF:%02X", v[12], v[13], v[14], v[15]),
		fmt.Sprintf("I: 0x%03X  PC: 0x%03X", cpu.I, cpu.PC),
		fmt.Sprintf("DT: %3d  ST: %3d", cpu.DelayTimer, cpu.SoundTimer),
		fmt.Sprintf("Stack: %d", cpu.StackDepth),
		fmt.Sprintf("Opcode: 0x%04X", cpu.Opcode),
		fmt.Sprintf("Cycles: %d", cpu.Cycles),
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		y := startY + i
		if y >= termHeight || i >= registerHeight {
			break
		}
		drawText(t.screen, startX, y, width, line, style)
	}
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, startX, startY, width, termHeight int) {
	if data.CPU == nil || data.Memory == nil || width <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for i, line := range debug.CreateDisassembly(data.Memory, data.CPU.PC, disasmHeight) {
		y := startY + i
		if y >= termHeight {
			break
		}

		marker, useStyle := " ", style
		if line.IsCurrent {
			marker, useStyle = "→", currentStyle
		}
		drawText(t.screen, startX, y, width, fmt.Sprintf("%s0x%03X: %s", marker, line.Address, line.Instruction), useStyle)
	}
}

func (t *Backend) drawLogs(startX, startY, width, termHeight int) {
	if width <= 0 || startY >= termHeight {
		return
	}

	// Title row above, help line below.
	availableHeight := termHeight - startY - 2
	if availableHeight <= 0 {
		return
	}

	logs := make([]render.LogEntry, 0, availableHeight)
	for _, entry := range t.logBuffer.GetRecent(0) {
		if entry.Level >= t.logLevel {
			logs = append(logs, entry)
			if len(logs) >= availableHeight {
				break
			}
		}
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range logs {
		style := infoStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errStyle
		case entry.Level >= slog.LevelWarn:
			style = warnStyle
		case entry.Level < slog.LevelInfo:
			style = debugStyle
		}

		text := render.FormatLogEntry(entry)
		if len(text) > width && width > 3 {
			text = text[:width-3] + "..."
		}
		drawText(t.screen, startX, startY+i+1, width, text, style)
	}
}

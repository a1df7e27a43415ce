package chip8

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

// mockBackend returns scripted events, one batch per Update call.
type mockBackend struct {
	script      [][]backend.InputEvent
	config      backend.BackendConfig
	updateCalls int
	maxUpdates  int
	cleanedUp   bool
	beeps       []bool
	actions     []action.Action
	updateErr   error
	quitOnCall  int
}

func (m *mockBackend) Init(config backend.BackendConfig) error {
	m.config = config
	return nil
}

func (m *mockBackend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if m.quitOnCall == m.updateCalls {
		m.config.Callbacks.OnQuit()
	}
	if m.maxUpdates > 0 && m.updateCalls >= m.maxUpdates {
		return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
	}
	if m.updateCalls <= len(m.script) {
		return m.script[m.updateCalls-1], nil
	}
	return nil, nil
}

func (m *mockBackend) Cleanup() error {
	m.cleanedUp = true
	return nil
}

func (m *mockBackend) SetBeep(on bool) {
	m.beeps = append(m.beeps, on)
}

func (m *mockBackend) HandleAction(act action.Action) {
	m.actions = append(m.actions, act)
}

var (
	_ backend.Backend       = (*mockBackend)(nil)
	_ backend.Beeper        = (*mockBackend)(nil)
	_ backend.ActionHandler = (*mockBackend)(nil)
)

func press(act action.Action) backend.InputEvent {
	return backend.InputEvent{Action: act, Type: event.Press}
}

func release(act action.Action) backend.InputEvent {
	return backend.InputEvent{Action: act, Type: event.Release}
}

func TestRunEventFlow(t *testing.T) {
	tests := []struct {
		name          string
		script        [][]backend.InputEvent
		maxUpdates    int
		expectedCalls int
	}{
		{
			name:          "quit event stops loop",
			script:        [][]backend.InputEvent{{press(action.EmulatorQuit)}},
			expectedCalls: 1,
		},
		{
			name: "keypad events are passed through",
			script: [][]backend.InputEvent{
				{press(action.Key1), release(action.Key1), press(action.KeyF), press(action.EmulatorQuit)},
			},
			expectedCalls: 1,
		},
		{
			name:          "no events runs until the backend quits",
			maxUpdates:    5,
			expectedCalls: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVM(t, 0x1200)
			mb := &mockBackend{script: tt.script, maxUpdates: tt.maxUpdates}

			require.NoError(t, v.Run(mb, backend.BackendConfig{Title: "Test"}))

			assert.Equal(t, tt.expectedCalls, mb.updateCalls)
			assert.True(t, mb.cleanedUp)
		})
	}
}

func TestRunConfiguresBackend(t *testing.T) {
	v := newTestVM(t, 0x1200)
	mb := &mockBackend{maxUpdates: 1}

	require.NoError(t, v.Run(mb, backend.BackendConfig{Title: "Test"}))

	assert.Equal(t, 64, mb.config.Width)
	assert.Equal(t, 32, mb.config.Height)
	assert.Equal(t, video.DefaultPalette, mb.config.Palette)
	assert.Equal(t, v, mb.config.DebugProvider)
	assert.NotNil(t, mb.config.Callbacks.OnQuit)
}

func TestRunOnQuitCallback(t *testing.T) {
	v := newTestVM(t, 0x1200)
	called := false
	mb := &mockBackend{quitOnCall: 2}

	cfg := backend.BackendConfig{Callbacks: backend.BackendCallbacks{OnQuit: func() { called = true }}}
	require.NoError(t, v.Run(mb, cfg))

	assert.Equal(t, 2, mb.updateCalls)
	assert.True(t, called, "caller's OnQuit still runs")
}

func TestRunKeypadReachesProgram(t *testing.T) {
	v := newTestVM(t, 0xF00A, 0x1202)
	mb := &mockBackend{
		script: [][]backend.InputEvent{
			{press(action.Key7)},
			{release(action.Key7), press(action.EmulatorQuit)},
		},
	}

	require.NoError(t, v.Run(mb, backend.BackendConfig{}))

	assert.Equal(t, uint8(7), v.ExtractDebugData().CPU.V[0])
	assert.Equal(t, []action.Action{action.EmulatorQuit}, mb.actions, "keypad presses are not backend actions")
}

func TestRunPauseToggle(t *testing.T) {
	v := newTestVM(t, 0x7001, 0x1200)
	mb := &mockBackend{
		script: [][]backend.InputEvent{
			{press(action.EmulatorPauseToggle)},
			{press(action.EmulatorStepInstruction)},
			{press(action.EmulatorQuit)},
		},
	}

	require.NoError(t, v.Run(mb, backend.BackendConfig{}))

	assert.True(t, v.Paused())
	assert.Equal(t, []action.Action{action.EmulatorPauseToggle, action.EmulatorStepInstruction, action.EmulatorQuit}, mb.actions)
	// One frame of 9 cycles, then a single step.
	assert.Equal(t, uint64(10), v.GetInstructionCount())
}

func TestRunDebouncesEmulatorActions(t *testing.T) {
	v := newTestVM(t, 0x1200)
	mb := &mockBackend{
		script: [][]backend.InputEvent{
			{press(action.EmulatorPauseToggle), press(action.EmulatorPauseToggle)},
			{press(action.EmulatorQuit)},
		},
	}

	require.NoError(t, v.Run(mb, backend.BackendConfig{}))

	assert.True(t, v.Paused(), "second toggle inside the debounce window is dropped")
}

func TestRunBuzzer(t *testing.T) {
	v := newTestVM(t, 0x6018, 0xF018, 0x1204)
	mb := &mockBackend{maxUpdates: 3}

	require.NoError(t, v.Run(mb, backend.BackendConfig{}))

	// 24 ticks of sound at 9 cycles per frame: 16 left, then 7, then silent.
	assert.Equal(t, []bool{true, true, false}, mb.beeps)
}

func TestRunReturnsFault(t *testing.T) {
	v := newTestVM(t, 0xFFFF)
	mb := &mockBackend{maxUpdates: 10}

	err := v.Run(mb, backend.BackendConfig{})
	require.Error(t, err)
	assert.True(t, Faulted(err))
	assert.Equal(t, 0, mb.updateCalls)
	assert.True(t, mb.cleanedUp)
}

func TestRunReturnsBackendError(t *testing.T) {
	v := newTestVM(t, 0x1200)
	boom := errors.New("boom")
	mb := &mockBackend{updateErr: boom}

	err := v.Run(mb, backend.BackendConfig{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, Faulted(err))
}

package voice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "campusnav-backend/pkg/errors"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Speak(ctx context.Context, instructions []string) error {
	args := m.Called(ctx, instructions)
	return args.Error(0)
}

func (m *mockSink) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestNewCommandSink_RequiresCommand(t *testing.T) {
	sink, err := NewCommandSink(CommandSinkConfig{}, zap.NewNop())

	assert.Nil(t, sink)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestNewCommandSink_UnknownCommand(t *testing.T) {
	sink, err := NewCommandSink(CommandSinkConfig{Command: "definitely-not-a-tts-engine"}, zap.NewNop())

	assert.Nil(t, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice command not found")
}

func TestCommandSink_SpeakAndClose(t *testing.T) {
	// true accepts any arguments and exits cleanly, which is all the worker
	// needs for a lifecycle test.
	sink, err := NewCommandSink(CommandSinkConfig{Command: "true"}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sink.Speak(context.Background(), []string{"Starting from Gate 1.", "You have reached Cafeteria."}))

	// Close drains the queue before returning.
	require.NoError(t, sink.Close())

	// Closing twice is safe.
	require.NoError(t, sink.Close())
}

func TestCommandSink_SpeakAfterClose(t *testing.T) {
	sink, err := NewCommandSink(CommandSinkConfig{Command: "true"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Speak(context.Background(), []string{"Proceed to Library."})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestCommandSink_FullQueueShedsLoad(t *testing.T) {
	// Build the sink without a worker so nothing drains the queue.
	sink := &CommandSink{
		command: "true",
		wpm:     160,
		timeout: time.Second,
		logger:  zap.NewNop(),
		queue:   make(chan []string, 1),
		done:    make(chan struct{}),
	}

	require.NoError(t, sink.Speak(context.Background(), []string{"first"}))

	err := sink.Speak(context.Background(), []string{"second"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}

func TestCommandSink_CancelledContext(t *testing.T) {
	sink, err := NewCommandSink(CommandSinkConfig{Command: "true"}, zap.NewNop())
	require.NoError(t, err)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sink.Speak(ctx, []string{"Proceed to Library."}), context.Canceled)
}

func TestCommandSink_RateFlagPerEngine(t *testing.T) {
	say := &CommandSink{command: "say", wpm: 140}
	espeak := &CommandSink{command: "/usr/bin/espeak", wpm: 160}

	assert.Equal(t, []string{"-r", "140", "hello"}, say.argsFor("hello"))
	assert.Equal(t, []string{"-s", "160", "hello"}, espeak.argsFor("hello"))
}

func TestLogSink_Speak(t *testing.T) {
	sink := NewLogSink(zap.NewNop())

	assert.NoError(t, sink.Speak(context.Background(), []string{"Starting from Gate 1."}))
	assert.NoError(t, sink.Close())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sink.Speak(ctx, []string{"Proceed to Library."}), context.Canceled)
}

func TestMultiSink_DeliversToEverySink(t *testing.T) {
	first := new(mockSink)
	second := new(mockSink)
	instructions := []string{"Starting from Gate 1.", "You have reached Cafeteria."}

	first.On("Speak", mock.Anything, instructions).Return(errors.New("engine gone"))
	second.On("Speak", mock.Anything, instructions).Return(nil)

	multi := NewMultiSink(first, nil, second)
	err := multi.Speak(context.Background(), instructions)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine gone")
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMultiSink_CloseJoinsErrors(t *testing.T) {
	first := new(mockSink)
	second := new(mockSink)

	first.On("Close").Return(errors.New("already closed"))
	second.On("Close").Return(nil)

	multi := NewMultiSink(first, second)
	err := multi.Close()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already closed")
	second.AssertExpectations(t)
}

// Package voice adapts text-to-speech engines behind the VoiceSink port.
package voice

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	pkgerrors "campusnav-backend/pkg/errors"
)

const (
	defaultQueueSize      = 16
	defaultWordsPerMinute = 160
	defaultSpeakTimeout   = 30 * time.Second
)

// CommandSinkConfig holds the settings for a subprocess-backed sink
type CommandSinkConfig struct {
	// Command is the TTS binary, e.g. espeak or say
	Command string
	// WordsPerMinute is the speaking rate passed to the binary
	WordsPerMinute int
	// QueueSize bounds the pending-utterance queue
	QueueSize int
	// SpeakTimeout caps one utterance before the process is killed
	SpeakTimeout time.Duration
}

// CommandSink speaks instructions by running a TTS binary. A single worker
// serializes utterances so concurrent routes never talk over each other; the
// bounded queue sheds load instead of stacking up processes when the engine
// cannot keep pace.
type CommandSink struct {
	command string
	wpm     int
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan []string
	done   chan struct{}
}

// NewCommandSink creates the sink and starts its worker
func NewCommandSink(config CommandSinkConfig, logger *zap.Logger) (*CommandSink, error) {
	if config.Command == "" {
		return nil, pkgerrors.NewValidationError("voice command cannot be empty")
	}
	if _, err := exec.LookPath(config.Command); err != nil {
		return nil, pkgerrors.NewUnavailableError("voice command not found").WithCause(err)
	}

	if config.WordsPerMinute <= 0 {
		config.WordsPerMinute = defaultWordsPerMinute
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaultQueueSize
	}
	if config.SpeakTimeout <= 0 {
		config.SpeakTimeout = defaultSpeakTimeout
	}

	s := &CommandSink{
		command: config.Command,
		wpm:     config.WordsPerMinute,
		timeout: config.SpeakTimeout,
		logger:  logger,
		queue:   make(chan []string, config.QueueSize),
		done:    make(chan struct{}),
	}

	go s.run()

	return s, nil
}

// Speak enqueues the instructions for the worker. It never waits for the
// engine: a full queue is reported as unavailable so the caller can count
// the shed utterance.
func (s *CommandSink) Speak(ctx context.Context, instructions []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(instructions) == 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return pkgerrors.NewUnavailableError("voice sink is closed")
	}

	select {
	case s.queue <- instructions:
		return nil
	default:
		return pkgerrors.NewUnavailableError("voice queue is full")
	}
}

// Close stops accepting utterances and waits for the worker to finish the
// queued ones
func (s *CommandSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	return nil
}

// run drains the queue one utterance at a time
func (s *CommandSink) run() {
	defer close(s.done)

	for instructions := range s.queue {
		s.speak(strings.Join(instructions, " "))
	}
}

// speak runs one TTS process. Engine failures are logged, not returned:
// by the time the worker gets here the caller is long gone.
func (s *CommandSink) speak(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.command, s.argsFor(text)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	startTime := time.Now()
	err := cmd.Run()
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Warn("TTS command failed",
			zap.String("command", s.command),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
			zap.Duration("duration", duration),
			zap.Error(err))
		return
	}

	s.logger.Debug("Utterance spoken",
		zap.Int("chars", len(text)),
		zap.Duration("duration", duration))
}

// argsFor builds the engine arguments. say takes its rate as -r, the espeak
// family as -s, both in words per minute.
func (s *CommandSink) argsFor(text string) []string {
	switch filepath.Base(s.command) {
	case "say":
		return []string{"-r", strconv.Itoa(s.wpm), text}
	default:
		return []string{"-s", strconv.Itoa(s.wpm), text}
	}
}

package voice

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes instructions to the process log instead of speaking them.
// It is the default backend for headless deployments and development.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-backed sink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Speak logs each instruction in order
func (s *LogSink) Speak(ctx context.Context, instructions []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for i, instruction := range instructions {
		s.logger.Info("Narration",
			zap.Int("step", i+1),
			zap.Int("of", len(instructions)),
			zap.String("instruction", instruction))
	}

	return nil
}

// Close is a no-op; the sink owns no engine
func (s *LogSink) Close() error {
	return nil
}

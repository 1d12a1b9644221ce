package voice

import (
	"context"
	"errors"

	"campusnav-backend/application/ports"
)

// MultiSink fans one utterance out to several sinks, e.g. a TTS engine plus
// the live WebSocket feed. Every sink gets the instructions even when an
// earlier one fails.
type MultiSink struct {
	sinks []ports.VoiceSink
}

// NewMultiSink combines the given sinks. Nil entries are skipped so callers
// can pass optional sinks straight through.
func NewMultiSink(sinks ...ports.VoiceSink) *MultiSink {
	combined := make([]ports.VoiceSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			combined = append(combined, sink)
		}
	}
	return &MultiSink{sinks: combined}
}

// Speak delivers the instructions to every sink and joins their errors
func (m *MultiSink) Speak(ctx context.Context, instructions []string) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Speak(ctx, instructions); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink, joining their errors
func (m *MultiSink) Close() error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

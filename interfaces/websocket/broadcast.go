package websocket

import (
	"context"
)

// HubSink adapts the hub to the VoiceSink port so the side-effect dispatcher
// can feed connected clients the same instructions the speech engine gets.
type HubSink struct {
	hub *Hub
}

// NewHubSink wraps a hub as a voice sink
func NewHubSink(hub *Hub) *HubSink {
	return &HubSink{hub: hub}
}

// Speak broadcasts the instructions to every narration client
func (s *HubSink) Speak(ctx context.Context, instructions []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(instructions) == 0 {
		return nil
	}
	return s.hub.BroadcastInstructions(instructions)
}

// Close is a no-op; the hub's lifecycle belongs to the process, not the
// dispatcher that holds the sink
func (s *HubSink) Close() error {
	return nil
}

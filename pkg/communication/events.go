package communication

import (
	"log/slog"

	"netinv/pkg/models"
)

// SendEvent sends an event to a channel without blocking.
// If the channel is full, it logs a warning and drops the event.
// A nil channel means nobody is listening.
func SendEvent(ch chan<- models.Event, event models.Event, component string) {
	if ch == nil {
		return
	}
	select {
	case ch <- event:
	default:
		slog.Warn("Channel full, dropping event", "component", component, "event_type", event.Type)
	}
}

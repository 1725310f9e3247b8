// Package logsink provides a zerolog-backed activity hook so store events can
// be written to structured logs without a custom ActivityHook implementation.
package logsink

import (
	"context"

	"github.com/goliatone/go-statemod/pkg/activity"
	"github.com/rs/zerolog"
)

// Hook logs store activity events through a zerolog logger.
type Hook struct {
	Logger zerolog.Logger
}

// New constructs a Hook around logger.
func New(logger zerolog.Logger) Hook {
	return Hook{Logger: logger}
}

// Notify implements activity.ActivityHook.
func (h Hook) Notify(_ context.Context, event activity.Event) error {
	normalized := activity.NormalizeEvent(event)
	evt := h.Logger.Info().
		Str("event_id", normalized.EventID).
		Str("verb", normalized.Verb).
		Str("object_type", normalized.ObjectType).
		Str("object_id", normalized.ObjectID).
		Time("occurred_at", normalized.OccurredAt)
	if normalized.StoreID != "" {
		evt = evt.Str("store_id", normalized.StoreID)
	}
	if normalized.Channel != "" {
		evt = evt.Str("channel", normalized.Channel)
	}
	if len(normalized.Metadata) > 0 {
		evt = evt.Fields(normalized.Metadata)
	}
	evt.Msg("store activity")
	return nil
}

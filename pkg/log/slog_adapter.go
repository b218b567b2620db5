package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger at debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event as one "protocol" record.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Src != 0 {
		attrs = append(attrs, slog.Int("src", int(event.Src)))
	}
	if event.Element != nil {
		attrs = append(attrs, slog.Int("element", int(*event.Element)))
	}

	switch {
	case event.Query != nil:
		q := event.Query
		attrs = append(attrs, slog.Uint64("msg_id", uint64(q.MessageID)))
		if q.Operation != nil {
			attrs = append(attrs, slog.String("operation", q.Operation.String()))
		}
		if q.PropertyID != 0 {
			attrs = append(attrs, slog.Int("property", int(q.PropertyID)))
		}
		if q.Status != nil {
			attrs = append(attrs, slog.String("status", q.Status.String()))
		}
		if len(q.Values) > 0 {
			attrs = append(attrs, slog.Int("values", len(q.Values)))
		}
		if q.ProcessingTime != nil {
			attrs = append(attrs, slog.Duration("processing_time", *q.ProcessingTime))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Code != "" {
			attrs = append(attrs, slog.String("error_code", event.Error.Code))
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)

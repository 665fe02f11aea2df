package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldChatID is the field name for chat ID.
	LogFieldChatID = "chat_id"
	// LogFieldEventType is the field name for event type.
	LogFieldEventType = "event_type"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
	// LogFieldCallback is the field name for callback payloads.
	LogFieldCallback = "callback"
)

// EventContext represents the context for a single inbound chat event
// with structured logging.
type EventContext struct {
	RequestID string
	ChatID    int64
	EventType string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewEventContext creates a new event context with a generated request ID.
func NewEventContext(logger *slog.Logger, eventType string, chatID int64) *EventContext {
	return &EventContext{
		RequestID: uuid.New().String(),
		ChatID:    chatID,
		EventType: eventType,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Info logs an info message.
func (e *EventContext) Info(msg string, attrs ...slog.Attr) {
	e.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, e.combined(attrs...)...)
}

// Debug logs a debug message.
func (e *EventContext) Debug(msg string, attrs ...slog.Attr) {
	e.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, e.combined(attrs...)...)
}

// Warn logs a warning message.
func (e *EventContext) Warn(msg string, attrs ...slog.Attr) {
	e.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, e.combined(attrs...)...)
}

// Error logs an error message with the error.
func (e *EventContext) Error(msg string, err error, attrs ...slog.Attr) {
	allAttrs := append(attrs, slog.String("error", err.Error()))
	e.Logger.LogAttrs(context.Background(), slog.LevelError, msg, e.combined(allAttrs...)...)
}

// DurationMs returns the elapsed time in milliseconds since the event started.
func (e *EventContext) DurationMs() int64 {
	return time.Since(e.StartTime).Milliseconds()
}

func (e *EventContext) combined(attrs ...slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldRequestID, e.RequestID),
		slog.Int64(LogFieldChatID, e.ChatID),
		slog.String(LogFieldEventType, e.EventType),
	}
	return append(base, attrs...)
}

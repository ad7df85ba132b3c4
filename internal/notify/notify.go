// Package notify is the port for user-facing notifications (the toast bus in
// the original intake UI). The wizard emits title/description/severity triples
// on draft restored, draft saved, and invalid file; presentation is someone
// else's problem.
package notify

import (
	"context"
	"log/slog"
)

// Severity grades a notification for presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is one message destined for the user.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier delivers notifications for a session. Implementations must not
// block the calling operation.
type Notifier interface {
	Notify(ctx context.Context, sessionID string, n Notification)
}

// LogNotifier writes notifications to the structured log. It stands in for a
// real delivery channel (websocket push, toast queue) in dev and tests.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, sessionID string, n Notification) {
	l.logger.InfoContext(ctx, "notification",
		"session_id", sessionID,
		"title", n.Title,
		"description", n.Description,
		"severity", string(n.Severity),
	)
}

package impl

import (
	"context"
	"log/slog"

	"truefeedback/internal/observability/middleware"
)

// LogEmailService delivers verification codes to the structured log. It
// stands in for a mail provider in development and tests.
type LogEmailService struct {
	Logger *slog.Logger
}

func NewLogEmailService(logger *slog.Logger) *LogEmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmailService{Logger: logger}
}

func (e *LogEmailService) SendVerification(ctx context.Context, to, username, code string) error {
	e.Logger.InfoContext(ctx, "verification email queued",
		"to", to,
		"username", username,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	e.Logger.DebugContext(ctx, "verification code", "username", username, "code", code)
	return nil
}

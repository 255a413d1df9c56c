package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	"truefeedback/internal/observability/metrics"
	"truefeedback/internal/observability/middleware"
	"truefeedback/internal/store"
	"truefeedback/internal/validation"

)

type MessageServiceImpl struct {
	Store  *store.Store
	Logger *slog.Logger

	now func() time.Time
}

func NewMessageServiceImpl(st *store.Store, logger *slog.Logger) *MessageServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageServiceImpl{Store: st, Logger: logger, now: time.Now}
}

// Send appends an anonymous message to a verified recipient that accepts
// messages. Concurrent sends to the same recipient never lose a write.
func (m *MessageServiceImpl) Send(ctx context.Context, r dto.SendMessageRequest) (msg *domain.Message, err error) {
	defer func() { metrics.MessagesSentTotal.WithLabelValues(sendResult(err)).Inc() }()

	if err := validation.MessageContent(r.Content); err != nil {
		return nil, err
	}

	acc, err := m.Store.Accounts().GetByUsername(ctx, r.Username)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	if !acc.Verified {
		return nil, domain.ErrAccountNotFound
	}
	if !acc.AcceptingMessages {
		return nil, domain.ErrNotAcceptingMessages
	}

	msg = &domain.Message{ID: domain.NewID(), AccountID: acc.ID, Content: r.Content, CreatedAt: m.now().UTC()}
	if err := m.Store.Messages().Append(ctx, r.Username, msg); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	m.Logger.InfoContext(ctx, "message delivered",
		"account_id", acc.ID,
		"message_id", msg.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)
	return msg, nil
}

func (m *MessageServiceImpl) List(ctx context.Context, accountID domain.AccountID) ([]domain.Message, error) {
	return m.Store.Messages().ListByAccount(ctx, accountID)
}

func (m *MessageServiceImpl) Delete(ctx context.Context, accountID domain.AccountID, messageID domain.MessageID) error {
	err := m.Store.Messages().Delete(ctx, accountID, messageID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrMessageNotFound
	}
	return err
}

func sendResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "not_accepting"
	default:
		return "failure"
	}
}

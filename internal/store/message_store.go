package store

import (
	"context"
	"time"

	"truefeedback/internal/domain"

	"gorm.io/gorm"
)

type MessageStore struct{ db *gorm.DB }

func (s *Store) Messages() *MessageStore { return &MessageStore{db: s.DB} }

// Append inserts msg for the account that owns username in one statement, so
// concurrent submissions never overwrite each other. It returns
// ErrRecordNotFound when no such account exists. msg.AccountID is not
// consulted; the owner is resolved inside the statement.
func (m *MessageStore) Append(ctx context.Context, username string, msg *domain.Message) error {
	if msg.ID.IsZero() {
		msg.ID = domain.NewID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res := m.db.WithContext(ctx).Exec(
		"INSERT INTO messages (id, account_id, content, created_at) SELECT ?, id, ?, ? FROM accounts WHERE username = ?",
		msg.ID, msg.Content, msg.CreatedAt, username,
	)
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListByAccount returns the account's messages, newest first.
func (m *MessageStore) ListByAccount(ctx context.Context, accountID domain.AccountID) ([]domain.Message, error) {
	var msgs []domain.Message
	err := m.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Find(&msgs).Error
	if err != nil {
		return nil, wrap(err)
	}
	return msgs, nil
}

func (m *MessageStore) CountByAccount(ctx context.Context, accountID domain.AccountID) (int64, error) {
	var n int64
	if err := m.db.WithContext(ctx).Model(&domain.Message{}).Where("account_id = ?", accountID).Count(&n).Error; err != nil {
		return 0, wrap(err)
	}
	return n, nil
}

// Delete removes the message only when it belongs to accountID.
func (m *MessageStore) Delete(ctx context.Context, accountID domain.AccountID, messageID domain.MessageID) error {
	res := m.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", messageID, accountID).
		Delete(&domain.Message{})
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

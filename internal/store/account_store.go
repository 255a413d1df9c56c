package store

import (
	"context"
	"time"

	"truefeedback/internal/domain"

	"gorm.io/gorm"
)

type AccountStore struct{ db *gorm.DB }

func (s *Store) Accounts() *AccountStore { return &AccountStore{db: s.DB} }

func (a *AccountStore) Create(ctx context.Context, acc *domain.Account) error {
	if acc.ID.IsZero() {
		acc.ID = domain.NewID()
	}
	now := time.Now().UTC()
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = now
	}
	acc.UpdatedAt = now
	return wrap(a.db.WithContext(ctx).Create(acc).Error)
}

func (a *AccountStore) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	var acc domain.Account
	if err := a.db.WithContext(ctx).First(&acc, "id = ?", id).Error; err != nil {
		return nil, wrap(err)
	}
	return &acc, nil
}

// GetByUsername is an exact, case-sensitive match.
func (a *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var acc domain.Account
	if err := a.db.WithContext(ctx).First(&acc, "username = ?", username).Error; err != nil {
		return nil, wrap(err)
	}
	return &acc, nil
}

func (a *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	if err := a.db.WithContext(ctx).First(&acc, "email = ?", email).Error; err != nil {
		return nil, wrap(err)
	}
	return &acc, nil
}

// Update saves every column of acc.
func (a *AccountStore) Update(ctx context.Context, acc *domain.Account) error {
	acc.UpdatedAt = time.Now().UTC()
	res := a.db.WithContext(ctx).Save(acc)
	if res.Error != nil {
		return wrap(res.Error)
	}
	return nil
}

func (a *AccountStore) MarkVerified(ctx context.Context, id domain.AccountID) error {
	return a.updateColumn(ctx, id, "verified", true)
}

func (a *AccountStore) SetAcceptingMessages(ctx context.Context, id domain.AccountID, accepting bool) error {
	return a.updateColumn(ctx, id, "accepting_messages", accepting)
}

func (a *AccountStore) updateColumn(ctx context.Context, id domain.AccountID, column string, value any) error {
	res := a.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{column: value, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteUnverified removes an account that never completed verification,
// together with any messages it holds.
func (a *AccountStore) DeleteUnverified(ctx context.Context, id domain.AccountID) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		unverified := tx.Model(&domain.Account{}).Select("id").Where("id = ? AND verified = ?", id, false)
		if err := tx.Where("account_id IN (?)", unverified).Delete(&domain.Message{}).Error; err != nil {
			return wrap(err)
		}
		res := tx.Where("id = ? AND verified = ?", id, false).Delete(&domain.Account{})
		if res.Error != nil {
			return wrap(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}

package service

import (
	"context"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
)

type MessageService interface {
	Send(ctx context.Context, r dto.SendMessageRequest) (*domain.Message, error)
	List(ctx context.Context, accountID domain.AccountID) ([]domain.Message, error)
	Delete(ctx context.Context, accountID domain.AccountID, messageID domain.MessageID) error
}

// SuggestionService is satisfied by *suggest.Generator.
type SuggestionService interface {
	Suggest(ctx context.Context) (string, error)
}

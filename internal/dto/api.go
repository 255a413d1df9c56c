package dto

import (
	"time"

	"truefeedback/internal/domain"
)

// APIResponse is the envelope every JSON endpoint except sign-in and
// suggestions answers with.
type APIResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	IsAcceptingMessages *bool  `json:"isAcceptingMessages,omitempty"`
	Field               string `json:"field,omitempty"`
}

type MessagesResponse struct {
	Success  bool          `json:"success"`
	Messages []MessageView `json:"messages"`
}

type MessageView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMessageViews(msgs []domain.Message) []MessageView {
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{ID: m.ID.String(), Content: m.Content, CreatedAt: m.CreatedAt})
	}
	return out
}

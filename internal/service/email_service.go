package service

import "context"

type EmailService interface {
	SendVerification(ctx context.Context, to, username, code string) error
}

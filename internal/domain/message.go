package domain

import "time"

const (
	MinMessageLength = 8
	MaxMessageLength = 300
)

type Message struct {
	ID        MessageID `gorm:"primaryKey" db:"id" json:"id"`
	AccountID AccountID `gorm:"not null;index:idx_messages_account_created,priority:1" db:"account_id" json:"-"`
	Content   string    `gorm:"type:varchar(1200);not null" db:"content" json:"content"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_account_created,priority:2" db:"created_at" json:"createdAt"`
}

func (Message) TableName() string { return "messages" }

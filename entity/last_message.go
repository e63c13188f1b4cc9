package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LastMessage is a materialized projection of the newest non-deleted message
// per conversation, maintained inside the same transaction as every message
// write. MessageCreatedAt is the mirrored message's own timestamp; the upsert
// compares against it so two near-simultaneous sends converge on the truly
// newest one regardless of commit order.
type LastMessage struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(255)"`
	ConversationID   string    `json:"conversationId" gorm:"type:varchar(255);not null;uniqueIndex"`
	MessageID        string    `json:"messageId" gorm:"type:varchar(255);not null"`
	SenderID         string    `json:"senderId" gorm:"type:varchar(255);not null"`
	Content          string    `json:"content,omitempty" gorm:"type:text"`
	MessageCreatedAt time.Time `json:"messageCreatedAt" gorm:"not null"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE"`
}

func (last *LastMessage) BeforeCreate(tx *gorm.DB) error {
	if last.ID == "" {
		last.ID = uuid.New().String()
	}
	return nil
}

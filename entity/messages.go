package entity

import "chat-app-core/enum"

// Message soft-deletes; reply references survive a soft delete and are only
// nulled by the database on a hard delete (retention tooling, not the API).
type Message struct {
	BaseEntity
	ConversationID string           `json:"conversationId" gorm:"type:varchar(255);not null;index:idx_message_stream,priority:1"`
	SenderID       string           `json:"senderId" gorm:"type:varchar(255);not null"`
	ReplyToID      *string          `json:"replyToId,omitempty" gorm:"type:varchar(255)"`
	Type           enum.MessageType `json:"type" gorm:"type:varchar(10);not null;default:'text'"`
	Content        string           `json:"content,omitempty" gorm:"type:text"`
	FileURL        string           `json:"fileUrl,omitempty" gorm:"type:text"`
	IsEdited       bool             `json:"isEdited" gorm:"not null;default:false"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE"`
	Sender       User         `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE"`
	ReplyTo      *Message     `json:"-" gorm:"foreignKey:ReplyToID;references:ID;constraint:OnDelete:SET NULL"`
}

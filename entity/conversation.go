package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chat-app-core/enum"
)

// Conversation is the tag of a tagged variant: type=group rows carry a
// GroupConversation extension row, type=direct rows carry nothing extra.
type Conversation struct {
	BaseEntity
	Type enum.ConversationType `json:"type" gorm:"type:varchar(10);not null"`

	Group        *GroupConversation `json:"group,omitempty" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Participants []Participant      `json:"participants,omitempty" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Messages     []Message          `json:"-" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

type GroupConversation struct {
	ConversationID string `json:"conversationId" gorm:"primaryKey;type:varchar(255)"`
	Name           string `json:"name" gorm:"type:varchar(100);not null"`
	CreatedBy      string `json:"createdBy" gorm:"type:varchar(255);not null"`
	AvatarURL      string `json:"avatarUrl,omitempty" gorm:"type:text"`

	Creator User `json:"-" gorm:"foreignKey:CreatedBy;references:ID"`
}

// Participant is membership plus per-user read state. The composite key is
// unique over live AND soft-deleted rows, so a user who left and rejoins must
// have their old row revived rather than a new one inserted.
type Participant struct {
	ID                string         `json:"id" gorm:"primaryKey;type:varchar(255)"`
	ConversationID    string         `json:"conversationId" gorm:"type:varchar(255);not null;uniqueIndex:idx_participant_member"`
	UserID            string         `json:"userId" gorm:"type:varchar(255);not null;uniqueIndex:idx_participant_member"`
	UnreadCount       int            `json:"unreadCount" gorm:"not null;default:0;check:chk_unread_non_negative,unread_count >= 0"`
	LastSeenMessageID *string        `json:"lastSeenMessageId,omitempty" gorm:"type:varchar(255)"`
	JoinedAt          time.Time      `json:"joinedAt" gorm:"autoCreateTime"`
	DeletedAt         gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE"`
	User         User         `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (participant *Participant) BeforeCreate(tx *gorm.DB) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chat-app-core/entity"
)

type MessageRepository struct {
	Repository[entity.Message]
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// MessageCursor restarts a descending listing after the given row. Ties on
// created_at are broken by id so the order is total and no row is skipped or
// repeated across pages.
type MessageCursor struct {
	CreatedAt time.Time
	ID        string
}

func (repository MessageRepository) FindPage(ctx context.Context, db *gorm.DB, conversationID string, before *MessageCursor, limit int) ([]entity.Message, error) {
	query := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID)
	if before != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			before.CreatedAt, before.CreatedAt, before.ID,
		)
	}

	var messages []entity.Message
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// FindNewest returns the newest non-deleted message of the conversation or
// nil when none survive. Feeds the LastMessage recompute after a delete.
func (repository MessageRepository) FindNewest(ctx context.Context, db *gorm.DB, conversationID string) (*entity.Message, error) {
	var message entity.Message
	err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC, id DESC").
		First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

type LastMessageRepository struct {
	Repository[entity.LastMessage]
}

func NewLastMessageRepository() *LastMessageRepository {
	return &LastMessageRepository{}
}

func (repository LastMessageRepository) FindByConversation(ctx context.Context, db *gorm.DB, conversationID string) (*entity.LastMessage, error) {
	var last entity.LastMessage
	err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &last, nil
}

// Upsert mirrors a freshly inserted message, last-writer-wins by the
// message's own created_at: a conflicting row is only overwritten when the
// incoming message is at least as new, so two near-simultaneous sends
// converge on the truly newest one no matter which transaction commits last.
func (repository LastMessageRepository) Upsert(ctx context.Context, db *gorm.DB, message *entity.Message) error {
	last := entity.LastMessage{
		ConversationID:   message.ConversationID,
		MessageID:        message.ID,
		SenderID:         message.SenderID,
		Content:          message.Content,
		MessageCreatedAt: message.CreatedAt,
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "conversation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"message_id", "sender_id", "content", "message_created_at",
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Lte{
					Column: clause.Column{Table: "t_last_message", Name: "message_created_at"},
					Value:  message.CreatedAt,
				},
			}},
		}).
		Create(&last).Error
}

// Replace overwrites the projection unconditionally. Used by the recompute
// path after a delete, where the surviving message is older than the one the
// row currently mirrors.
func (repository LastMessageRepository) Replace(ctx context.Context, db *gorm.DB, message *entity.Message) error {
	return db.WithContext(ctx).
		Model(&entity.LastMessage{}).
		Where("conversation_id = ?", message.ConversationID).
		Updates(map[string]interface{}{
			"message_id":         message.ID,
			"sender_id":          message.SenderID,
			"content":            message.Content,
			"message_created_at": message.CreatedAt,
		}).Error
}

func (repository LastMessageRepository) UpdateContent(ctx context.Context, db *gorm.DB, messageID, content string) error {
	return db.WithContext(ctx).
		Model(&entity.LastMessage{}).
		Where("message_id = ?", messageID).
		UpdateColumn("content", content).Error
}

// Clear removes the projection row when no message survives.
func (repository LastMessageRepository) Clear(ctx context.Context, db *gorm.DB, conversationID string) error {
	return db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Delete(&entity.LastMessage{}).Error
}

package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"chat-app-core/entity"
	"chat-app-core/enum"
)

type ConversationRepository struct {
	Repository[entity.Conversation]
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{}
}

// FindDirectBetween returns the live direct conversation whose two live
// participants are exactly this pair, or nil. The at-most-one-per-pair policy
// cannot be a declarative constraint, so every creation path checks through
// here inside its transaction.
func (repository ConversationRepository) FindDirectBetween(ctx context.Context, db *gorm.DB, userX, userY string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := db.WithContext(ctx).
		Where("type = ?", enum.ConversationTypeDirect).
		Where("EXISTS (SELECT 1 FROM t_participant p1 WHERE p1.conversation_id = t_conversation.id AND p1.user_id = ? AND p1.deleted_at IS NULL)", userX).
		Where("EXISTS (SELECT 1 FROM t_participant p2 WHERE p2.conversation_id = t_conversation.id AND p2.user_id = ? AND p2.deleted_at IS NULL)", userY).
		First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (repository ConversationRepository) FindAllByUserID(ctx context.Context, db *gorm.DB, userID string) ([]entity.Conversation, error) {
	var conversations []entity.Conversation
	err := db.WithContext(ctx).
		Joins("JOIN t_participant p ON p.conversation_id = t_conversation.id AND p.user_id = ? AND p.deleted_at IS NULL", userID).
		Preload("Group").
		Preload("Participants").
		Order("t_conversation.updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

// Touch bumps updated_at so conversation lists sort by recent activity.
// Runs in the same transaction as the message insert that caused it.
func (repository ConversationRepository) Touch(ctx context.Context, db *gorm.DB, conversationID string, at time.Time) error {
	return db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn("updated_at", at).Error
}

type ParticipantRepository struct {
	Repository[entity.Participant]
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{}
}

// FindMember returns the participant row for (conversation, user) including
// soft-deleted ones; the composite key is unique across both, and re-adding
// a removed member has to revive the old row.
func (repository ParticipantRepository) FindMember(ctx context.Context, db *gorm.DB, conversationID, userID string) (*entity.Participant, error) {
	var participant entity.Participant
	err := db.WithContext(ctx).
		Unscoped().
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (repository ParticipantRepository) IsLiveMember(ctx context.Context, db *gorm.DB, conversationID, userID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (repository ParticipantRepository) FindLiveByConversation(ctx context.Context, db *gorm.DB, conversationID string) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Find(&participants).Error
	return participants, err
}

// Revive clears the soft-delete marker on a previously-removed participant
// and resets their read state, as if they had just joined.
func (repository ParticipantRepository) Revive(ctx context.Context, db *gorm.DB, participantID string, at time.Time) error {
	return db.WithContext(ctx).
		Unscoped().
		Model(&entity.Participant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"deleted_at":           nil,
			"unread_count":         0,
			"last_seen_message_id": nil,
			"joined_at":            at,
		}).Error
}

// SoftRemove marks the participant as left and reports rows touched so a
// repeated removal surfaces as not-found instead of silently succeeding.
func (repository ParticipantRepository) SoftRemove(ctx context.Context, db *gorm.DB, conversationID, userID string) (int64, error) {
	result := db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Delete(&entity.Participant{})
	return result.RowsAffected, result.Error
}

// IncrementUnread bumps the counter for every live participant except the
// sender. Must run in the same transaction as the message insert.
func (repository ParticipantRepository) IncrementUnread(ctx context.Context, db *gorm.DB, conversationID, excludingUserID string) error {
	return db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("conversation_id = ? AND user_id <> ?", conversationID, excludingUserID).
		UpdateColumn("unread_count", gorm.Expr("unread_count + 1")).Error
}

// MarkRead stores the marking message and sets the counter to zero
// absolutely, never relatively, so it wins over any interleaved increment.
func (repository ParticipantRepository) MarkRead(ctx context.Context, db *gorm.DB, conversationID, userID, messageID string) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Updates(map[string]interface{}{
			"last_seen_message_id": messageID,
			"unread_count":         0,
		})
	return result.RowsAffected, result.Error
}

// CountUnreadSince recounts messages newer than the participant's last-seen
// marker, excluding their own. Used by tests and reconciliation, not the hot
// path - the denormalized counter serves reads.
func (repository ParticipantRepository) CountUnreadSince(ctx context.Context, db *gorm.DB, participant *entity.Participant) (int64, error) {
	query := db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", participant.ConversationID, participant.UserID)
	if participant.LastSeenMessageID != nil {
		query = query.Where(
			"(created_at, id) > (SELECT created_at, id FROM t_message m WHERE m.id = ?)",
			*participant.LastSeenMessageID,
		)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

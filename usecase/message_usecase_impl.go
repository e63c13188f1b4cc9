package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chat-app-core/apperr"
	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/entity"
	"chat-app-core/enum"
	"chat-app-core/repository"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type MessageUsecaseImpl struct {
	*repository.MessageRepository
	*repository.LastMessageRepository
	*repository.ParticipantRepository
	*repository.ConversationRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewMessageUsecase(
	messageRepository *repository.MessageRepository,
	lastMessageRepository *repository.LastMessageRepository,
	participantRepository *repository.ParticipantRepository,
	conversationRepository *repository.ConversationRepository,
	validate *validator.Validate,
	DB *gorm.DB,
	logger *logrus.Logger,
) MessageUsecase {
	return &MessageUsecaseImpl{
		MessageRepository:      messageRepository,
		LastMessageRepository:  lastMessageRepository,
		ParticipantRepository:  participantRepository,
		ConversationRepository: conversationRepository,
		Validate:               validate,
		DB:                     DB,
		Logger:                 logger,
	}
}

func (uc *MessageUsecaseImpl) SendMessage(ctx context.Context, conversationID, senderID string, request *req.SendMessageRequest) (res.MessageResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.MessageResponse{}, apperr.Wrap(apperr.KindValidation, "invalid message payload", err)
	}

	messageType := enum.MessageType(request.Type)
	if messageType.NeedsFileURL() && request.FileURL == "" {
		return res.MessageResponse{}, apperr.Validation("fileUrl is required for " + request.Type + " messages")
	}
	if messageType == enum.MessageTypeText && strings.TrimSpace(request.Content) == "" {
		return res.MessageResponse{}, apperr.Validation("content is required for text messages")
	}

	var message entity.Message
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		live, err := uc.ParticipantRepository.IsLiveMember(ctx, tx, conversationID, senderID)
		if err != nil {
			return err
		}
		if !live {
			return apperr.Validation("sender is not a live participant of this conversation")
		}

		var replyToID *string
		if request.ReplyToID != "" {
			var replyTo entity.Message
			if err := uc.MessageRepository.FindById(ctx, tx, &replyTo, request.ReplyToID); err != nil {
				return apperr.FromStore(err, "replied-to message not found", "")
			}
			if replyTo.ConversationID != conversationID {
				return apperr.Validation("cannot reply to a message in another conversation")
			}
			replyToID = &replyTo.ID
		}

		// The writes below are one atomic unit: message row, projection
		// upsert, unread bookkeeping and the conversation touch either all
		// commit or none do.
		message = entity.Message{
			ConversationID: conversationID,
			SenderID:       senderID,
			ReplyToID:      replyToID,
			Type:           messageType,
			Content:        request.Content,
			FileURL:        request.FileURL,
		}
		if err := uc.MessageRepository.Save(ctx, tx, &message); err != nil {
			return err
		}

		if err := uc.LastMessageRepository.Upsert(ctx, tx, &message); err != nil {
			return err
		}

		if err := uc.ParticipantRepository.IncrementUnread(ctx, tx, conversationID, senderID); err != nil {
			return err
		}

		// Sending implies having read everything up to the new message, so
		// the sender's own read state advances to it.
		if _, err := uc.ParticipantRepository.MarkRead(ctx, tx, conversationID, senderID, message.ID); err != nil {
			return err
		}

		return uc.ConversationRepository.Touch(ctx, tx, conversationID, message.CreatedAt)
	})
	if err != nil {
		uc.Logger.WithError(err).WithFields(logrus.Fields{
			"conversationId": conversationID,
			"senderId":       senderID,
		}).Warn("send message failed")
		return res.MessageResponse{}, err
	}

	return toMessageResponse(&message), nil
}

func (uc *MessageUsecaseImpl) EditMessage(ctx context.Context, messageID, actingUserID string, request *req.EditMessageRequest) (res.MessageResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.MessageResponse{}, apperr.Wrap(apperr.KindValidation, "invalid edit payload", err)
	}

	var message entity.Message
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uc.MessageRepository.FindById(ctx, tx, &message, messageID); err != nil {
			return apperr.FromStore(err, "message not found", "")
		}
		if message.SenderID != actingUserID {
			return apperr.Authorization("only the sender can edit a message")
		}

		message.Content = request.Content
		message.IsEdited = true
		if err := uc.MessageRepository.Update(ctx, tx, &message); err != nil {
			return err
		}

		// No-op unless the projection currently mirrors this message.
		return uc.LastMessageRepository.UpdateContent(ctx, tx, messageID, request.Content)
	})
	if err != nil {
		return res.MessageResponse{}, err
	}

	return toMessageResponse(&message), nil
}

func (uc *MessageUsecaseImpl) DeleteMessage(ctx context.Context, messageID, actingUserID string) error {
	return uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var message entity.Message
		if err := uc.MessageRepository.FindById(ctx, tx, &message, messageID); err != nil {
			return apperr.FromStore(err, "message not found", "")
		}
		if message.SenderID != actingUserID {
			return apperr.Authorization("only the sender can delete a message")
		}

		// Soft delete: replies keep pointing at the row, history survives.
		if err := uc.MessageRepository.Delete(ctx, tx, &message); err != nil {
			return err
		}

		mirror, err := uc.LastMessageRepository.FindByConversation(ctx, tx, message.ConversationID)
		if err != nil {
			return err
		}
		if mirror == nil || mirror.MessageID != messageID {
			return nil
		}

		// The projection mirrored the deleted message: recompute it from the
		// newest survivor, or clear it when the conversation is empty now.
		newest, err := uc.MessageRepository.FindNewest(ctx, tx, message.ConversationID)
		if err != nil {
			return err
		}
		if newest == nil {
			return uc.LastMessageRepository.Clear(ctx, tx, message.ConversationID)
		}
		return uc.LastMessageRepository.Replace(ctx, tx, newest)
	})
}

func (uc *MessageUsecaseImpl) ListMessages(ctx context.Context, conversationID, userID, cursor string, limit int) (res.MessagePageResponse, error) {
	live, err := uc.ParticipantRepository.IsLiveMember(ctx, uc.DB, conversationID, userID)
	if err != nil {
		return res.MessagePageResponse{}, err
	}
	if !live {
		return res.MessagePageResponse{}, apperr.Authorization("user is not a participant of this conversation")
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	before, err := parseMessageCursor(cursor)
	if err != nil {
		return res.MessagePageResponse{}, err
	}

	// Fetch one extra row to know whether another page exists.
	messages, err := uc.MessageRepository.FindPage(ctx, uc.DB, conversationID, before, limit+1)
	if err != nil {
		return res.MessagePageResponse{}, err
	}

	page := res.MessagePageResponse{}
	if len(messages) > limit {
		messages = messages[:limit]
		tail := messages[len(messages)-1]
		page.NextCursor = formatMessageCursor(tail.CreatedAt, tail.ID)
	}

	page.Messages = make([]res.MessageResponse, 0, len(messages))
	for i := range messages {
		page.Messages = append(page.Messages, toMessageResponse(&messages[i]))
	}
	return page, nil
}

// Cursor format: "<created_at RFC3339Nano>|<message id>". The id component
// total-orders rows created in the same instant, so pagination never skips
// or repeats a row.
func formatMessageCursor(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(time.RFC3339Nano) + "|" + id
}

func parseMessageCursor(cursor string) (*repository.MessageCursor, error) {
	if cursor == "" {
		return nil, nil
	}

	parts := strings.SplitN(cursor, "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return nil, apperr.Validation("invalid cursor format")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, apperr.Validation("invalid cursor format")
	}
	return &repository.MessageCursor{CreatedAt: createdAt, ID: parts[1]}, nil
}

func toMessageResponse(message *entity.Message) res.MessageResponse {
	response := res.MessageResponse{
		MessageID: message.ID,
		SenderID:  message.SenderID,
		Type:      string(message.Type),
		Content:   message.Content,
		FileURL:   message.FileURL,
		IsEdited:  message.IsEdited,
		CreatedAt: message.CreatedAt.Format(time.RFC3339Nano),
	}
	if message.ReplyToID != nil {
		response.ReplyToID = *message.ReplyToID
	}
	return response
}

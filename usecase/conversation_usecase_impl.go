package usecase

import (
	"context"
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

type ConversationUsecaseImpl struct {
	*repository.ConversationRepository
	*repository.ParticipantRepository
	*repository.MessageRepository
	*repository.LastMessageRepository
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewConversationUsecase(
	conversationRepository *repository.ConversationRepository,
	participantRepository *repository.ParticipantRepository,
	messageRepository *repository.MessageRepository,
	lastMessageRepository *repository.LastMessageRepository,
	userRepository *repository.UserRepository,
	validate *validator.Validate,
	DB *gorm.DB,
	logger *logrus.Logger,
) ConversationUsecase {
	return &ConversationUsecaseImpl{
		ConversationRepository: conversationRepository,
		ParticipantRepository:  participantRepository,
		MessageRepository:      messageRepository,
		LastMessageRepository:  lastMessageRepository,
		UserRepository:         userRepository,
		Validate:               validate,
		DB:                     DB,
		Logger:                 logger,
	}
}

func (uc *ConversationUsecaseImpl) CreateDirectConversation(ctx context.Context, userID string, request *req.CreateDirectConversationRequest) (res.ConversationResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ConversationResponse{}, apperr.Wrap(apperr.KindValidation, "invalid conversation payload", err)
	}
	if request.RecipientID == userID {
		return res.ConversationResponse{}, apperr.Validation("cannot start a conversation with yourself")
	}

	var conversation entity.Conversation
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := uc.UserRepository.ExistsByID(ctx, tx, request.RecipientID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("recipient user not found")
		}

		// At most one live direct conversation per unordered pair. The check
		// lives in the transaction because no declarative constraint can
		// express membership-pair uniqueness.
		existing, err := uc.ConversationRepository.FindDirectBetween(ctx, tx, userID, request.RecipientID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("direct conversation already exists")
		}

		conversation = entity.Conversation{Type: enum.ConversationTypeDirect}
		if err := uc.ConversationRepository.Save(ctx, tx, &conversation); err != nil {
			return err
		}

		participants := []entity.Participant{
			{ConversationID: conversation.ID, UserID: userID},
			{ConversationID: conversation.ID, UserID: request.RecipientID},
		}
		return uc.ParticipantRepository.SaveAll(ctx, tx, &participants)
	})
	if err != nil {
		uc.Logger.WithError(err).WithField("userId", userID).Warn("create direct conversation failed")
		return res.ConversationResponse{}, err
	}

	return uc.buildConversationResponse(ctx, &conversation)
}

func (uc *ConversationUsecaseImpl) CreateGroupConversation(ctx context.Context, creatorID string, request *req.CreateGroupConversationRequest) (res.ConversationResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.ConversationResponse{}, apperr.Wrap(apperr.KindValidation, "invalid group payload", err)
	}

	memberIDs := uniqueMembers(creatorID, request.MemberIDs)

	var conversation entity.Conversation
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One invalid member rolls back the whole group: no partially
		// created conversations.
		for _, memberID := range memberIDs {
			exists, err := uc.UserRepository.ExistsByID(ctx, tx, memberID)
			if err != nil {
				return err
			}
			if !exists {
				return apperr.NotFound("member user not found: " + memberID)
			}
		}

		conversation = entity.Conversation{Type: enum.ConversationTypeGroup}
		if err := uc.ConversationRepository.Save(ctx, tx, &conversation); err != nil {
			return err
		}

		group := entity.GroupConversation{
			ConversationID: conversation.ID,
			Name:           request.Name,
			CreatedBy:      creatorID,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		participants := make([]entity.Participant, 0, len(memberIDs))
		for _, memberID := range memberIDs {
			participants = append(participants, entity.Participant{
				ConversationID: conversation.ID,
				UserID:         memberID,
			})
		}
		return uc.ParticipantRepository.SaveAll(ctx, tx, &participants)
	})
	if err != nil {
		uc.Logger.WithError(err).WithField("creatorId", creatorID).Warn("create group conversation failed")
		return res.ConversationResponse{}, err
	}

	return uc.buildConversationResponse(ctx, &conversation)
}

func (uc *ConversationUsecaseImpl) AddParticipant(ctx context.Context, conversationID, userID string) error {
	return uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conversation entity.Conversation
		if err := uc.ConversationRepository.FindById(ctx, tx, &conversation, conversationID); err != nil {
			return apperr.FromStore(err, "conversation not found", "")
		}

		exists, err := uc.UserRepository.ExistsByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("user not found")
		}

		// The composite key covers soft-deleted rows too, so a returning
		// member gets their old row revived instead of a duplicate insert.
		member, err := uc.ParticipantRepository.FindMember(ctx, tx, conversationID, userID)
		if err != nil {
			return err
		}
		switch {
		case member == nil:
			participant := entity.Participant{ConversationID: conversationID, UserID: userID}
			return uc.ParticipantRepository.Save(ctx, tx, &participant)
		case member.DeletedAt.Valid:
			return uc.ParticipantRepository.Revive(ctx, tx, member.ID, time.Now())
		default:
			return apperr.Conflict("user is already a participant")
		}
	})
}

func (uc *ConversationUsecaseImpl) RemoveParticipant(ctx context.Context, conversationID, userID string) error {
	rows, err := uc.ParticipantRepository.SoftRemove(ctx, uc.DB, conversationID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("participant not found")
	}
	return nil
}

func (uc *ConversationUsecaseImpl) MarkRead(ctx context.Context, conversationID, userID, messageID string) error {
	return uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var message entity.Message
		if err := uc.MessageRepository.FindById(ctx, tx, &message, messageID); err != nil {
			return apperr.FromStore(err, "message not found", "")
		}
		if message.ConversationID != conversationID {
			return apperr.Validation("message does not belong to this conversation")
		}

		rows, err := uc.ParticipantRepository.MarkRead(ctx, tx, conversationID, userID, messageID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.NotFound("participant not found")
		}
		return nil
	})
}

func (uc *ConversationUsecaseImpl) GetConversationsByUser(ctx context.Context, userID string) ([]res.ConversationResponse, error) {
	conversations, err := uc.ConversationRepository.FindAllByUserID(ctx, uc.DB, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]res.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		response, err := uc.buildConversationResponse(ctx, &conversations[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (uc *ConversationUsecaseImpl) GetConversationByID(ctx context.Context, conversationID, userID string) (res.ConversationResponse, error) {
	conversation, err := uc.RequireLiveMember(ctx, conversationID, userID)
	if err != nil {
		return res.ConversationResponse{}, err
	}
	return uc.buildConversationResponse(ctx, conversation)
}

// RequireLiveMember loads the conversation and verifies the user is a live
// participant of it.
func (uc *ConversationUsecaseImpl) RequireLiveMember(ctx context.Context, conversationID, userID string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	if err := uc.ConversationRepository.FindById(ctx, uc.DB, &conversation, conversationID); err != nil {
		return nil, apperr.FromStore(err, "conversation not found", "")
	}

	live, err := uc.ParticipantRepository.IsLiveMember(ctx, uc.DB, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, apperr.Authorization("user is not a participant of this conversation")
	}
	return &conversation, nil
}

func (uc *ConversationUsecaseImpl) buildConversationResponse(ctx context.Context, conversation *entity.Conversation) (res.ConversationResponse, error) {
	response := res.ConversationResponse{
		ConversationID: conversation.ID,
		Type:           string(conversation.Type),
		CreatedAt:      conversation.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      conversation.UpdatedAt.Format(time.RFC3339),
	}

	if conversation.Type == enum.ConversationTypeGroup {
		group := conversation.Group
		if group == nil {
			var loaded entity.GroupConversation
			if err := uc.DB.WithContext(ctx).Where("conversation_id = ?", conversation.ID).First(&loaded).Error; err == nil {
				group = &loaded
			}
		}
		if group != nil {
			response.GroupInfo = &res.GroupInfo{
				Name:      group.Name,
				CreatedBy: group.CreatedBy,
				AvatarURL: group.AvatarURL,
			}
		}
	}

	last, err := uc.LastMessageRepository.FindByConversation(ctx, uc.DB, conversation.ID)
	if err != nil {
		return res.ConversationResponse{}, err
	}
	if last != nil {
		response.LastMessage = &res.LastMessageInfo{
			MessageID: last.MessageID,
			SenderID:  last.SenderID,
			Content:   last.Content,
			CreatedAt: last.MessageCreatedAt.Format(time.RFC3339),
		}
	}

	participants, err := uc.ParticipantRepository.FindLiveByConversation(ctx, uc.DB, conversation.ID)
	if err != nil {
		return res.ConversationResponse{}, err
	}
	for i := range participants {
		response.Participants = append(response.Participants, res.ParticipantInfo{
			UserID:      participants[i].UserID,
			UnreadCount: participants[i].UnreadCount,
			JoinedAt:    participants[i].JoinedAt.Format(time.RFC3339),
		})
	}

	return response, nil
}

func uniqueMembers(creatorID string, memberIDs []string) []string {
	seen := map[string]bool{creatorID: true}
	unique := []string{creatorID}
	for _, id := range memberIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

package usecase

import (
	"context"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/entity"
)

type ConversationUsecase interface {
	CreateDirectConversation(ctx context.Context, userID string, request *req.CreateDirectConversationRequest) (res.ConversationResponse, error)
	CreateGroupConversation(ctx context.Context, creatorID string, request *req.CreateGroupConversationRequest) (res.ConversationResponse, error)
	AddParticipant(ctx context.Context, conversationID, userID string) error
	RemoveParticipant(ctx context.Context, conversationID, userID string) error
	MarkRead(ctx context.Context, conversationID, userID, messageID string) error
	GetConversationsByUser(ctx context.Context, userID string) ([]res.ConversationResponse, error)
	GetConversationByID(ctx context.Context, conversationID, userID string) (res.ConversationResponse, error)
	RequireLiveMember(ctx context.Context, conversationID, userID string) (*entity.Conversation, error)
}

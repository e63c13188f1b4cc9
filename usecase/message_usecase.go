package usecase

import (
	"context"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
)

type MessageUsecase interface {
	SendMessage(ctx context.Context, conversationID, senderID string, request *req.SendMessageRequest) (res.MessageResponse, error)
	EditMessage(ctx context.Context, messageID, actingUserID string, request *req.EditMessageRequest) (res.MessageResponse, error)
	DeleteMessage(ctx context.Context, messageID, actingUserID string) error
	ListMessages(ctx context.Context, conversationID, userID, cursor string, limit int) (res.MessagePageResponse, error)
}

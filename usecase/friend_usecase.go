package usecase

import (
	"context"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
)

type FriendUsecase interface {
	SendFriendRequest(ctx context.Context, fromUserID string, request *req.SendFriendRequest) (res.FriendRequestResponse, error)
	AcceptFriendRequest(ctx context.Context, actingUserID, requestID string) (res.FriendResponse, error)
	RejectFriendRequest(ctx context.Context, actingUserID, requestID string) error
	Unfriend(ctx context.Context, userID, friendID string) error
	IsFriend(ctx context.Context, userID, otherID string) (bool, error)
	GetFriends(ctx context.Context, userID string) ([]res.FriendResponse, error)
	GetFriendRequests(ctx context.Context, userID string) ([]res.FriendRequestResponse, error)
}

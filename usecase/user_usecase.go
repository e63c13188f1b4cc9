package usecase

import (
	"context"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
)

type UserUsecase interface {
	GetUserByID(ctx context.Context, userID string) (res.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, request *req.EditProfileRequest) (res.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	SearchUsers(ctx context.Context, term string) ([]res.UserResponse, error)
}

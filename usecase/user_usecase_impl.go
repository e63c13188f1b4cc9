package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"chat-app-core/apperr"
	"chat-app-core/cache"
	"chat-app-core/config/logger"
	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/entity"
	"chat-app-core/repository"
)

type UserUsecaseImpl struct {
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	Log   *logger.AppLogger
	Cache *cache.UserCache
}

func NewUserUsecase(userRepository *repository.UserRepository, validate *validator.Validate, DB *gorm.DB, log *logger.AppLogger, userCache *cache.UserCache) UserUsecase {
	return &UserUsecaseImpl{UserRepository: userRepository, Validate: validate, DB: DB, Log: log, Cache: userCache}
}

func (uc *UserUsecaseImpl) GetUserByID(ctx context.Context, userID string) (res.UserResponse, error) {
	if cached, hit := uc.Cache.Get(ctx, userID); hit {
		uc.Log.Http.Trace.Trace().
			Str("userId", userID).
			Msg("User served from cache")
		return cached, nil
	}

	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, userID); err != nil {
		uc.Log.Http.Warning.Warn().
			Err(err).
			Str("userId", userID).
			Msg("User lookup failed")
		return res.UserResponse{}, apperr.FromStore(err, "user not found", "")
	}

	response := toUserResponse(&user)
	if err := uc.Cache.Set(ctx, response); err != nil {
		uc.Log.Http.Warning.Warn().
			Err(err).
			Str("userId", userID).
			Msg("Failed to cache user")
	}
	return response, nil
}

func (uc *UserUsecaseImpl) UpdateProfile(ctx context.Context, userID string, request *req.EditProfileRequest) (res.UserResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.UserResponse{}, apperr.Wrap(apperr.KindValidation, "invalid profile payload", err)
	}

	var user entity.User
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uc.UserRepository.FindById(ctx, tx, &user, userID); err != nil {
			return apperr.FromStore(err, "user not found", "")
		}

		if request.Username != "" {
			user.Username = request.Username
		}
		if request.Email != "" {
			user.Email = request.Email
		}
		if request.DisplayName != "" {
			user.DisplayName = request.DisplayName
		}
		if request.AvatarURL != "" {
			user.AvatarURL = request.AvatarURL
		}
		if request.Bio != "" {
			user.Bio = request.Bio
		}
		if request.Phone != "" {
			user.Phone = request.Phone
		}

		// Live rows only: a soft-deleted user holding the same username or
		// email does not block the update.
		taken, err := uc.UserRepository.IdentifierTaken(ctx, tx, user.Username, user.Email, user.Phone, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("username, email or phone already in use")
		}

		return uc.UserRepository.Update(ctx, tx, &user)
	})
	if err != nil {
		return res.UserResponse{}, err
	}

	if err := uc.Cache.Delete(ctx, userID); err != nil {
		uc.Log.Http.Warning.Warn().
			Err(err).
			Str("userId", userID).
			Msg("Failed to invalidate cached user")
	}
	return toUserResponse(&user), nil
}

func (uc *UserUsecaseImpl) DeleteUser(ctx context.Context, userID string) error {
	var user entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &user, userID); err != nil {
		return apperr.FromStore(err, "user not found", "")
	}

	// Soft delete frees the username/email/phone for reuse while keeping the
	// row as a foreign-key target for history.
	if err := uc.UserRepository.Delete(ctx, uc.DB, &user); err != nil {
		return err
	}
	return uc.Cache.Delete(ctx, userID)
}

func (uc *UserUsecaseImpl) SearchUsers(ctx context.Context, term string) ([]res.UserResponse, error) {
	if term == "" {
		return nil, apperr.Validation("search term is required")
	}

	users, err := uc.UserRepository.SearchByUsername(ctx, uc.DB, term, 20)
	if err != nil {
		return nil, err
	}

	responses := make([]res.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

func toUserResponse(user *entity.User) res.UserResponse {
	return res.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        string(user.Role),
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		Phone:       user.Phone,
	}
}

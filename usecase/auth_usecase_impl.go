package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chat-app-core/apperr"
	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/entity"
	"chat-app-core/enum"
	"chat-app-core/repository"
	"chat-app-core/security"
	"chat-app-core/util"
)

type AuthUsecaseImpl struct {
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
	*security.JWT
}

func NewAuthUsecase(userRepository *repository.UserRepository, validate *validator.Validate, DB *gorm.DB, logger *logrus.Logger, JWT *security.JWT) AuthUsecase {
	return &AuthUsecaseImpl{UserRepository: userRepository, Validate: validate, DB: DB, Logger: logger, JWT: JWT}
}

func (uc *AuthUsecaseImpl) RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Logger.WithError(err).Error("failed to validate register request")
		return res.RegisterResponse{}, apperr.Wrap(apperr.KindValidation, "invalid register payload", err)
	}

	passwordHash, err := util.HashPassword(request.Password)
	if err != nil {
		return res.RegisterResponse{}, err
	}

	user := entity.User{
		Username:     request.Username,
		Email:        request.Email,
		PasswordHash: passwordHash,
		Role:         enum.UserRoleUser,
		DisplayName:  request.DisplayName,
		Phone:        request.Phone,
	}

	err = uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := uc.UserRepository.IdentifierTaken(ctx, tx, request.Username, request.Email, request.Phone, "")
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict("username, email or phone already in use")
		}
		return uc.UserRepository.Save(ctx, tx, &user)
	})
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to register user : %v", err)
		return res.RegisterResponse{}, apperr.FromStore(err, "", "username, email or phone already in use")
	}

	return res.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (uc *AuthUsecaseImpl) LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.LoginResponse{}, apperr.Wrap(apperr.KindValidation, "invalid login payload", err)
	}

	user, err := uc.UserRepository.FindByUsername(ctx, uc.DB, request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.LoginResponse{}, apperr.Authorization("invalid credentials")
		}
		return res.LoginResponse{}, err
	}

	if !util.ComparePassword(user.PasswordHash, request.Password) {
		uc.Logger.WithField("username", request.Username).Warn("login with wrong password")
		return res.LoginResponse{}, apperr.Authorization("invalid credentials")
	}

	token, err := uc.JWT.GenerateToken(user)
	if err != nil {
		uc.Logger.WithError(err).Errorf("failed to generate token = %v", err)
		return res.LoginResponse{}, err
	}

	return res.LoginResponse{Token: token}, nil
}

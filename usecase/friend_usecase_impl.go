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
	"chat-app-core/repository"
)

type FriendUsecaseImpl struct {
	*repository.FriendRepository
	*repository.FriendRequestRepository
	*repository.UserRepository
	*validator.Validate
	*gorm.DB
	*logrus.Logger
}

func NewFriendUsecase(
	friendRepository *repository.FriendRepository,
	friendRequestRepository *repository.FriendRequestRepository,
	userRepository *repository.UserRepository,
	validate *validator.Validate,
	DB *gorm.DB,
	logger *logrus.Logger,
) FriendUsecase {
	return &FriendUsecaseImpl{
		FriendRepository:        friendRepository,
		FriendRequestRepository: friendRequestRepository,
		UserRepository:          userRepository,
		Validate:                validate,
		DB:                      DB,
		Logger:                  logger,
	}
}

func (uc *FriendUsecaseImpl) SendFriendRequest(ctx context.Context, fromUserID string, request *req.SendFriendRequest) (res.FriendRequestResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.FriendRequestResponse{}, apperr.Wrap(apperr.KindValidation, "invalid friend request payload", err)
	}
	if request.RecipientID == fromUserID {
		return res.FriendRequestResponse{}, apperr.Validation("cannot send a friend request to yourself")
	}

	var created entity.FriendRequest
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := uc.UserRepository.ExistsByID(ctx, tx, request.RecipientID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("recipient user not found")
		}

		friendship, err := uc.FriendRepository.FindFriendship(ctx, tx, fromUserID, request.RecipientID)
		if err != nil {
			return err
		}
		if friendship != nil {
			return apperr.Conflict("users are already friends")
		}

		// Direction matters: only an identical from->to request conflicts.
		// The reciprocal pending request may coexist until one is resolved.
		pending, err := uc.FriendRequestRepository.ExistsDirected(ctx, tx, fromUserID, request.RecipientID)
		if err != nil {
			return err
		}
		if pending {
			return apperr.Conflict("friend request already sent")
		}

		created = entity.FriendRequest{
			FromUserID: fromUserID,
			ToUserID:   request.RecipientID,
			Message:    request.Message,
		}
		return uc.FriendRequestRepository.Save(ctx, tx, &created)
	})
	if err != nil {
		uc.Logger.WithError(err).WithField("fromUserId", fromUserID).Warn("send friend request failed")
		return res.FriendRequestResponse{}, apperr.FromStore(err, "recipient user not found", "friend request already sent")
	}

	return res.FriendRequestResponse{
		ID:        created.ID,
		Message:   created.Message,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (uc *FriendUsecaseImpl) AcceptFriendRequest(ctx context.Context, actingUserID, requestID string) (res.FriendResponse, error) {
	var fromUserID string
	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request entity.FriendRequest
		if err := uc.FriendRequestRepository.FindById(ctx, tx, &request, requestID); err != nil {
			return apperr.FromStore(err, "friend request not found", "")
		}
		// A request is only visible to its recipient; anyone else gets the
		// same answer as if it did not exist.
		if request.ToUserID != actingUserID {
			return apperr.NotFound("friend request not found")
		}

		fromUserID = request.FromUserID

		// The insert canonicalizes the pair; a concurrent acceptor of the
		// reciprocal request hits the unique live-edge index and no-ops,
		// which both converge to "already friends".
		if err := uc.FriendRepository.CreateFriendship(ctx, tx, request.FromUserID, request.ToUserID); err != nil {
			return err
		}

		// Discard the accepted request and any reciprocal one: the edge now
		// exists, so nothing between this pair stays pending.
		return uc.FriendRequestRepository.DeleteBetween(ctx, tx, request.FromUserID, request.ToUserID)
	})
	if err != nil {
		uc.Logger.WithError(err).WithField("requestId", requestID).Warn("accept friend request failed")
		return res.FriendResponse{}, err
	}

	var fromUser entity.User
	if err := uc.UserRepository.FindById(ctx, uc.DB, &fromUser, fromUserID); err != nil {
		return res.FriendResponse{}, apperr.FromStore(err, "user not found", "")
	}
	return toFriendResponse(&fromUser), nil
}

func (uc *FriendUsecaseImpl) RejectFriendRequest(ctx context.Context, actingUserID, requestID string) error {
	return uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request entity.FriendRequest
		if err := uc.FriendRequestRepository.FindById(ctx, tx, &request, requestID); err != nil {
			// Rejecting an already-resolved request is a plain not-found,
			// repeat calls stay harmless.
			return apperr.FromStore(err, "friend request not found", "")
		}
		if request.ToUserID != actingUserID {
			return apperr.Authorization("only the recipient can reject a friend request")
		}

		rows, err := uc.FriendRequestRepository.DeleteByID(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.NotFound("friend request not found")
		}
		return nil
	})
}

func (uc *FriendUsecaseImpl) Unfriend(ctx context.Context, userID, friendID string) error {
	if userID == friendID {
		return apperr.Validation("cannot unfriend yourself")
	}

	rows, err := uc.FriendRepository.DeleteFriendship(ctx, uc.DB, userID, friendID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("friendship not found")
	}
	return nil
}

func (uc *FriendUsecaseImpl) IsFriend(ctx context.Context, userID, otherID string) (bool, error) {
	friendship, err := uc.FriendRepository.FindFriendship(ctx, uc.DB, userID, otherID)
	if err != nil {
		return false, err
	}
	return friendship != nil, nil
}

func (uc *FriendUsecaseImpl) GetFriends(ctx context.Context, userID string) ([]res.FriendResponse, error) {
	friends, err := uc.FriendRepository.FindFriendsOfUser(ctx, uc.DB, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]res.FriendResponse, 0, len(friends))
	for i := range friends {
		responses = append(responses, toFriendResponse(&friends[i]))
	}
	return responses, nil
}

func (uc *FriendUsecaseImpl) GetFriendRequests(ctx context.Context, userID string) ([]res.FriendRequestResponse, error) {
	incoming, err := uc.FriendRequestRepository.FindIncoming(ctx, uc.DB, userID)
	if err != nil {
		return nil, err
	}
	outgoing, err := uc.FriendRequestRepository.FindOutgoing(ctx, uc.DB, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]res.FriendRequestResponse, 0, len(incoming)+len(outgoing))
	for i := range incoming {
		from := toFriendResponse(&incoming[i].FromUser)
		responses = append(responses, res.FriendRequestResponse{
			ID:        incoming[i].ID,
			From:      &from,
			Message:   incoming[i].Message,
			CreatedAt: incoming[i].CreatedAt.Format(time.RFC3339),
		})
	}
	for i := range outgoing {
		to := toFriendResponse(&outgoing[i].ToUser)
		responses = append(responses, res.FriendRequestResponse{
			ID:        outgoing[i].ID,
			To:        &to,
			Message:   outgoing[i].Message,
			CreatedAt: outgoing[i].CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

func toFriendResponse(user *entity.User) res.FriendResponse {
	return res.FriendResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chat-app-core/entity"
)

type FriendRepository struct {
	Repository[entity.Friendship]
}

func NewFriendRepository() *FriendRepository {
	return &FriendRepository{}
}

// FindFriendship returns the live canonical edge between two users, in
// either argument order, or nil when they are not friends.
func (repository FriendRepository) FindFriendship(ctx context.Context, db *gorm.DB, userX, userY string) (*entity.Friendship, error) {
	userA, userB := entity.CanonicalPair(userX, userY)

	var friendship entity.Friendship
	err := db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", userA, userB).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// CreateFriendship inserts the canonical edge. ON CONFLICT DO NOTHING makes
// the second of two racing acceptors a no-op: the unique index on the live
// (user_a, user_b) pair serializes them and both end up with one edge.
func (repository FriendRepository) CreateFriendship(ctx context.Context, db *gorm.DB, userX, userY string) error {
	userA, userB := entity.CanonicalPair(userX, userY)

	friendship := entity.Friendship{UserA: userA, UserB: userB}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&friendship).Error
}

// DeleteFriendship soft-deletes the live canonical edge and reports how many
// rows it touched so the caller can distinguish "unfriended" from "were not
// friends".
func (repository FriendRepository) DeleteFriendship(ctx context.Context, db *gorm.DB, userX, userY string) (int64, error) {
	userA, userB := entity.CanonicalPair(userX, userY)

	result := db.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", userA, userB).
		Delete(&entity.Friendship{})
	return result.RowsAffected, result.Error
}

func (repository FriendRepository) FindFriendsOfUser(ctx context.Context, db *gorm.DB, userID string) ([]entity.User, error) {
	var friends []entity.User
	err := db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN t_friendship f ON (f.user_a = t_user.id OR f.user_b = t_user.id) AND f.deleted_at IS NULL").
		Where("(f.user_a = ? OR f.user_b = ?) AND t_user.id <> ?", userID, userID, userID).
		Find(&friends).Error
	return friends, err
}

type FriendRequestRepository struct {
	Repository[entity.FriendRequest]
}

func NewFriendRequestRepository() *FriendRequestRepository {
	return &FriendRequestRepository{}
}

// FindBetween returns any pending request between the pair regardless of
// direction.
func (repository FriendRequestRepository) FindBetween(ctx context.Context, db *gorm.DB, userX, userY string) (*entity.FriendRequest, error) {
	var request entity.FriendRequest
	err := db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userX, userY, userY, userX).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (repository FriendRequestRepository) ExistsDirected(ctx context.Context, db *gorm.DB, fromUserID, toUserID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.FriendRequest{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count).Error
	return count > 0, err
}

// DeleteBetween hard-deletes every pending request between the pair, both
// directions. Accepting one request discards its reciprocal twin since only
// one canonical edge can exist.
func (repository FriendRequestRepository) DeleteBetween(ctx context.Context, db *gorm.DB, userX, userY string) error {
	return db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userX, userY, userY, userX).
		Delete(&entity.FriendRequest{}).Error
}

func (repository FriendRequestRepository) DeleteByID(ctx context.Context, db *gorm.DB, requestID string) (int64, error) {
	result := db.WithContext(ctx).
		Where("id = ?", requestID).
		Delete(&entity.FriendRequest{})
	return result.RowsAffected, result.Error
}

func (repository FriendRequestRepository) FindIncoming(ctx context.Context, db *gorm.DB, userID string) ([]entity.FriendRequest, error) {
	var requests []entity.FriendRequest
	err := db.WithContext(ctx).
		Preload("FromUser").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (repository FriendRequestRepository) FindOutgoing(ctx context.Context, db *gorm.DB, userID string) ([]entity.FriendRequest, error) {
	var requests []entity.FriendRequest
	err := db.WithContext(ctx).
		Preload("ToUser").
		Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

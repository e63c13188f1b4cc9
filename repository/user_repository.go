package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chat-app-core/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (repository UserRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).
		Where("lower(username) = lower(?)", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IdentifierTaken reports whether username, email or phone is already used by
// a live user other than excludeID. Uniqueness is case-insensitive and only
// counts non-deleted rows; soft-deleted users free their identifiers.
func (repository UserRepository) IdentifierTaken(ctx context.Context, db *gorm.DB, username, email, phone, excludeID string) (bool, error) {
	query := db.WithContext(ctx).
		Model(&entity.User{}).
		Where("lower(username) = lower(?) OR lower(email) = lower(?)", username, email)
	if phone != "" {
		query = db.WithContext(ctx).
			Model(&entity.User{}).
			Where("lower(username) = lower(?) OR lower(email) = lower(?) OR phone = ?", username, email, phone)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repository UserRepository) SearchByUsername(ctx context.Context, db *gorm.DB, term string, limit int) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Where("lower(username) LIKE lower(?)", "%"+term+"%").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (repository UserRepository) ExistsByID(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var user entity.User
	err := db.WithContext(ctx).Select("id").Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

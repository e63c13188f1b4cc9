package repository

import (
	"context"

	"gorm.io/gorm"

	"chat-app-core/entity"
)

type FileRepository struct {
	Repository[entity.File]
}

func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

func (repository FileRepository) FindByUploader(ctx context.Context, db *gorm.DB, userID string) ([]entity.File, error) {
	var files []entity.File
	err := db.WithContext(ctx).
		Where("uploaded_by = ?", userID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

package usecase

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chat-app-core/apperr"
	"chat-app-core/dto/res"
	"chat-app-core/entity"
	"chat-app-core/repository"
)

type FileUsecaseImpl struct {
	*repository.FileRepository
	*gorm.DB
	*logrus.Logger
}

func NewFileUsecase(fileRepository *repository.FileRepository, DB *gorm.DB, logger *logrus.Logger) FileUsecase {
	return &FileUsecaseImpl{FileRepository: fileRepository, DB: DB, Logger: logger}
}

// RecordUpload stores attachment metadata. The bytes themselves are written
// by the blob-storage collaborator under StoragePath; this store never reads
// them.
func (uc *FileUsecaseImpl) RecordUpload(ctx context.Context, uploaderID, originalFilename, mimeType string, fileSize int64) (res.FileResponse, error) {
	if originalFilename == "" || mimeType == "" {
		return res.FileResponse{}, apperr.Validation("filename and mime type are required")
	}
	if fileSize <= 0 {
		return res.FileResponse{}, apperr.Validation("file size must be positive")
	}

	storedName := uuid.New().String() + path.Ext(originalFilename)
	file := entity.File{
		Filename:         storedName,
		OriginalFilename: originalFilename,
		MimeType:         mimeType,
		FileSize:         fileSize,
		StoragePath:      path.Join("uploads", storedName),
		UploadedBy:       uploaderID,
	}

	if err := uc.FileRepository.Save(ctx, uc.DB, &file); err != nil {
		uc.Logger.WithError(err).WithField("uploaderId", uploaderID).Error("failed to record upload")
		return res.FileResponse{}, err
	}
	return toFileResponse(&file), nil
}

func (uc *FileUsecaseImpl) GetFile(ctx context.Context, fileID string) (res.FileResponse, error) {
	var file entity.File
	if err := uc.FileRepository.FindById(ctx, uc.DB, &file, fileID); err != nil {
		return res.FileResponse{}, apperr.FromStore(err, "file not found", "")
	}
	return toFileResponse(&file), nil
}

func (uc *FileUsecaseImpl) ListByUploader(ctx context.Context, uploaderID string) ([]res.FileResponse, error) {
	files, err := uc.FileRepository.FindByUploader(ctx, uc.DB, uploaderID)
	if err != nil {
		return nil, err
	}

	responses := make([]res.FileResponse, 0, len(files))
	for i := range files {
		responses = append(responses, toFileResponse(&files[i]))
	}
	return responses, nil
}

func toFileResponse(file *entity.File) res.FileResponse {
	return res.FileResponse{
		ID:               file.ID,
		Filename:         file.Filename,
		OriginalFilename: file.OriginalFilename,
		MimeType:         file.MimeType,
		FileSize:         file.FileSize,
		URL:              "/" + file.StoragePath,
		CreatedAt:        file.CreatedAt.Format(time.RFC3339),
	}
}

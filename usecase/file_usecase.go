package usecase

import (
	"context"

	"chat-app-core/dto/res"
)

type FileUsecase interface {
	RecordUpload(ctx context.Context, uploaderID, originalFilename, mimeType string, fileSize int64) (res.FileResponse, error)
	GetFile(ctx context.Context, fileID string) (res.FileResponse, error)
	ListByUploader(ctx context.Context, uploaderID string) ([]res.FileResponse, error)
}

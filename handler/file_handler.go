package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chat-app-core/dto/res"
	"chat-app-core/middleware"
	"chat-app-core/usecase"
)

type FileHandler struct {
	usecase.FileUsecase
	*logrus.Logger
}

func NewFileHandler(fileUsecase usecase.FileUsecase, logger *logrus.Logger) *FileHandler {
	return &FileHandler{FileUsecase: fileUsecase, Logger: logger}
}

// UploadFile records attachment metadata from a multipart upload. Writing
// the bytes to disk or a bucket is the blob-storage collaborator's job; the
// core only keeps path, mime and size.
func (handler *FileHandler) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.FileUsecase.RecordUpload(
		c.Context(),
		middleware.UserID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
	)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.FileResponse](c, fiber.StatusCreated, "File recorded", response)
}

func (handler *FileHandler) GetFile(c *fiber.Ctx) error {
	response, err := handler.FileUsecase.GetFile(c.Context(), c.Params("fileId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.FileResponse](c, fiber.StatusOK, "Successfully retrieved file", response)
}

func (handler *FileHandler) ListMyFiles(c *fiber.Ctx) error {
	responses, err := handler.FileUsecase.ListByUploader(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[[]res.FileResponse](c, fiber.StatusOK, "Successfully retrieved files", responses)
}

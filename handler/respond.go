package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"chat-app-core/apperr"
	"chat-app-core/dto/res"
)

// writeError maps the core error taxonomy onto HTTP statuses. Anything that
// is not an apperr escapes the taxonomy and reports as a 500 without leaking
// its detail.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Kind {
		case apperr.KindValidation:
			status = fiber.StatusBadRequest
		case apperr.KindAuthorization:
			status = fiber.StatusForbidden
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		case apperr.KindConflict:
			status = fiber.StatusConflict
		}
	}

	return c.Status(status).JSON(res.ErrorResponse{
		Status:     fiber.NewError(status).Message,
		StatusCode: status,
		Error:      message,
	})
}

func writeJSON[T any](c *fiber.Ctx, status int, message string, data T) error {
	return c.Status(status).JSON(res.CommonResponse[T]{
		Message:    message,
		StatusCode: status,
		Data:       data,
	})
}

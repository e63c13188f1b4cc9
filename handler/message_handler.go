package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/middleware"
	"chat-app-core/usecase"
)

type MessageHandler struct {
	usecase.MessageUsecase
	*logrus.Logger
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{MessageUsecase: messageUsecase, Logger: logger}
}

func (handler *MessageHandler) SendMessage(c *fiber.Ctx) error {
	var request req.SendMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.MessageUsecase.SendMessage(c.Context(), c.Params("conversationId"), middleware.UserID(c), &request)
	if err != nil {
		handler.Logger.WithError(err).Warn("send message failed")
		return writeError(c, err)
	}
	return writeJSON[res.MessageResponse](c, fiber.StatusCreated, "Message sent", response)
}

func (handler *MessageHandler) EditMessage(c *fiber.Ctx) error {
	var request req.EditMessageRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.MessageUsecase.EditMessage(c.Context(), c.Params("messageId"), middleware.UserID(c), &request)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.MessageResponse](c, fiber.StatusOK, "Message edited", response)
}

func (handler *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	if err := handler.MessageUsecase.DeleteMessage(c.Context(), c.Params("messageId"), middleware.UserID(c)); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Message deleted", struct{}{})
}

func (handler *MessageHandler) ListMessages(c *fiber.Ctx) error {
	page, err := handler.MessageUsecase.ListMessages(
		c.Context(),
		c.Params("conversationId"),
		middleware.UserID(c),
		c.Query("before"),
		c.QueryInt("limit"),
	)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.MessagePageResponse](c, fiber.StatusOK, "Successfully retrieved messages", page)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/middleware"
	"chat-app-core/usecase"
)

type ConversationHandler struct {
	usecase.ConversationUsecase
	*logrus.Logger
}

func NewConversationHandler(conversationUsecase usecase.ConversationUsecase, logger *logrus.Logger) *ConversationHandler {
	return &ConversationHandler{ConversationUsecase: conversationUsecase, Logger: logger}
}

func (handler *ConversationHandler) CreateDirectConversation(c *fiber.Ctx) error {
	var request req.CreateDirectConversationRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.ConversationUsecase.CreateDirectConversation(c.Context(), middleware.UserID(c), &request)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.ConversationResponse](c, fiber.StatusCreated, "Conversation created", response)
}

func (handler *ConversationHandler) CreateGroupConversation(c *fiber.Ctx) error {
	var request req.CreateGroupConversationRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.ConversationUsecase.CreateGroupConversation(c.Context(), middleware.UserID(c), &request)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.ConversationResponse](c, fiber.StatusCreated, "Group created", response)
}

func (handler *ConversationHandler) GetConversations(c *fiber.Ctx) error {
	responses, err := handler.ConversationUsecase.GetConversationsByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[[]res.ConversationResponse](c, fiber.StatusOK, "Successfully retrieved conversations", responses)
}

func (handler *ConversationHandler) GetConversationByID(c *fiber.Ctx) error {
	response, err := handler.ConversationUsecase.GetConversationByID(c.Context(), c.Params("conversationId"), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.ConversationResponse](c, fiber.StatusOK, "Successfully retrieved conversation", response)
}

func (handler *ConversationHandler) AddParticipant(c *fiber.Ctx) error {
	var request req.AddParticipantRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	if err := handler.ConversationUsecase.AddParticipant(c.Context(), c.Params("conversationId"), request.UserID); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Participant added", struct{}{})
}

func (handler *ConversationHandler) RemoveParticipant(c *fiber.Ctx) error {
	if err := handler.ConversationUsecase.RemoveParticipant(c.Context(), c.Params("conversationId"), c.Params("userId")); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Participant removed", struct{}{})
}

func (handler *ConversationHandler) MarkRead(c *fiber.Ctx) error {
	var request req.MarkReadRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	if err := handler.ConversationUsecase.MarkRead(c.Context(), c.Params("conversationId"), middleware.UserID(c), request.MessageID); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Conversation marked as read", struct{}{})
}

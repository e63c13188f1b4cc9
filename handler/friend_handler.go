package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/middleware"
	"chat-app-core/usecase"
)

type FriendHandler struct {
	usecase.FriendUsecase
	*logrus.Logger
}

func NewFriendHandler(friendUsecase usecase.FriendUsecase, logger *logrus.Logger) *FriendHandler {
	return &FriendHandler{FriendUsecase: friendUsecase, Logger: logger}
}

func (handler *FriendHandler) SendFriendRequest(c *fiber.Ctx) error {
	var request req.SendFriendRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.FriendUsecase.SendFriendRequest(c.Context(), middleware.UserID(c), &request)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.FriendRequestResponse](c, fiber.StatusCreated, "Friend request sent", response)
}

func (handler *FriendHandler) AcceptFriendRequest(c *fiber.Ctx) error {
	response, err := handler.FriendUsecase.AcceptFriendRequest(c.Context(), middleware.UserID(c), c.Params("requestId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.FriendResponse](c, fiber.StatusOK, "Friend request accepted", response)
}

func (handler *FriendHandler) RejectFriendRequest(c *fiber.Ctx) error {
	if err := handler.FriendUsecase.RejectFriendRequest(c.Context(), middleware.UserID(c), c.Params("requestId")); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Friend request rejected", struct{}{})
}

func (handler *FriendHandler) Unfriend(c *fiber.Ctx) error {
	if err := handler.FriendUsecase.Unfriend(c.Context(), middleware.UserID(c), c.Params("friendId")); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Friend removed", struct{}{})
}

func (handler *FriendHandler) GetFriends(c *fiber.Ctx) error {
	responses, err := handler.FriendUsecase.GetFriends(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[[]res.FriendResponse](c, fiber.StatusOK, "Successfully retrieved friends", responses)
}

func (handler *FriendHandler) GetFriendRequests(c *fiber.Ctx) error {
	responses, err := handler.FriendUsecase.GetFriendRequests(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[[]res.FriendRequestResponse](c, fiber.StatusOK, "Successfully retrieved friend requests", responses)
}

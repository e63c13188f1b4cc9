package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/middleware"
	"chat-app-core/usecase"
)

type UserHandler struct {
	usecase.UserUsecase
	*logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Logger: logger}
}

func (handler *UserHandler) GetMe(c *fiber.Ctx) error {
	response, err := handler.UserUsecase.GetUserByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.UserResponse](c, fiber.StatusOK, "Successfully retrieved user", response)
}

func (handler *UserHandler) GetUserByID(c *fiber.Ctx) error {
	response, err := handler.UserUsecase.GetUserByID(c.Context(), c.Params("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.UserResponse](c, fiber.StatusOK, "Successfully retrieved user", response)
}

func (handler *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var request req.EditProfileRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.UserUsecase.UpdateProfile(c.Context(), middleware.UserID(c), &request)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.UserResponse](c, fiber.StatusOK, "Successfully updated profile", response)
}

func (handler *UserHandler) DeleteMe(c *fiber.Ctx) error {
	if err := handler.UserUsecase.DeleteUser(c.Context(), middleware.UserID(c)); err != nil {
		return writeError(c, err)
	}
	return writeJSON[struct{}](c, fiber.StatusOK, "Successfully deleted user", struct{}{})
}

func (handler *UserHandler) SearchUsers(c *fiber.Ctx) error {
	responses, err := handler.UserUsecase.SearchUsers(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[[]res.UserResponse](c, fiber.StatusOK, "Successfully searched users", responses)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/usecase"
)

type AuthHandler struct {
	usecase.AuthUsecase
	*logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{AuthUsecase: authUsecase, Logger: logger}
}

func (handler *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var request req.RegisterRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.AuthUsecase.RegisterUser(c.Context(), &request)
	if err != nil {
		handler.Logger.WithError(err).Warn("register failed")
		return writeError(c, err)
	}
	return writeJSON[res.RegisterResponse](c, fiber.StatusCreated, "Successfully registered", response)
}

func (handler *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var request req.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return fiber.ErrBadRequest
	}

	response, err := handler.AuthUsecase.LoginUser(c.Context(), &request)
	if err != nil {
		return writeError(c, err)
	}
	return writeJSON[res.LoginResponse](c, fiber.StatusOK, "Successfully logged in", response)
}

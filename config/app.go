package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"chat-app-core/cache"
	"chat-app-core/config/common"
	"chat-app-core/config/logger"
	"chat-app-core/handler"
	"chat-app-core/middleware"
	"chat-app-core/repository"
	"chat-app-core/routes"
	"chat-app-core/security"
	"chat-app-core/usecase"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	*DBConfig
	*security.JWT
	*middleware.Middleware
	UserCache *cache.UserCache
}

func RunServer() {
	newConfig := common.NewViper()
	app := NewFiber(newConfig)
	log := logrus.New()
	appLog := logger.NewLogger()
	newDB := NewDB(newConfig, appLog)
	newValidator := validator.New()
	newJWT := security.NewJWT(newConfig)
	newMiddleware := middleware.NewMiddleware(newConfig, newJWT, log)

	// Redis is a side channel only; a missing REDIS_ADDR just disables the
	// profile cache, it never blocks startup.
	var userCache *cache.UserCache
	if addr := newConfig.GetRedisAddr(); addr != "" {
		userCache = cache.NewUserCache(redis.NewClient(&redis.Options{Addr: addr}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:8080",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	App(&AppConfig{
		App:        app,
		Validate:   newValidator,
		Logger:     log,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: newMiddleware,
		UserCache:  userCache,
	})

	if err := app.Listen(newConfig.GetServerAddr()); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

func App(aC *AppConfig) {
	newUserRepository := repository.NewUserRepository()
	newFriendRepository := repository.NewFriendRepository()
	newFriendRequestRepository := repository.NewFriendRequestRepository()
	newConversationRepository := repository.NewConversationRepository()
	newParticipantRepository := repository.NewParticipantRepository()
	newMessageRepository := repository.NewMessageRepository()
	newLastMessageRepository := repository.NewLastMessageRepository()
	newFileRepository := repository.NewFileRepository()

	newAuthUsecase := usecase.NewAuthUsecase(newUserRepository, aC.Validate, aC.GetDB(), aC.Logger, aC.JWT)
	newUserUsecase := usecase.NewUserUsecase(newUserRepository, aC.Validate, aC.GetDB(), aC.AppLogger, aC.UserCache)
	newFriendUsecase := usecase.NewFriendUsecase(newFriendRepository, newFriendRequestRepository, newUserRepository, aC.Validate, aC.GetDB(), aC.Logger)
	newConversationUsecase := usecase.NewConversationUsecase(newConversationRepository, newParticipantRepository, newMessageRepository, newLastMessageRepository, newUserRepository, aC.Validate, aC.GetDB(), aC.Logger)
	newMessageUsecase := usecase.NewMessageUsecase(newMessageRepository, newLastMessageRepository, newParticipantRepository, newConversationRepository, aC.Validate, aC.GetDB(), aC.Logger)
	newFileUsecase := usecase.NewFileUsecase(newFileRepository, aC.GetDB(), aC.Logger)

	newAuthHandler := handler.NewAuthHandler(newAuthUsecase, aC.Logger)
	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Logger)
	newFriendHandler := handler.NewFriendHandler(newFriendUsecase, aC.Logger)
	newConversationHandler := handler.NewConversationHandler(newConversationUsecase, aC.Logger)
	newMessageHandler := handler.NewMessageHandler(newMessageUsecase, aC.Logger)
	newFileHandler := handler.NewFileHandler(newFileUsecase, aC.Logger)

	route := routes.ConfigRoute{
		App:                 aC.App,
		Middleware:          aC.Middleware,
		AuthHandler:         newAuthHandler,
		UserHandler:         newUserHandler,
		FriendHandler:       newFriendHandler,
		ConversationHandler: newConversationHandler,
		MessageHandler:      newMessageHandler,
		FileHandler:         newFileHandler,
	}
	route.GetRoute()
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"chat-app-core/handler"
	"chat-app-core/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.UserHandler
	*handler.FriendHandler
	*handler.ConversationHandler
	*handler.MessageHandler
	*handler.FileHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api/v1")
	app.Post("/auth/register", rc.AuthHandler.RegisterUser)
	app.Post("/auth/login", rc.AuthHandler.LoginUser)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1")
	app.Use(rc.Middleware.JWTProtected, rc.Middleware.ExtractUserID)

	app.Get("/users/me", rc.UserHandler.GetMe)
	app.Put("/users/me", rc.UserHandler.UpdateProfile)
	app.Delete("/users/me", rc.UserHandler.DeleteMe)
	app.Get("/users/search", rc.UserHandler.SearchUsers)
	app.Get("/users/:userId", rc.UserHandler.GetUserByID)

	app.Get("/friends", rc.FriendHandler.GetFriends)
	app.Delete("/friends/:friendId", rc.FriendHandler.Unfriend)
	app.Get("/friends/requests", rc.FriendHandler.GetFriendRequests)
	app.Post("/friends/requests", rc.FriendHandler.SendFriendRequest)
	app.Post("/friends/requests/:requestId/accept", rc.FriendHandler.AcceptFriendRequest)
	app.Delete("/friends/requests/:requestId", rc.FriendHandler.RejectFriendRequest)

	app.Get("/conversations", rc.ConversationHandler.GetConversations)
	app.Post("/conversations/direct", rc.ConversationHandler.CreateDirectConversation)
	app.Post("/conversations/group", rc.ConversationHandler.CreateGroupConversation)
	app.Get("/conversations/:conversationId", rc.ConversationHandler.GetConversationByID)
	app.Post("/conversations/:conversationId/participants", rc.ConversationHandler.AddParticipant)
	app.Delete("/conversations/:conversationId/participants/:userId", rc.ConversationHandler.RemoveParticipant)
	app.Post("/conversations/:conversationId/read", rc.ConversationHandler.MarkRead)

	app.Get("/conversations/:conversationId/messages", rc.MessageHandler.ListMessages)
	app.Post("/conversations/:conversationId/messages", rc.MessageHandler.SendMessage)
	app.Put("/messages/:messageId", rc.MessageHandler.EditMessage)
	app.Delete("/messages/:messageId", rc.MessageHandler.DeleteMessage)

	app.Post("/files", rc.FileHandler.UploadFile)
	app.Get("/files/mine", rc.FileHandler.ListMyFiles)
	app.Get("/files/:fileId", rc.FileHandler.GetFile)
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chat-app-core/config/common"
	"chat-app-core/config/logger"
	"chat-app-core/dto/req"
	"chat-app-core/dto/res"
	"chat-app-core/entity"
	"chat-app-core/repository"
	"chat-app-core/security"
	"chat-app-core/testutil"
	"chat-app-core/usecase"
)

// fixture wires every usecase against a fresh in-memory database. The
// participant repository is exposed directly for the reconciliation helper.
type fixture struct {
	db            *gorm.DB
	participants  *repository.ParticipantRepository
	friends       usecase.FriendUsecase
	conversations usecase.ConversationUsecase
	messages      usecase.MessageUsecase
	users         usecase.UserUsecase
	auth          usecase.AuthUsecase
	files         usecase.FileUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.OpenTestDB(t)
	validate := validator.New()
	log := testutil.QuietLogger()

	userRepository := repository.NewUserRepository()
	friendRepository := repository.NewFriendRepository()
	friendRequestRepository := repository.NewFriendRequestRepository()
	conversationRepository := repository.NewConversationRepository()
	participantRepository := repository.NewParticipantRepository()
	messageRepository := repository.NewMessageRepository()
	lastMessageRepository := repository.NewLastMessageRepository()
	fileRepository := repository.NewFileRepository()

	v := viper.New()
	v.Set("JWT_SECRET", "unit-test-secret")
	jwt := security.NewJWT(&common.Config{Viper: v})

	return &fixture{
		db:           db,
		participants: participantRepository,
		friends: usecase.NewFriendUsecase(
			friendRepository, friendRequestRepository, userRepository, validate, db, log,
		),
		conversations: usecase.NewConversationUsecase(
			conversationRepository, participantRepository, messageRepository,
			lastMessageRepository, userRepository, validate, db, log,
		),
		messages: usecase.NewMessageUsecase(
			messageRepository, lastMessageRepository, participantRepository,
			conversationRepository, validate, db, log,
		),
		users: usecase.NewUserUsecase(userRepository, validate, db, logger.NewNop(), nil),
		auth:  usecase.NewAuthUsecase(userRepository, validate, db, log, jwt),
		files: usecase.NewFileUsecase(fileRepository, db, log),
	}
}

func (f *fixture) directConversation(t *testing.T, initiator, recipient *entity.User) string {
	t.Helper()

	conversation, err := f.conversations.CreateDirectConversation(
		context.Background(), initiator.ID,
		&req.CreateDirectConversationRequest{RecipientID: recipient.ID},
	)
	require.NoError(t, err)
	return conversation.ConversationID
}

func (f *fixture) groupConversation(t *testing.T, creator *entity.User, name string, members ...*entity.User) string {
	t.Helper()

	memberIDs := make([]string, 0, len(members))
	for _, member := range members {
		memberIDs = append(memberIDs, member.ID)
	}
	conversation, err := f.conversations.CreateGroupConversation(
		context.Background(), creator.ID,
		&req.CreateGroupConversationRequest{Name: name, MemberIDs: memberIDs},
	)
	require.NoError(t, err)
	return conversation.ConversationID
}

func (f *fixture) sendText(t *testing.T, conversationID, senderID, content string) res.MessageResponse {
	t.Helper()

	message, err := f.messages.SendMessage(
		context.Background(), conversationID, senderID,
		&req.SendMessageRequest{Type: "text", Content: content},
	)
	require.NoError(t, err)
	return message
}

func (f *fixture) makeFriends(t *testing.T, requester, recipient *entity.User) {
	t.Helper()

	ctx := context.Background()
	request, err := f.friends.SendFriendRequest(ctx, requester.ID, &req.SendFriendRequest{RecipientID: recipient.ID})
	require.NoError(t, err)
	_, err = f.friends.AcceptFriendRequest(ctx, recipient.ID, request.ID)
	require.NoError(t, err)
}

// participant loads the membership row directly, including soft-deleted ones.
func (f *fixture) participant(t *testing.T, conversationID, userID string) *entity.Participant {
	t.Helper()

	var participant entity.Participant
	err := f.db.Unscoped().
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&participant).Error
	require.NoError(t, err)
	return &participant
}

func (f *fixture) lastMessage(t *testing.T, conversationID string) *entity.LastMessage {
	t.Helper()

	var last entity.LastMessage
	err := f.db.Where("conversation_id = ?", conversationID).First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return &last
}

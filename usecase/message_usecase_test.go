package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-app-core/apperr"
	"chat-app-core/dto/req"
	"chat-app-core/entity"
	"chat-app-core/testutil"
)

func TestSendMessageKeepsProjectionAndCountersInStep(t *testing.T) {
	f := newFixture(t)
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	first := f.sendText(t, conversationID, alice.ID, "hi")
	last := f.lastMessage(t, conversationID)
	require.NotNil(t, last)
	assert.Equal(t, first.MessageID, last.MessageID)
	assert.Equal(t, "hi", last.Content)
	assert.Zero(t, f.participant(t, conversationID, alice.ID).UnreadCount)
	assert.Equal(t, 1, f.participant(t, conversationID, bob.ID).UnreadCount)

	second := f.sendText(t, conversationID, bob.ID, "hey")
	last = f.lastMessage(t, conversationID)
	require.NotNil(t, last)
	assert.Equal(t, second.MessageID, last.MessageID)
	assert.Equal(t, "hey", last.Content)
	assert.Equal(t, bob.ID, last.SenderID)

	// Replying implies having read what came before it.
	assert.Equal(t, 1, f.participant(t, conversationID, alice.ID).UnreadCount)
	assert.Zero(t, f.participant(t, conversationID, bob.ID).UnreadCount)
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	conversationID := f.directConversation(t, alice, bob)

	// Not a participant.
	_, err := f.messages.SendMessage(ctx, conversationID, carol.ID, &req.SendMessageRequest{Type: "text", Content: "hi"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Text needs content, media needs a file url.
	_, err = f.messages.SendMessage(ctx, conversationID, alice.ID, &req.SendMessageRequest{Type: "text", Content: "   "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = f.messages.SendMessage(ctx, conversationID, alice.ID, &req.SendMessageRequest{Type: "image"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = f.messages.SendMessage(ctx, conversationID, alice.ID, &req.SendMessageRequest{Type: "sticker", Content: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Nothing leaked from the failed attempts.
	assert.Nil(t, f.lastMessage(t, conversationID))
	assert.Zero(t, f.participant(t, conversationID, bob.ID).UnreadCount)
}

func TestSendMessageReplyMustStayInConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	conversationID := f.directConversation(t, alice, bob)
	otherID := f.directConversation(t, alice, carol)

	original := f.sendText(t, conversationID, alice.ID, "original")
	elsewhere := f.sendText(t, otherID, alice.ID, "elsewhere")

	reply, err := f.messages.SendMessage(ctx, conversationID, bob.ID, &req.SendMessageRequest{
		Type:      "text",
		Content:   "replying",
		ReplyToID: original.MessageID,
	})
	require.NoError(t, err)
	assert.Equal(t, original.MessageID, reply.ReplyToID)

	_, err = f.messages.SendMessage(ctx, conversationID, bob.ID, &req.SendMessageRequest{
		Type:      "text",
		Content:   "cross reply",
		ReplyToID: elsewhere.MessageID,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.messages.SendMessage(ctx, conversationID, bob.ID, &req.SendMessageRequest{
		Type:      "text",
		Content:   "ghost reply",
		ReplyToID: uuid.NewString(),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestEditMessage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	older := f.sendText(t, conversationID, alice.ID, "draft")
	newest := f.sendText(t, conversationID, bob.ID, "latest")

	_, err := f.messages.EditMessage(ctx, older.MessageID, bob.ID, &req.EditMessageRequest{Content: "hijack"})
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	// Editing a non-mirrored message leaves the projection alone.
	edited, err := f.messages.EditMessage(ctx, older.MessageID, alice.ID, &req.EditMessageRequest{Content: "final"})
	require.NoError(t, err)
	assert.True(t, edited.IsEdited)
	assert.Equal(t, "final", edited.Content)
	assert.Equal(t, "latest", f.lastMessage(t, conversationID).Content)

	// Editing the mirrored message refreshes the projection content.
	_, err = f.messages.EditMessage(ctx, newest.MessageID, bob.ID, &req.EditMessageRequest{Content: "latest, edited"})
	require.NoError(t, err)
	last := f.lastMessage(t, conversationID)
	assert.Equal(t, newest.MessageID, last.MessageID)
	assert.Equal(t, "latest, edited", last.Content)
}

func TestDeleteMessageRecomputesProjection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	older := f.sendText(t, conversationID, alice.ID, "keep me")
	newest := f.sendText(t, conversationID, bob.ID, "delete me")

	err := f.messages.DeleteMessage(ctx, newest.MessageID, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	// Deleting the mirrored message falls back to the older survivor.
	require.NoError(t, f.messages.DeleteMessage(ctx, newest.MessageID, bob.ID))
	last := f.lastMessage(t, conversationID)
	require.NotNil(t, last)
	assert.Equal(t, older.MessageID, last.MessageID)
	assert.Equal(t, "keep me", last.Content)

	// The row is soft-deleted, not gone.
	var deleted entity.Message
	require.NoError(t, f.db.Unscoped().Where("id = ?", newest.MessageID).First(&deleted).Error)
	assert.True(t, deleted.DeletedAt.Valid)

	err = f.messages.DeleteMessage(ctx, newest.MessageID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Deleting the last survivor clears the projection entirely.
	require.NoError(t, f.messages.DeleteMessage(ctx, older.MessageID, alice.ID))
	assert.Nil(t, f.lastMessage(t, conversationID))
}

func TestDeleteNonMirroredMessageLeavesProjection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	older := f.sendText(t, conversationID, alice.ID, "old news")
	newest := f.sendText(t, conversationID, bob.ID, "current")

	require.NoError(t, f.messages.DeleteMessage(ctx, older.MessageID, alice.ID))
	last := f.lastMessage(t, conversationID)
	require.NotNil(t, last)
	assert.Equal(t, newest.MessageID, last.MessageID)
}

func TestListMessagesPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	for i := 1; i <= 7; i++ {
		f.sendText(t, conversationID, alice.ID, fmt.Sprintf("message %d", i))
	}

	page, err := f.messages.ListMessages(ctx, conversationID, bob.ID, "", 3)
	require.NoError(t, err)
	require.Len(t, page.Messages, 3)
	assert.NotEmpty(t, page.NextCursor)
	assert.Equal(t, "message 7", page.Messages[0].Content)
	assert.Equal(t, "message 5", page.Messages[2].Content)

	page, err = f.messages.ListMessages(ctx, conversationID, bob.ID, page.NextCursor, 3)
	require.NoError(t, err)
	require.Len(t, page.Messages, 3)
	assert.Equal(t, "message 4", page.Messages[0].Content)
	assert.Equal(t, "message 2", page.Messages[2].Content)

	// The final partial page carries no cursor.
	page, err = f.messages.ListMessages(ctx, conversationID, bob.ID, page.NextCursor, 3)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, "message 1", page.Messages[0].Content)
	assert.Empty(t, page.NextCursor)
}

func TestListMessagesPaginationCoversEveryRowOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	const total = 10
	for i := 0; i < total; i++ {
		f.sendText(t, conversationID, alice.ID, fmt.Sprintf("m%d", i))
	}

	seen := map[string]bool{}
	cursor := ""
	for {
		page, err := f.messages.ListMessages(ctx, conversationID, bob.ID, cursor, 4)
		require.NoError(t, err)
		for _, message := range page.Messages {
			assert.False(t, seen[message.MessageID], "row %s repeated", message.MessageID)
			seen[message.MessageID] = true
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	assert.Len(t, seen, total)
}

func TestListMessagesGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	conversationID := f.directConversation(t, alice, bob)
	f.sendText(t, conversationID, alice.ID, "hello")

	_, err := f.messages.ListMessages(ctx, conversationID, carol.ID, "", 10)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	_, err = f.messages.ListMessages(ctx, conversationID, bob.ID, "not-a-cursor", 10)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Deleted messages drop out of the listing.
	page, err := f.messages.ListMessages(ctx, conversationID, bob.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	require.NoError(t, f.messages.DeleteMessage(ctx, page.Messages[0].MessageID, alice.ID))
	page, err = f.messages.ListMessages(ctx, conversationID, bob.ID, "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
}

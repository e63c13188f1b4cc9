package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-app-core/apperr"
	"chat-app-core/dto/req"
	"chat-app-core/entity"
	"chat-app-core/testutil"
)

func TestCreateDirectConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")

	conversation, err := f.conversations.CreateDirectConversation(ctx, alice.ID, &req.CreateDirectConversationRequest{
		RecipientID: bob.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", conversation.Type)
	assert.Nil(t, conversation.GroupInfo)
	require.Len(t, conversation.Participants, 2)
	for _, participant := range conversation.Participants {
		assert.Zero(t, participant.UnreadCount)
	}

	// At most one live direct conversation per pair, in either order.
	_, err = f.conversations.CreateDirectConversation(ctx, alice.ID, &req.CreateDirectConversationRequest{RecipientID: bob.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	_, err = f.conversations.CreateDirectConversation(ctx, bob.ID, &req.CreateDirectConversationRequest{RecipientID: alice.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreateDirectConversationRejectsSelfAndUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")

	_, err := f.conversations.CreateDirectConversation(ctx, alice.ID, &req.CreateDirectConversationRequest{RecipientID: alice.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = f.conversations.CreateDirectConversation(ctx, alice.ID, &req.CreateDirectConversationRequest{RecipientID: uuid.NewString()})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateGroupConversation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")

	// Duplicate member ids and the creator's own id collapse to one row each.
	conversation, err := f.conversations.CreateGroupConversation(ctx, alice.ID, &req.CreateGroupConversationRequest{
		Name:      "weekend plans",
		MemberIDs: []string{bob.ID, carol.ID, bob.ID, alice.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "group", conversation.Type)
	require.NotNil(t, conversation.GroupInfo)
	assert.Equal(t, "weekend plans", conversation.GroupInfo.Name)
	assert.Equal(t, alice.ID, conversation.GroupInfo.CreatedBy)
	assert.Len(t, conversation.Participants, 3)
}

func TestCreateGroupConversationRollsBackOnUnknownMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")

	_, err := f.conversations.CreateGroupConversation(ctx, alice.ID, &req.CreateGroupConversationRequest{
		Name:      "ghosts",
		MemberIDs: []string{bob.ID, uuid.NewString()},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Nothing survives the rollback.
	var conversations, participants int64
	require.NoError(t, f.db.Model(&entity.Conversation{}).Count(&conversations).Error)
	require.NoError(t, f.db.Model(&entity.Participant{}).Count(&participants).Error)
	assert.Zero(t, conversations)
	assert.Zero(t, participants)
}

func TestAddParticipantRevivesRemovedMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	conversationID := f.groupConversation(t, alice, "team", bob)

	require.NoError(t, f.conversations.AddParticipant(ctx, conversationID, carol.ID))
	firstRow := f.participant(t, conversationID, carol.ID)

	err := f.conversations.AddParticipant(ctx, conversationID, carol.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Build up carol's unread state, remove her, let traffic continue.
	f.sendText(t, conversationID, alice.ID, "hello all")
	assert.Equal(t, 1, f.participant(t, conversationID, carol.ID).UnreadCount)

	require.NoError(t, f.conversations.RemoveParticipant(ctx, conversationID, carol.ID))
	f.sendText(t, conversationID, alice.ID, "carol left")

	_, err = f.messages.ListMessages(ctx, conversationID, carol.ID, "", 10)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	// Re-adding revives the same row with a clean slate.
	require.NoError(t, f.conversations.AddParticipant(ctx, conversationID, carol.ID))
	revived := f.participant(t, conversationID, carol.ID)
	assert.Equal(t, firstRow.ID, revived.ID)
	assert.False(t, revived.DeletedAt.Valid)
	assert.Zero(t, revived.UnreadCount)
	assert.Nil(t, revived.LastSeenMessageID)
	assert.True(t, revived.JoinedAt.After(firstRow.JoinedAt) || revived.JoinedAt.Equal(firstRow.JoinedAt))

	var rows int64
	require.NoError(t, f.db.Unscoped().Model(&entity.Participant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, carol.ID).
		Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestRemoveParticipantNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	conversationID := f.groupConversation(t, alice, "team", bob)

	err := f.conversations.RemoveParticipant(ctx, conversationID, carol.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, f.conversations.RemoveParticipant(ctx, conversationID, bob.ID))
	err = f.conversations.RemoveParticipant(ctx, conversationID, bob.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestMarkRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	conversationID := f.directConversation(t, alice, bob)
	otherConversationID := f.directConversation(t, alice, carol)

	f.sendText(t, conversationID, alice.ID, "one")
	second := f.sendText(t, conversationID, alice.ID, "two")
	stray := f.sendText(t, otherConversationID, alice.ID, "elsewhere")

	assert.Equal(t, 2, f.participant(t, conversationID, bob.ID).UnreadCount)

	// The marking message must belong to the conversation.
	err := f.conversations.MarkRead(ctx, conversationID, bob.ID, stray.MessageID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = f.conversations.MarkRead(ctx, conversationID, bob.ID, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, f.conversations.MarkRead(ctx, conversationID, bob.ID, second.MessageID))
	participant := f.participant(t, conversationID, bob.ID)
	assert.Zero(t, participant.UnreadCount)
	require.NotNil(t, participant.LastSeenMessageID)
	assert.Equal(t, second.MessageID, *participant.LastSeenMessageID)

	// Non-members have no row to mark.
	err = f.conversations.MarkRead(ctx, conversationID, carol.ID, second.MessageID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUnreadCounterMatchesRecount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	conversationID := f.directConversation(t, alice, bob)

	first := f.sendText(t, conversationID, alice.ID, "one")
	f.sendText(t, conversationID, alice.ID, "two")
	f.sendText(t, conversationID, bob.ID, "three")
	f.sendText(t, conversationID, alice.ID, "four")

	require.NoError(t, f.conversations.MarkRead(ctx, conversationID, bob.ID, first.MessageID))
	f.sendText(t, conversationID, alice.ID, "five")

	// After the reset the denormalized counter and a recount from bob's
	// last-seen marker agree: two, four and five are newer and not his own.
	participant := f.participant(t, conversationID, bob.ID)
	recount, err := f.participants.CountUnreadSince(ctx, f.db, participant)
	require.NoError(t, err)
	assert.EqualValues(t, 1, participant.UnreadCount)
	assert.EqualValues(t, 3, recount)
}

func TestGetConversations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")
	carol := testutil.CreateTestUser(t, f.db, "carol")
	directID := f.directConversation(t, alice, bob)
	groupID := f.groupConversation(t, alice, "team", bob, carol)

	f.sendText(t, directID, bob.ID, "ping")

	conversations, err := f.conversations.GetConversationsByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	byID := map[string]int{}
	for i, conversation := range conversations {
		byID[conversation.ConversationID] = i
	}
	direct := conversations[byID[directID]]
	require.NotNil(t, direct.LastMessage)
	assert.Equal(t, "ping", direct.LastMessage.Content)
	assert.Equal(t, bob.ID, direct.LastMessage.SenderID)

	group := conversations[byID[groupID]]
	assert.Nil(t, group.LastMessage)
	require.NotNil(t, group.GroupInfo)

	_, err = f.conversations.GetConversationByID(ctx, directID, carol.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))

	conversations, err = f.conversations.GetConversationsByUser(ctx, carol.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, groupID, conversations[0].ConversationID)
}

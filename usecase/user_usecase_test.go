package usecase_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-app-core/apperr"
	"chat-app-core/cache"
	"chat-app-core/config/logger"
	"chat-app-core/dto/req"
	"chat-app-core/repository"
	"chat-app-core/testutil"
	"chat-app-core/usecase"
)

func TestGetUserByIDServesFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")

	userCache := cache.NewUserCache(testutil.OpenTestRedis(t))
	users := usecase.NewUserUsecase(repository.NewUserRepository(), validator.New(), f.db, logger.NewNop(), userCache)

	first, err := users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Username)

	// A direct row change is invisible while the cache entry lives.
	require.NoError(t, f.db.Model(alice).UpdateColumn("display_name", "changed behind the cache").Error)
	second, err := users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.DisplayName, second.DisplayName)

	// A profile update invalidates, so the next read sees fresh state.
	_, err = users.UpdateProfile(ctx, alice.ID, &req.EditProfileRequest{DisplayName: "Alice A."})
	require.NoError(t, err)
	third, err := users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", third.DisplayName)
}

func TestUpdateProfileConflictsOnTakenIdentifier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")

	_, err := f.users.UpdateProfile(ctx, bob.ID, &req.EditProfileRequest{Username: "alice"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Case only differs: still taken.
	_, err = f.users.UpdateProfile(ctx, bob.ID, &req.EditProfileRequest{Username: "ALICE"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	updated, err := f.users.UpdateProfile(ctx, bob.ID, &req.EditProfileRequest{Username: "bobby", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, "hi", updated.Bio)
}

func TestDeleteUserFreesIdentifiers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")

	require.NoError(t, f.users.DeleteUser(ctx, alice.ID))

	_, err := f.users.GetUserByID(ctx, alice.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The soft-deleted row no longer holds the username or email.
	_, err = f.auth.RegisterUser(ctx, &req.RegisterRequest{
		Username:    "alice",
		Email:       "alice@example.com",
		Password:    "secret123",
		DisplayName: "Alice Again",
	})
	assert.NoError(t, err)
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateTestUser(t, f.db, "alice")
	testutil.CreateTestUser(t, f.db, "alan")
	testutil.CreateTestUser(t, f.db, "bob")

	results, err := f.users.SearchUsers(ctx, "al")
	require.NoError(t, err)
	usernames := make([]string, 0, len(results))
	for _, result := range results {
		usernames = append(usernames, result.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "alan"}, usernames)

	_, err = f.users.SearchUsers(ctx, "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

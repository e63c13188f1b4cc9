package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-app-core/apperr"
	"chat-app-core/testutil"
)

func TestRecordUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")

	file, err := f.files.RecordUpload(ctx, alice.ID, "holiday.png", "image/png", 2048)
	require.NoError(t, err)
	assert.Equal(t, "holiday.png", file.OriginalFilename)
	assert.True(t, strings.HasSuffix(file.Filename, ".png"))
	assert.NotEqual(t, "holiday.png", file.Filename)
	assert.True(t, strings.HasPrefix(file.URL, "/uploads/"))

	_, err = f.files.RecordUpload(ctx, alice.ID, "", "image/png", 2048)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = f.files.RecordUpload(ctx, alice.ID, "empty.png", "image/png", 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGetFileAndListByUploader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateTestUser(t, f.db, "alice")
	bob := testutil.CreateTestUser(t, f.db, "bob")

	first, err := f.files.RecordUpload(ctx, alice.ID, "a.txt", "text/plain", 10)
	require.NoError(t, err)
	_, err = f.files.RecordUpload(ctx, alice.ID, "b.txt", "text/plain", 20)
	require.NoError(t, err)
	_, err = f.files.RecordUpload(ctx, bob.ID, "c.txt", "text/plain", 30)
	require.NoError(t, err)

	fetched, err := f.files.GetFile(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", fetched.OriginalFilename)

	_, err = f.files.GetFile(ctx, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	mine, err := f.files.ListByUploader(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Users_LinkTelegramChat_WithToken_LinksAndClearsToken(t *testing.T) {
	dbCtx := newTestDb(t)
	repo := NewUsersRepository(dbCtx.DB)
	ctx := context.Background()
	user := addUser(t, dbCtx, "recruiter")

	missing, err := repo.GetByTelegramChatID(ctx, 555)
	require.NoError(t, err)
	assert.Nil(t, missing)

	stored, err := repo.SetLinkToken(ctx, user.ID, "one-time")
	require.NoError(t, err)
	require.True(t, stored)

	linked, err := repo.LinkTelegramChat(ctx, "one-time", 555)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, user.ID, linked.ID)

	byChat, err := repo.GetByTelegramChatID(ctx, 555)
	require.NoError(t, err)
	require.NotNil(t, byChat)
	assert.Equal(t, user.ID, byChat.ID)
	assert.Nil(t, byChat.LinkToken)
}

func Test_Users_LinkTelegramChat_WhenTokenReused_ReturnsNil(t *testing.T) {
	dbCtx := newTestDb(t)
	repo := NewUsersRepository(dbCtx.DB)
	ctx := context.Background()
	user := addUser(t, dbCtx, "recruiter")

	_, err := repo.SetLinkToken(ctx, user.ID, "one-time")
	require.NoError(t, err)
	_, err = repo.LinkTelegramChat(ctx, "one-time", 555)
	require.NoError(t, err)

	again, err := repo.LinkTelegramChat(ctx, "one-time", 900)
	require.NoError(t, err)
	assert.Nil(t, again)

	unknown, err := repo.LinkTelegramChat(ctx, "guessed", 900)
	require.NoError(t, err)
	assert.Nil(t, unknown)

	stranger, err := repo.GetByTelegramChatID(ctx, 900)
	require.NoError(t, err)
	assert.Nil(t, stranger)
}

func Test_Users_SetLinkToken_WhenAlreadyLinked_Refuses(t *testing.T) {
	dbCtx := newTestDb(t)
	repo := NewUsersRepository(dbCtx.DB)
	ctx := context.Background()
	user := addUser(t, dbCtx, "recruiter")

	_, err := repo.SetLinkToken(ctx, user.ID, "first")
	require.NoError(t, err)
	_, err = repo.LinkTelegramChat(ctx, "first", 555)
	require.NoError(t, err)

	stored, err := repo.SetLinkToken(ctx, user.ID, "second")
	require.NoError(t, err)
	assert.False(t, stored)

	relinked, err := repo.LinkTelegramChat(ctx, "second", 900)
	require.NoError(t, err)
	assert.Nil(t, relinked)

	byName, err := repo.GetByUsername(ctx, "recruiter")
	require.NoError(t, err)
	require.NotNil(t, byName.TelegramChatID)
	assert.Equal(t, int64(555), *byName.TelegramChatID)
}

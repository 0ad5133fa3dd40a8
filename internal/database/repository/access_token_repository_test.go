package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useradmin/internal/database/models"
)

func seedToken(t *testing.T, repo AccessTokenRepository, userID uint, hash string) *models.AccessToken {
	t.Helper()

	token := &models.AccessToken{
		UserID:    userID,
		Name:      "auth_token",
		TokenHash: hash,
	}
	require.NoError(t, repo.Create(token))
	return token
}

func TestAccessTokenRepository_FindByTokenHash(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	repo := NewAccessTokenRepository(db)

	user := seedUser(t, db, "tokens@example.com")
	seedToken(t, repo, user.ID, "hash-1")

	found, err := repo.FindByTokenHash("hash-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.Equal(t, user.Email, found.User.Email)

	_, err = repo.FindByTokenHash("missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	t.Run("token of a soft-deleted user still resolves", func(t *testing.T) {
		require.NoError(t, userRepo.SoftDelete(user.ID))

		found, err := repo.FindByTokenHash("hash-1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.User.ID)
		assert.True(t, found.User.IsDeleted())
	})
}

func TestAccessTokenRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccessTokenRepository(db)

	user := seedUser(t, db, "revoke@example.com")
	token := seedToken(t, repo, user.ID, "hash-2")

	require.NoError(t, repo.Delete(token.ID))
	_, err := repo.FindByTokenHash("hash-2")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	assert.ErrorIs(t, repo.Delete(token.ID), ErrTokenNotFound)
}

func TestAccessTokenRepository_DeleteAllUserTokens(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccessTokenRepository(db)

	user := seedUser(t, db, "bulk@example.com")
	other := seedUser(t, db, "other@example.com")
	seedToken(t, repo, user.ID, "hash-3")
	seedToken(t, repo, user.ID, "hash-4")
	seedToken(t, repo, other.ID, "hash-5")

	require.NoError(t, repo.DeleteAllUserTokens(user.ID))

	count, err := repo.CountUserTokens(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountUserTokens(other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

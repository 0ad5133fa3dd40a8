package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"useradmin/internal/database/models"
	"useradmin/internal/database/repository"
)

// setupTestDB creates a new in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.AccessToken{})
	require.NoError(t, err)

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUserService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	return NewUserService(repository.NewUserRepository(db), testLogger()), db
}

func TestUserService_CreateOrResurrect(t *testing.T) {
	t.Run("fresh email creates an active user", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		user, err := svc.CreateOrResurrect("Alice", "alice@example.com", "secret1", models.RoleAdmin)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.False(t, user.IsDeleted())

		// The password is stored hashed, never plaintext.
		assert.NotEqual(t, "secret1", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
	})

	t.Run("active email is rejected", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.CreateOrResurrect("Alice", "dup@example.com", "secret1", models.RoleUser)
		require.NoError(t, err)

		_, err = svc.CreateOrResurrect("Mallory", "dup@example.com", "secret2", models.RoleUser)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("soft-deleted email resurrects the original row", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		original, err := svc.CreateOrResurrect("Bob", "bob@example.com", "secret1", models.RoleUser)
		require.NoError(t, err)
		require.NoError(t, svc.SoftDelete(original.ID))

		revived, err := svc.CreateOrResurrect("Bobby", "bob@example.com", "newsecret", models.RoleAdmin)
		require.NoError(t, err)

		assert.Equal(t, original.ID, revived.ID)
		assert.Equal(t, "Bobby", revived.Name)
		assert.Equal(t, models.RoleAdmin, revived.Role)
		assert.False(t, revived.IsDeleted())
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(revived.Password), []byte("newsecret")))
	})
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.CreateOrResurrect("Carol", "carol@example.com", "password1", models.RoleUser)
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		found, err := svc.Authenticate("carol@example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("carol@example.com", "password2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@example.com", "password1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("soft-deleted user may still authenticate", func(t *testing.T) {
		require.NoError(t, svc.SoftDelete(user.ID))

		found, err := svc.Authenticate("carol@example.com", "password1")
		require.NoError(t, err)
		assert.True(t, found.IsDeleted())
	})
}

func TestUserService_Update(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.CreateOrResurrect("Dave", "dave@example.com", "password1", models.RoleUser)
	require.NoError(t, err)

	t.Run("partial update leaves absent fields untouched", func(t *testing.T) {
		name := "David"
		updated, err := svc.Update(user.ID, UpdateUserInput{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "David", updated.Name)
		assert.Equal(t, "dave@example.com", updated.Email)
		assert.Equal(t, models.RoleUser, updated.Role)
		assert.Equal(t, user.Password, updated.Password)
	})

	t.Run("email collision with another active user", func(t *testing.T) {
		_, err := svc.CreateOrResurrect("Eve", "eve@example.com", "password1", models.RoleUser)
		require.NoError(t, err)

		email := "eve@example.com"
		_, err = svc.Update(user.ID, UpdateUserInput{Email: &email})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("own email is not a collision", func(t *testing.T) {
		email := "dave@example.com"
		_, err := svc.Update(user.ID, UpdateUserInput{Email: &email})
		assert.NoError(t, err)
	})

	t.Run("password is re-hashed", func(t *testing.T) {
		password := "password2"
		updated, err := svc.Update(user.ID, UpdateUserInput{Password: &password})
		require.NoError(t, err)
		assert.NotEqual(t, "password2", updated.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("password2")))
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "Nobody"
		_, err := svc.Update(9999, UpdateUserInput{Name: &name})
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserService_Restore(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.CreateOrResurrect("Frank", "frank@example.com", "password1", models.RoleUser)
	require.NoError(t, err)

	t.Run("active user is not restorable", func(t *testing.T) {
		_, err := svc.Restore(user.ID)
		assert.ErrorIs(t, err, ErrUserNotDeleted)
	})

	t.Run("soft-deleted user is restored", func(t *testing.T) {
		require.NoError(t, svc.SoftDelete(user.ID))

		restored, err := svc.Restore(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, restored.ID)
		assert.False(t, restored.IsDeleted())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Restore(9999)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	svc, _ := newTestUserService(t)

	emails := []string{
		"u01@example.com", "u02@example.com", "u03@example.com", "u04@example.com",
		"u05@example.com", "u06@example.com", "u07@example.com", "u08@example.com",
		"u09@example.com", "u10@example.com", "u11@example.com", "u12@example.com",
	}
	var deleted *models.User
	for i, email := range emails {
		user, err := svc.CreateOrResurrect("User", email, "password1", models.RoleUser)
		require.NoError(t, err)
		if i == 0 {
			deleted = user
		}
	}
	require.NoError(t, svc.SoftDelete(deleted.ID))

	page1, total, err := svc.List(1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, page1, UsersPerPage)
	assert.True(t, page1[0].IsDeleted(), "soft-deleted users are listed")

	page2, _, err := svc.List(2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
}

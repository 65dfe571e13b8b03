package repositories

import (
	"testing"

	"griddle/app/models"

	"github.com/stretchr/testify/assert"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerUserRepository(db)

	t.Run("create and get user", func(t *testing.T) {
		user := &models.User{
			Username:     "alice",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleUser,
		}
		err := repo.Create(user)
		assert.NoError(t, err)
		assert.Greater(t, user.ID, 0)
		assert.False(t, user.CreatedAt.IsZero())

		retrieved, err := repo.GetByID(user.ID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", retrieved.Username)
		assert.Equal(t, "$2a$10$hash", retrieved.PasswordHash)
		assert.Equal(t, models.RoleUser, retrieved.Role)
	})

	t.Run("get by username", func(t *testing.T) {
		user := &models.User{
			Username:     "bob",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleUser,
		}
		assert.NoError(t, repo.Create(user))

		retrieved, err := repo.GetByUsername("bob")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, retrieved.ID)

		// Exact match only
		_, err = repo.GetByUsername("Bob")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		user := &models.User{
			Username:     "carol",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleUser,
		}
		assert.NoError(t, repo.Create(user))

		dup := &models.User{
			Username:     "carol",
			PasswordHash: "$2a$10$other",
			Role:         models.RoleUser,
		}
		err := repo.Create(dup)
		assert.ErrorIs(t, err, ErrDuplicateUsername)

		// The stored record is untouched
		stored, err := repo.GetByUsername("carol")
		assert.NoError(t, err)
		assert.Equal(t, "$2a$10$hash", stored.PasswordHash)
	})

	t.Run("set role", func(t *testing.T) {
		user := &models.User{
			Username:     "dave",
			PasswordHash: "$2a$10$hash",
			Role:         models.RoleUser,
		}
		assert.NoError(t, repo.Create(user))

		assert.NoError(t, repo.SetRole(user.ID, models.RoleAdmin))

		promoted, err := repo.GetByID(user.ID)
		assert.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, promoted.Role)
	})

	t.Run("set role on missing user", func(t *testing.T) {
		err := repo.SetRole(9999, models.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list users ordered by id", func(t *testing.T) {
		users, err := repo.List()
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(users), 4)
		for i := 1; i < len(users); i++ {
			assert.Less(t, users[i-1].ID, users[i].ID)
		}
	})

	t.Run("get missing user", func(t *testing.T) {
		_, err := repo.GetByID(9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

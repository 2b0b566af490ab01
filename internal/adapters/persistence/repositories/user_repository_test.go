package repositories

import (
	"context"
	"testing"
	"time"

	"rentdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func TestUserRepository_LookupsAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, repo.Create(ctx, &models.User{Username: name, Email: name + "@example.com", Password: "x"}))
	}

	u, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)

	u, err = repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = repo.GetByUsername(ctx, "dave")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	users, total, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
}

func TestUserRepository_DeletedNamesStayReserved(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRefreshTokenRepository_Revocation(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewUserRepository(db)
	repo := NewRefreshTokenRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, users.Create(ctx, user))

	expires := time.Now().Add(time.Hour)
	first := &models.RefreshToken{UserID: user.ID, TokenHash: "h1", ExpiresAt: expires}
	second := &models.RefreshToken{UserID: user.ID, TokenHash: "h2", ExpiresAt: expires}
	stale := &models.RefreshToken{UserID: user.ID, TokenHash: "h3", ExpiresAt: time.Now().Add(-time.Hour)}
	for _, tok := range []*models.RefreshToken{first, second, stale} {
		require.NoError(t, repo.Create(ctx, tok))
	}

	got, err := repo.GetByTokenHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	require.NoError(t, repo.RevokeByTokenHash(ctx, "h1"))
	_, err = repo.GetByTokenHash(ctx, "h1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var revoked models.RefreshToken
	require.NoError(t, db.First(&revoked, first.ID).Error)
	require.NotNil(t, revoked.RevokedAt)
	stamp := *revoked.RevokedAt

	// revoking everything leaves the earlier stamp alone
	require.NoError(t, repo.RevokeAllByUserID(ctx, user.ID))
	require.NoError(t, db.First(&revoked, first.ID).Error)
	assert.True(t, stamp.Equal(*revoked.RevokedAt))
	_, err = repo.GetByTokenHash(ctx, "h2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	purged, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}

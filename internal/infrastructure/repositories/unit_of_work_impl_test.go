package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/pkg/utils"
)

func newUser(email string) *entities.User {
	now := time.Now().UTC()
	return &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         entities.NameFromEmail(email),
		PasswordHash: "hash",
		Role:         entities.UserRoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	return count
}

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	u := NewUnitOfWork(db)
	users := NewUserRepository(db)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return users.Create(ctx, newUser("a@example.com"))
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), countUsers(t, db))

	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := users.Create(ctx, newUser("b@example.com")); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.EqualError(t, err, "force rollback")
	require.Equal(t, int64(1), countUsers(t, db), "second insert must be rolled back")
}

func TestUnitOfWork_NestedDoJoinsOuterTransaction(t *testing.T) {
	db := newTestDB(t)
	u := NewUnitOfWork(db)
	users := NewUserRepository(db)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		if err := u.Do(ctx, func(inner context.Context) error {
			require.Same(t, GetDB(ctx, db), GetDB(inner, db))
			return users.Create(inner, newUser("nested@example.com"))
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})
	require.Error(t, err)
	require.Equal(t, int64(0), countUsers(t, db))
}

func TestUnitOfWork_PanicRollsBack(t *testing.T) {
	db := newTestDB(t)
	u := NewUnitOfWork(db)
	users := NewUserRepository(db)

	require.Panics(t, func() {
		_ = u.Do(context.Background(), func(ctx context.Context) error {
			require.NoError(t, users.Create(ctx, newUser("panic@example.com")))
			panic("boom")
		})
	})
	require.Equal(t, int64(0), countUsers(t, db))
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := NewUnitOfWork(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(ctx context.Context) error { return nil })
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}

func TestUnitOfWork_DoCommitFailure_WithHook(t *testing.T) {
	db := newTestDB(t)
	u := NewUnitOfWork(db)

	origCommit := commitTx
	t.Cleanup(func() { commitTx = origCommit })
	commitTx = func(tx *gorm.DB) error { return errors.New("commit failed") }

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return NewUserRepository(db).Create(ctx, newUser("c@example.com"))
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to commit transaction")
	require.Equal(t, int64(0), countUsers(t, db))
}

func TestGetDB_FallsBackOutsideTransaction(t *testing.T) {
	db := newTestDB(t)
	require.NotNil(t, GetDB(context.Background(), db))

	tx := db.Begin()
	defer tx.Rollback()
	ctx := context.WithValue(context.Background(), txKey, tx)
	require.Same(t, tx, GetDB(ctx, db))
}

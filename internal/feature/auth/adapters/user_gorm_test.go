package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"taskverse_backend/internal/feature/auth/domain/entity"
	"taskverse_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}), "failed to migrate table")
	return db
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("assigns id and timestamps", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		user := &entity.User{Email: "a@x.com", Password: "hashed", FirstName: "Ada"}
		err := repo.Create(context.Background(), user)

		require.NoError(t, err)
		assert.Len(t, user.ID, 36, "expected a UUID string")
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("keeps a preset id", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		user := &entity.User{ID: "fixed-id", Email: "a@x.com", Password: "hashed"}
		require.NoError(t, repo.Create(context.Background(), user))

		found, err := repo.FindByID(context.Background(), "fixed-id")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", found.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		require.NoError(t, repo.Create(context.Background(), &entity.User{Email: "dup@x.com", Password: "p1"}))
		err := repo.Create(context.Background(), &entity.User{Email: "dup@x.com", Password: "p2"})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})

	t.Run("nil user", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		assert.Error(t, repo.Create(context.Background(), nil))
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	repo := NewUserGorm(setupTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.User{Email: "a@x.com", Password: "hashed", Number: "0123456789"}))

	found, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", found.Number)
	assert.Equal(t, "hashed", found.Password)

	_, err = repo.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound, "email lookup is case-sensitive")

	_, err = repo.FindByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_FindByID(t *testing.T) {
	repo := NewUserGorm(setupTestDB(t))
	ctx := context.Background()
	user := &entity.User{Email: "a@x.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = repo.FindByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other code", &pgconn.PgError{Code: "23503"}, false},
		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062}, true},
		{"mysql other error", &mysql.MySQLError{Number: 1045}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isDuplicateKey(tt.err))
		})
	}
}

// TestUserSchema_ProfileColumnsAreUnbounded は氏名と電話番号の列に長さ制限がないことを検証します。
// emailだけはユニークインデックスのために長さを持ち、登録時の検証で同じ上限を課します。
func TestUserSchema_ProfileColumnsAreUnbounded(t *testing.T) {
	t.Parallel()

	s, err := schema.Parse(&entity.User{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, name := range []string{"FirstName", "LastName", "Number"} {
		f := s.LookUpField(name)
		require.NotNil(t, f, name)
		assert.Equal(t, schema.DataType("text"), f.DataType, name)
		assert.Zero(t, f.Size, name)
	}
	assert.Equal(t, 255, s.LookUpField("Email").Size)
}

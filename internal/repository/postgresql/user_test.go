package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	mock_database "gitlab.com/umaxship/console/internal/db/mocks"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/repository/postgresql"
)

func storedUser(t *testing.T, password string) repository.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return repository.User{ID: "u1", Email: "ops@umaxship.in", DisplayName: "Ops", PasswordHash: string(hash)}
}

func TestUserRepo_ValidateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)
		user := storedUser(t, "s3cret")

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(user.Email)).
			DoAndReturn(func(_ context.Context, dest *repository.User, _ string, _ ...interface{}) error {
				*dest = user
				return nil
			})

		got, err := repo.ValidateUser(ctx, user.Email, "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)
		user := storedUser(t, "s3cret")

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest *repository.User, _ string, _ ...interface{}) error {
				*dest = user
				return nil
			})

		got, err := repo.ValidateUser(ctx, user.Email, "guess")
		assert.ErrorIs(t, err, postgresql.ErrInvalidCredentials)
		assert.Nil(t, got)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pgx.ErrNoRows)

		_, err := repo.ValidateUser(ctx, "nobody@umaxship.in", "x")
		assert.ErrorIs(t, err, postgresql.ErrInvalidCredentials)
	})
}

func TestUserRepo_EnsureUser(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)
		user := storedUser(t, "s3cret")

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest *repository.User, _ string, _ ...interface{}) error {
				*dest = user
				return nil
			})

		got, err := repo.EnsureUser(ctx, user.Email, "Ops", "other")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user is created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pgx.ErrNoRows)
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("new@umaxship.in"), gomock.Eq("New"), gomock.Any()).
			Return(nil, nil)

		got, err := repo.EnsureUser(ctx, "new@umaxship.in", "New", "pw")
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("pw")))
	})

	t.Run("lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewUserRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(expectedErr)

		_, err := repo.EnsureUser(ctx, "new@umaxship.in", "New", "pw")
		assert.Equal(t, expectedErr, err)
	})
}

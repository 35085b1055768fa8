package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
	"github.com/oksasatya/go-employee-directory/internal/domain/repository"
)

var userCols = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash\)`).
		WithArgs("ana", "a@x.com", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u-1", now, now))

	u := &entity.User{Username: "ana", Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, "u-1", u.ID)
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ana", "a@x.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := repo.Create(context.Background(), &entity.User{Username: "ana", Email: "a@x.com", Password: "hash"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_ExistsByEmailOrUsername(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM users WHERE email = \$1 OR username = \$2\)`).
		WithArgs("a@x.com", "ana").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByEmailOrUsername(context.Background(), "a@x.com", "ana")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserRepository_FindByEmailOrUsername(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`ORDER BY \(email = \$1\) DESC\s+LIMIT 1`).
		WithArgs("", "ana").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-1", "ana", "a@x.com", "hash", now, now))
	mock.ExpectQuery(`FROM users`).
		WithArgs("ghost@x.com", "").
		WillReturnRows(pgxmock.NewRows(userCols))

	u, err := repo.FindByEmailOrUsername(context.Background(), "", "ana")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "hash", u.Password)

	_, err = repo.FindByEmailOrUsername(context.Background(), "ghost@x.com", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

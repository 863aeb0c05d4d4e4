package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-agenda/internal/domain/repository"
)

func TestUserRepository_GetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email = \$1`).
		WithArgs("test@fatec.sp.gov.br").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("0b7d5c9e-7f8e-4d55-9a4c-1f3f7c1e2a10", "testuser", "test@fatec.sp.gov.br", "$2a$10$hash", now, now))

	u, err := repo.GetByEmail(context.Background(), "test@fatec.sp.gov.br")
	require.NoError(t, err)
	assert.Equal(t, "testuser", u.Username)
	assert.Equal(t, "$2a$10$hash", u.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("nobody@fatec.sp.gov.br").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@fatec.sp.gov.br")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("u-1", "testuser", "test@fatec.sp.gov.br", "hash", now, now))

	u, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
}

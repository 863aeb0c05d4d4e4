package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/internal/domain/repository"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

type UserRepository struct {
	exec pgExecutor
}

func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{exec: exec}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *UserRepository) getOne(ctx context.Context, column string, value any) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(column+" = ?", value).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	u := &entity.User{}
	if err := r.exec.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user by %s: %w", column, err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

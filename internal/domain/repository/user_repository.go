package repository

import (
	"context"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
)

// UserRepository defines the read access the login flow needs.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

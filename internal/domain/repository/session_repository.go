package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
)

// SessionRepository stores live login sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

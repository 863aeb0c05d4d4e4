package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/internal/domain/repository"
)

const sessionKeyPrefix = "agenda:session:"

func sessionKey(id string) string { return sessionKeyPrefix + id }

// SessionRepository keeps each session as a Redis hash that expires with the session.
type SessionRepository struct {
	rdb *red.Client
}

func NewSessionRepository(rdb *red.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Create(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	if s == nil || s.ID == "" {
		return errors.New("session id is required")
	}
	if ttl <= 0 {
		return errors.New("session ttl must be positive")
	}
	key := sessionKey(s.ID)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    s.UserID,
		"username":   s.Username,
		"email":      s.Email,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339Nano),
		"expires_at": s.ExpiresAt.UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(data) == 0 || data["user_id"] == "" {
		return nil, repository.ErrNotFound
	}
	s := &entity.Session{
		ID:       id,
		UserID:   data["user_id"],
		Username: data["username"],
		Email:    data["email"],
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339Nano, data["created_at"])
	s.ExpiresAt, _ = time.Parse(time.RFC3339Nano, data["expires_at"])
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)

package repository

import (
	"context"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
)

// ContactRepository persists agenda records.
type ContactRepository interface {
	Create(ctx context.Context, c *entity.Contact) error
	// List returns every contact ordered by full name.
	List(ctx context.Context) ([]entity.Contact, error)
	GetByID(ctx context.Context, id int64) (*entity.Contact, error)
	// Update replaces all editable fields of c in a single statement.
	Update(ctx context.Context, c *entity.Contact) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, limit int) ([]entity.Contact, error)
}

// ContactIndex is an optional full-text index kept next to the repository.
type ContactIndex interface {
	Index(ctx context.Context, c *entity.Contact) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, size int) ([]entity.Contact, error)
}

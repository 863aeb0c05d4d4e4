package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/internal/domain/repository"
)

var contactColumns = []string{"id", "full_name", "phone", "email", "note", "created_at", "updated_at"}

// ContactRepository stores agenda records in the contacts table.
// Listing orders by full_name with the "C" collation, i.e. case-sensitive byte order.
type ContactRepository struct {
	exec pgExecutor
}

func NewContactRepository(exec pgExecutor) *ContactRepository {
	return &ContactRepository{exec: exec}
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	query, args, err := psql.Insert("contacts").
		Columns("full_name", "phone", "email", "note").
		Values(c.FullName, c.Phone, c.Email, c.Note).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert contact: %w", err)
	}
	if err := r.exec.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]entity.Contact, error) {
	query, args, err := psql.Select(contactColumns...).
		From("contacts").
		OrderBy(`full_name COLLATE "C" ASC`, "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contacts: %w", err)
	}
	return r.queryMany(ctx, query, args)
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*entity.Contact, error) {
	query, args, err := psql.Select(contactColumns...).
		From("contacts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get contact: %w", err)
	}
	c := &entity.Contact{}
	if err := scanContact(r.exec.QueryRow(ctx, query, args...), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select contact %d: %w", id, err)
	}
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) error {
	query, args, err := psql.Update("contacts").
		Set("full_name", c.FullName).
		Set("phone", c.Phone).
		Set("email", c.Email).
		Set("note", c.Note).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update contact: %w", err)
	}
	if err := r.exec.QueryRow(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update contact %d: %w", c.ID, err)
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("contacts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete contact: %w", err)
	}
	tag, err := r.exec.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Search matches query case-insensitively against name, email and phone.
func (r *ContactRepository) Search(ctx context.Context, query string, limit int) ([]entity.Contact, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	sqlStr, args, err := psql.Select(contactColumns...).
		From("contacts").
		Where(squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"phone": pattern},
		}).
		OrderBy(`full_name COLLATE "C" ASC`, "id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search contacts: %w", err)
	}
	return r.queryMany(ctx, sqlStr, args)
}

func (r *ContactRepository) queryMany(ctx context.Context, query string, args []any) ([]entity.Contact, error) {
	rows, err := r.exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Contact, 0)
	for rows.Next() {
		var c entity.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return out, nil
}

func scanContact(row pgx.Row, c *entity.Contact) error {
	return row.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.Note, &c.CreatedAt, &c.UpdatedAt)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ repository.ContactRepository = (*ContactRepository)(nil)

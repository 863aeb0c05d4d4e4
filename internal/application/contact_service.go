package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	repo "github.com/oksasatya/go-agenda/internal/domain/repository"
	"github.com/oksasatya/go-agenda/internal/domain/rules"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// ContactFields is the raw form input for a contact.
type ContactFields struct {
	FullName string
	Phone    string
	Email    string
	Note     string
}

type ContactService struct {
	Repo   repo.ContactRepository
	Index  repo.ContactIndex // optional
	Logger *logrus.Logger
}

func NewContactService(r repo.ContactRepository, index repo.ContactIndex, logger *logrus.Logger) *ContactService {
	return &ContactService{Repo: r, Index: index, Logger: logger}
}

func validateFields(f ContactFields) (rules.ContactInput, error) {
	return rules.ValidateContactFields(f.FullName, f.Phone, f.Email, f.Note)
}

// Create validates f and persists a new contact. Nothing is written when validation fails.
func (s *ContactService) Create(ctx context.Context, f ContactFields) (*entity.Contact, error) {
	in, err := validateFields(f)
	if err != nil {
		return nil, err
	}
	c := &entity.Contact{FullName: in.FullName, Phone: in.Phone, Email: in.Email, Note: in.Note}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.index(ctx, c)
	return c, nil
}

func (s *ContactService) List(ctx context.Context) ([]entity.Contact, error) {
	return s.Repo.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id int64) (*entity.Contact, error) {
	return s.Repo.GetByID(ctx, id)
}

// Update replaces all fields of contact id. On validation failure the stored
// contact is returned untouched together with the validation error.
func (s *ContactService) Update(ctx context.Context, id int64, f ContactFields) (*entity.Contact, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := validateFields(f)
	if err != nil {
		return current, err
	}
	updated := *current
	updated.FullName = in.FullName
	updated.Phone = in.Phone
	updated.Email = in.Email
	updated.Note = in.Note
	if err := s.Repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.index(ctx, &updated)
	return &updated, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "remove contact from index failed")
		}
	}
	return nil
}

// Search uses the search index when configured and falls back to the repository.
func (s *ContactService) Search(ctx context.Context, q string, size int) ([]entity.Contact, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.Contact{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	if s.Index != nil {
		res, err := s.Index.Search(ctx, q, size)
		if err == nil {
			return res, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("query", q).Warn("index search failed, using database")
		}
	}
	return s.Repo.Search(ctx, q, size)
}

func (s *ContactService) index(ctx context.Context, c *entity.Contact) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, c); err != nil {
		s.warn(err, c.ID, "index contact failed")
	}
}

func (s *ContactService) warn(err error, id int64, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("contact_id", id).Warn(msg)
	}
}

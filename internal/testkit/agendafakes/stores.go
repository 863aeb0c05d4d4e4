package agendafakes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/internal/domain/repository"
)

// ContactStore is an in-memory ContactRepository fake for tests.
type ContactStore struct {
	mu       sync.Mutex
	Contacts map[int64]entity.Contact
	nextID   int64
	// Err, when set, is returned by every call.
	Err error
}

// NewContactStore constructs a ContactStore fake with initialized state maps.
func NewContactStore() *ContactStore {
	return &ContactStore{Contacts: make(map[int64]entity.Contact)}
}

// Seed stores c directly, assigning an id, and returns the stored copy.
func (s *ContactStore) Seed(c entity.Contact) entity.Contact {
	_ = s.Create(context.Background(), &c)
	return c
}

func (s *ContactStore) Create(_ context.Context, c *entity.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.nextID++
	now := time.Now().UTC()
	c.ID, c.CreatedAt, c.UpdatedAt = s.nextID, now, now
	s.Contacts[c.ID] = *c
	return nil
}

func (s *ContactStore) List(_ context.Context) ([]entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.sorted(func(entity.Contact) bool { return true }, 0), nil
}

func (s *ContactStore) GetByID(_ context.Context, id int64) (*entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.Contacts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s *ContactStore) Update(_ context.Context, c *entity.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Contacts[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	s.Contacts[c.ID] = *c
	return nil
}

func (s *ContactStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Contacts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Contacts, id)
	return nil
}

func (s *ContactStore) Search(_ context.Context, q string, limit int) ([]entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	q = strings.ToLower(q)
	return s.sorted(func(c entity.Contact) bool {
		return strings.Contains(strings.ToLower(c.FullName), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(c.Phone, q)
	}, limit), nil
}

// sorted mirrors the repository ordering: byte-wise by name, then id.
func (s *ContactStore) sorted(keep func(entity.Contact) bool, limit int) []entity.Contact {
	out := make([]entity.Contact, 0, len(s.Contacts))
	for _, c := range s.Contacts {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UserStore is an in-memory UserRepository fake keyed by email.
type UserStore struct {
	Users map[string]entity.User
	Err   error
}

func NewUserStore(users ...entity.User) *UserStore {
	s := &UserStore{Users: make(map[string]entity.User)}
	for _, u := range users {
		s.Users[u.Email] = u
	}
	return s
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.Users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ContactIndex is an in-memory ContactIndex fake that records calls.
type ContactIndex struct {
	mu      sync.Mutex
	Docs    map[int64]entity.Contact
	Removed []int64
	Err     error
}

func NewContactIndex() *ContactIndex {
	return &ContactIndex{Docs: make(map[int64]entity.Contact)}
}

func (i *ContactIndex) Index(_ context.Context, c *entity.Contact) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return i.Err
	}
	i.Docs[c.ID] = *c
	return nil
}

func (i *ContactIndex) Remove(_ context.Context, id int64) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return i.Err
	}
	delete(i.Docs, id)
	i.Removed = append(i.Removed, id)
	return nil
}

func (i *ContactIndex) Search(_ context.Context, q string, size int) ([]entity.Contact, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.Err != nil {
		return nil, i.Err
	}
	out := make([]entity.Contact, 0)
	for _, c := range i.Docs {
		if strings.Contains(strings.ToLower(c.FullName), strings.ToLower(q)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	if size > 0 && len(out) > size {
		out = out[:size]
	}
	return out, nil
}

// SessionStore is an in-memory SessionRepository fake. TTLs are recorded, not enforced.
type SessionStore struct {
	mu       sync.Mutex
	Sessions map[string]entity.Session
	TTLs     map[string]time.Duration
	Err      error
}

func NewSessionStore() *SessionStore {
	return &SessionStore{Sessions: make(map[string]entity.Session), TTLs: make(map[string]time.Duration)}
}

func (s *SessionStore) Create(_ context.Context, sess *entity.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sessions[sess.ID] = *sess
	s.TTLs[sess.ID] = ttl
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sess, ok := s.Sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Sessions, id)
	return nil
}

// Publisher records published jobs.
type Publisher struct {
	mu   sync.Mutex
	Jobs []any
	Err  error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Jobs = append(p.Jobs, body)
	return nil
}

// Published returns a snapshot of the recorded jobs.
func (p *Publisher) Published() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.Jobs...)
}

// ErrBoom is a generic infrastructure failure for tests.
var ErrBoom = errors.New("boom")

var (
	_ repository.ContactRepository = (*ContactStore)(nil)
	_ repository.UserRepository    = (*UserStore)(nil)
	_ repository.ContactIndex      = (*ContactIndex)(nil)
	_ repository.SessionRepository = (*SessionStore)(nil)
)

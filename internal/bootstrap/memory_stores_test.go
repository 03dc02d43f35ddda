package bootstrap_test

import (
	"context"
	"sort"
	"sync"
	"time"

	collabdomain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	userdomain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/mail"
)

type memoryCollaborators struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]collabdomain.Collaborator
}

func newMemoryCollaborators() *memoryCollaborators {
	return &memoryCollaborators{rows: make(map[uint]collabdomain.Collaborator)}
}

func (m *memoryCollaborators) unique(c collabdomain.Collaborator) error {
	for id, row := range m.rows {
		if id == c.ID {
			continue
		}
		if row.Email == c.Email {
			return collabdomain.ErrEmailTaken
		}
		if row.CPF == c.CPF {
			return collabdomain.ErrCPFTaken
		}
	}
	return nil
}

func (m *memoryCollaborators) Create(_ context.Context, c collabdomain.Collaborator) (collabdomain.Collaborator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = 0
	if err := m.unique(c); err != nil {
		return collabdomain.Collaborator{}, err
	}
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.rows[c.ID] = c
	return c, nil
}

func (m *memoryCollaborators) GetByID(_ context.Context, id uint) (collabdomain.Collaborator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return collabdomain.Collaborator{}, collabdomain.ErrCollaboratorNotFound
	}
	return c, nil
}

func (m *memoryCollaborators) Update(_ context.Context, c collabdomain.Collaborator) (collabdomain.Collaborator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[c.ID]; !ok {
		return collabdomain.Collaborator{}, collabdomain.ErrCollaboratorNotFound
	}
	if err := m.unique(c); err != nil {
		return collabdomain.Collaborator{}, err
	}
	c.UpdatedAt = time.Now().UTC()
	m.rows[c.ID] = c
	return c, nil
}

func (m *memoryCollaborators) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return collabdomain.ErrCollaboratorNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryCollaborators) ListByOwner(_ context.Context, ownerID uint, page, perPage int) (collabdomain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := make([]collabdomain.Collaborator, 0)
	for _, c := range m.rows {
		if c.UserID == ownerID {
			owned = append(owned, c)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	start := (page - 1) * perPage
	if start > len(owned) {
		start = len(owned)
	}
	end := start + perPage
	if end > len(owned) {
		end = len(owned)
	}
	return collabdomain.Page{Items: owned[start:end], Total: int64(len(owned))}, nil
}

func (m *memoryCollaborators) FindByEmailAndCPF(_ context.Context, email, cpf string) (*collabdomain.Collaborator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.rows {
		if c.Email == email && c.CPF == cpf {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

type memoryUsers struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]userdomain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{rows: make(map[uint]userdomain.User)}
}

func (m *memoryUsers) GetByID(_ context.Context, id uint) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.rows[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.rows {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (m *memoryUsers) Create(_ context.Context, u userdomain.User) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return userdomain.User{}, userdomain.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.rows[u.ID] = u
	return u, nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) messages() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mail.Message, len(r.sent))
	copy(out, r.sent)
	return out
}

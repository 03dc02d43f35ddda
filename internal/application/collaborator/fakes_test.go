package collaborator_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	userdomain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
)

type fakeRepo struct {
	mu        sync.Mutex
	nextID    uint
	rows      map[uint]domain.Collaborator
	listCalls int
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[uint]domain.Collaborator)}
}

func (f *fakeRepo) conflict(c domain.Collaborator) error {
	for id, row := range f.rows {
		if id == c.ID {
			continue
		}
		if row.Email == c.Email {
			return domain.ErrEmailTaken
		}
		if row.CPF == c.CPF {
			return domain.ErrCPFTaken
		}
	}
	return nil
}

func (f *fakeRepo) Create(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Collaborator{}, f.createErr
	}
	c.ID = 0
	if err := f.conflict(c); err != nil {
		return domain.Collaborator{}, err
	}
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (domain.Collaborator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.rows[id]
	if !ok {
		return domain.Collaborator{}, domain.ErrCollaboratorNotFound
	}
	return c, nil
}

func (f *fakeRepo) Update(_ context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.rows[c.ID]
	if !ok {
		return domain.Collaborator{}, domain.ErrCollaboratorNotFound
	}
	if err := f.conflict(c); err != nil {
		return domain.Collaborator{}, err
	}
	c.UserID = current.UserID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[id]; !ok {
		return domain.ErrCollaboratorNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID uint, page, perPage int) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	owned := make([]domain.Collaborator, 0)
	for _, c := range f.rows {
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
	return domain.Page{Items: owned[start:end], Total: int64(len(owned))}, nil
}

func (f *fakeRepo) FindByEmailAndCPF(_ context.Context, email, cpf string) (*domain.Collaborator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.rows {
		if c.Email == email && c.CPF == cpf {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeRepo) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeUsers struct {
	users map[uint]*userdomain.User
	err   error
}

func newFakeUsers(users ...userdomain.User) *fakeUsers {
	f := &fakeUsers{users: make(map[uint]*userdomain.User)}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*userdomain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return u, nil
}

type fakeSource struct {
	files map[string]string
	err   error
}

func (f *fakeSource) Open(_ context.Context, sourcePath string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.files[sourcePath]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Delete(context.Context, ...string) error {
	return errors.New("cache down")
}

type recordingNotifier struct {
	mu      sync.Mutex
	reports []domain.ImportReport
	err     error
}

func (r *recordingNotifier) NotifyImportFinished(_ context.Context, report domain.ImportReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.reports = append(r.reports, report)
	return nil
}

func (r *recordingNotifier) sent() []domain.ImportReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ImportReport, len(r.reports))
	copy(out, r.reports)
	return out
}

type fakeUploadStore struct {
	saved map[string]string
	err   error
}

func (f *fakeUploadStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	path := "uploads/collaborators/" + originalName
	f.saved[path] = string(data)
	return path, nil
}

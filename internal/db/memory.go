package db

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// MemoryStore keeps users and the display document in process memory. It
// backs tests and the offline CLI commands.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[int]model.User
	nextID   int
	document []byte
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[int]model.User{}, nextID: 1}
}

func (m *MemoryStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return 0, ErrConflict
		}
	}
	now := time.Now().UTC()
	id := m.nextID
	m.nextID++
	m.users[id] = model.User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return id, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByID(id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *MemoryStore) UpdateUserProfile(id int, email string, name *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	for otherID, other := range m.users {
		if otherID != id && strings.EqualFold(other.Email, email) {
			return ErrConflict
		}
	}
	u.Email = email
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	m.users[id] = u
	return nil
}

func (m *MemoryStore) GetAppData(_ context.Context) (*model.AppData, error) {
	m.mu.Lock()
	raw := m.document
	m.mu.Unlock()
	return decodeDocument(raw)
}

func (m *MemoryStore) UpdateAppData(_ context.Context, fn UpdateFunc) (*model.AppData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, doc, err := applyUpdate(m.document, fn)
	if err != nil {
		return nil, err
	}
	m.document = doc
	return d, nil
}

func (m *MemoryStore) ReplaceAppData(ctx context.Context, d *model.AppData) (*model.AppData, error) {
	return m.UpdateAppData(ctx, replaceWith(d))
}

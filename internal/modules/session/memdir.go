package session

import (
	"context"
	"strings"
	"sync"

	"github.com/appcurve/olivia-party-sub000/internal/domain"
)

// MemoryDirectory is an in-memory UserDirectory with the same atomicity
// contract as the SQL implementation: ReplaceRefreshHash is a
// compare-and-swap under one lock. Used by tests and local tooling.
type MemoryDirectory struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int64
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]*domain.User)}
}

func (d *MemoryDirectory) Create(_ context.Context, u *domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := d.users[key]; exists {
		return domain.ErrEmailTaken
	}

	d.seq++
	u.ID = d.seq
	clone := *u
	d.users[key] = &clone
	return nil
}

func (d *MemoryDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (d *MemoryDirectory) SetPasswordHash(_ context.Context, email, hash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if u, ok := d.users[strings.ToLower(email)]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (d *MemoryDirectory) SetRefreshHash(_ context.Context, email, hash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if u, ok := d.users[strings.ToLower(email)]; ok {
		u.RefreshTokenHash = hash
	}
	return nil
}

func (d *MemoryDirectory) ReplaceRefreshHash(_ context.Context, email, current, next string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[strings.ToLower(email)]
	if !ok || u.RefreshTokenHash != current {
		return domain.ErrNotFound
	}
	u.RefreshTokenHash = next
	return nil
}

func (d *MemoryDirectory) UpdateProfile(_ context.Context, email, name, locale string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if u, ok := d.users[strings.ToLower(email)]; ok {
		u.Name = name
		u.Locale = locale
	}
	return nil
}

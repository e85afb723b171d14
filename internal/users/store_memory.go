package users

import (
	"context"
	"fmt"
	"sync"

	"shopgate/pkg/platform/sentinel"
)

// InMemoryDirectory stores users in memory for tests/dev.
type InMemoryDirectory struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
}

// NewInMemoryDirectory constructs an empty in-memory directory.
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (d *InMemoryDirectory) Create(_ context.Context, user *User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	email := NormalizeEmail(user.Email)
	if _, exists := d.byEmail[email]; exists {
		return fmt.Errorf("user %s already exists: %w", email, sentinel.ErrConflict)
	}

	stored := *user
	stored.Email = email
	d.byID[stored.ID] = &stored
	d.byEmail[email] = &stored
	return nil
}

func (d *InMemoryDirectory) FindByEmail(_ context.Context, email string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if user, ok := d.byEmail[NormalizeEmail(email)]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

func (d *InMemoryDirectory) FindByID(_ context.Context, id string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if user, ok := d.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

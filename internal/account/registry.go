package account

import (
	"errors"
	"sync"

	"github.com/veridian-dev/veridian/pkg/schema"
)

// ErrUserNotFound is returned when a requested user ID does not exist.
var ErrUserNotFound = errors.New("user not found")

// Registry is a thread-safe in-memory user store. Registered users live only
// for the lifetime of the process; there is no disk persistence.
type Registry struct {
	mu    sync.RWMutex
	users map[string]schema.UserRecord
}

// NewRegistry initializes an empty registry.
func NewRegistry() *Registry {
	return &Registry{users: make(map[string]schema.UserRecord)}
}

// Create stores a user record keyed by its ID, overwriting any previous
// record with the same ID.
func (r *Registry) Create(user schema.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

// Get returns the user with the given ID.
func (r *Registry) Get(id string) (schema.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return schema.UserRecord{}, ErrUserNotFound
	}
	return user, nil
}

// List returns copies of all stored users in no guaranteed order.
func (r *Registry) List() ([]schema.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]schema.UserRecord, 0, len(r.users))
	for _, user := range r.users {
		list = append(list, user)
	}
	return list, nil
}

// Delete removes the user with the given ID.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

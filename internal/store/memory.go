package store

import (
	"context"
	"sync"
	"time"

	"github.com/job-tracker/apiserver/types"
)

// MemoryUserRepository is an in-memory implementation of the user store
// contract. It backs unit tests and enforces the same uniqueness and
// not-found semantics as the Postgres repository.
type MemoryUserRepository struct {
	mu     sync.Mutex
	users  map[int]types.User
	nextID int
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:  make(map[int]types.User),
		nextID: 1,
	}
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(user.Username, user.Email, 0) {
		return types.User{}, ErrDuplicate
	}

	now := time.Now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, ErrNotFound
	}
	if r.taken(user.Username, user.Email, user.ID) {
		return types.User{}, ErrDuplicate
	}

	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// taken reports whether username or email belongs to a user other than ownerID.
func (r *MemoryUserRepository) taken(username, email string, ownerID int) bool {
	for id, u := range r.users {
		if id == ownerID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

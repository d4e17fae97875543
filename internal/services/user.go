package services

import (
	"context"
	"errors"

	"github.com/job-tracker/apiserver/internal/store"
	"github.com/job-tracker/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates user use-cases: hashing on creation, uniqueness
// enforcement, and partial updates.
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
}

func NewUserService(repo UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Create hashes the plaintext password and inserts a new user. Username and
// email are checked for uniqueness before the insert; the unique constraints
// in the store catch concurrent writers that slip past the pre-check.
func (s *UserService) Create(ctx context.Context, username, email, password string) (types.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return types.User{}, err
	}
	if taken {
		return types.User{}, ErrUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return types.User{}, err
	}
	if taken {
		return types.User{}, ErrEmailTaken
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrUsernameTaken
		}
		return types.User{}, err
	}
	return user, nil
}

// GetByID returns the user with the given id, or store.ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial patch to an existing user. All fields are mutated
// on an in-memory copy first and persisted with a single store call, so a
// failed rule leaves the stored record untouched. It returns
// store.ErrNotFound when no user has the given id, ErrUsernameTaken or
// ErrEmailTaken when the new value belongs to a different user, and
// ErrPasswordUnchanged when the new password matches the current one.
func (s *UserService) Update(ctx context.Context, id int, patch types.UserUpdate) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	if patch.Username != nil && *patch.Username != user.Username {
		taken, err := s.repo.ExistsByUsername(ctx, *patch.Username)
		if err != nil {
			return types.User{}, err
		}
		if taken {
			return types.User{}, ErrUsernameTaken
		}
		user.Username = *patch.Username
	}

	if patch.Email != nil && *patch.Email != user.Email {
		taken, err := s.repo.ExistsByEmail(ctx, *patch.Email)
		if err != nil {
			return types.User{}, err
		}
		if taken {
			return types.User{}, ErrEmailTaken
		}
		user.Email = *patch.Email
	}

	if patch.Password != nil {
		if s.hasher.Verify(*patch.Password, user.PasswordHash) {
			return types.User{}, ErrPasswordUnchanged
		}
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = hashed
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// A concurrent writer took the username or email between the
			// pre-check and the persist.
			return types.User{}, ErrUsernameTaken
		}
		return types.User{}, err
	}
	return updated, nil
}

// Delete removes the user with the given id and reports whether a record was
// actually deleted.
func (s *UserService) Delete(ctx context.Context, id int) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

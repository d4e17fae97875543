package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/job-tracker/apiserver/internal/store"
	"github.com/job-tracker/apiserver/types"
)

func newTestService() (*UserService, *store.MemoryUserRepository) {
	repo := store.NewMemoryUserRepository()
	// MinCost keeps bcrypt cheap in tests.
	return NewUserService(repo, NewBcryptHasher(bcrypt.MinCost)), repo
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	user, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NoError(t,
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))
}

func TestUserService_CreateConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{"username taken", "alice", "other@x.com", ErrUsernameTaken},
		{"email taken", "bob", "alice@x.com", ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.username, tt.email, "pw2")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_UpdateUsernameConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	bob, err := svc.Create(ctx, "bob", "bob@x.com", "pw2")
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, types.UserUpdate{Username: strPtr("alice")})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserService_UpdateSameValuesAllowed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	alice, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	// Re-submitting the current username and email is a no-op, not a conflict.
	updated, err := svc.Update(ctx, alice.ID, types.UserUpdate{
		Username: strPtr("alice"),
		Email:    strPtr("alice@x.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@x.com", updated.Email)
}

func TestUserService_UpdatePasswordUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	alice, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice.ID, types.UserUpdate{Password: strPtr("pw1")})
	assert.ErrorIs(t, err, ErrPasswordUnchanged)
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	alice, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice.ID, types.UserUpdate{Password: strPtr("pw2")})
	require.NoError(t, err)
	assert.NoError(t,
		bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("pw2")))
}

func TestUserService_UpdateFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	alice, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	// Username would be applied in memory before the password rule fails; the
	// persisted record must not see it.
	_, err = svc.Update(ctx, alice.ID, types.UserUpdate{
		Username: strPtr("alice2"),
		Password: strPtr("pw1"),
	})
	require.ErrorIs(t, err, ErrPasswordUnchanged)

	stored, err := svc.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
}

func TestUserService_UpdateMissingUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Update(ctx, 42, types.UserUpdate{Username: strPtr("ghost")})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	alice, err := svc.Create(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	deleted, err = svc.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

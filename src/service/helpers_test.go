package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fintrack-server/src/auth"
	"fintrack-server/src/db/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestIdentity(t *testing.T, store *sqlite.Store) *Identity {
	t.Helper()
	return NewIdentity(
		store.Users,
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewTokenManager("test-secret", 24*time.Hour),
		nil,
	)
}

func ptr[T any](v T) *T {
	return &v
}

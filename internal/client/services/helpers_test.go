package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactbook/internal/client/repositories/slots"
	"github.com/dmitrijs2005/contactbook/internal/client/store"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

type env struct {
	repo *slots.MemoryRepository
	st   *store.Store
	auth AuthState
	dir  *Directory
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvOn(t, slots.NewMemoryRepository())
}

// newEnvOn builds fresh services over an existing repository, the way a
// restarted process would.
func newEnvOn(t *testing.T, repo *slots.MemoryRepository) *env {
	t.Helper()
	st := store.New(repo)
	auth := NewAuthState(st, logging.Nop())
	dir, err := NewDirectory(context.Background(), st, auth, logging.Nop())
	require.NoError(t, err)
	return &env{repo: repo, st: st, auth: auth, dir: dir}
}

func rawSlot(t *testing.T, e *env, key string) []byte {
	t.Helper()
	v, err := e.repo.Get(context.Background(), key)
	require.NoError(t, err)
	return v
}

// fixedClock makes now return successive milliseconds starting at start.
func fixedClock(t *testing.T, start int64) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })

	ms := start
	now = func() time.Time {
		v := time.UnixMilli(ms)
		ms++
		return v
	}
}

func signedIn(t *testing.T, e *env, email string) {
	t.Helper()
	ctx := context.Background()
	ok, err := e.dir.SignUp(ctx, email, "pw")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = e.dir.SignIn(ctx, email, "pw")
	require.NoError(t, err)
	require.True(t, ok)
}

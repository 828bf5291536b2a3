package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/repositories/slots"
)

// plainRepo hides the Batcher of the memory repository.
type plainRepo struct {
	slots.Repository
	sets    int
	deletes int
}

func (p *plainRepo) Set(ctx context.Context, key string, value []byte) error {
	p.sets++
	return p.Repository.Set(ctx, key, value)
}

func (p *plainRepo) Delete(ctx context.Context, key string) error {
	p.deletes++
	return p.Repository.Delete(ctx, key)
}

type failingRepo struct {
	slots.Repository
}

func (failingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func TestStore_GetSet(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	s := New(repo)

	in := []models.User{{Email: "a@x.com", Password: "pw", Contacts: []models.Contact{{ID: "1", Name: "Bob"}}}}
	require.NoError(t, s.Set(ctx, "users", in))

	raw, err := repo.Get(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"email":"a@x.com","password":"pw","contacts":[{"id":"1","name":"Bob"}]}]`, string(raw))

	var out []models.User
	ok, err := s.Get(ctx, "users", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestStore_GetAbsent(t *testing.T) {
	s := New(slots.NewMemoryRepository())

	out := []models.User{{Email: "keep"}}
	ok, err := s.Get(context.Background(), "users", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "keep", out[0].Email)
}

func TestStore_GetMalformed(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, "users", []byte("{not json")))

	var out []models.User
	ok, err := New(repo).Get(ctx, "users", &out)
	assert.False(t, ok)
	require.ErrorContains(t, err, "decode slot[users]")
}

func TestStore_GetPropagatesRepoError(t *testing.T) {
	s := New(failingRepo{})
	var v string
	_, err := s.Get(context.Background(), "users", &v)
	require.ErrorContains(t, err, "disk gone")

	_, _, err = s.GetString(context.Background(), "loggedIn")
	require.ErrorContains(t, err, "disk gone")
}

func TestStore_SetUnencodable(t *testing.T) {
	err := New(slots.NewMemoryRepository()).Set(context.Background(), "k", make(chan int))
	require.ErrorContains(t, err, "encode slot[k]")
}

func TestStore_Strings(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	s := New(repo)

	_, ok, err := s.GetString(ctx, "loggedIn")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetString(ctx, "loggedIn", "true"))
	raw, _ := repo.Get(ctx, "loggedIn")
	assert.Equal(t, "true", string(raw), "raw strings are not JSON quoted")

	v, ok, err := s.GetString(ctx, "loggedIn")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	require.NoError(t, s.Remove(ctx, "loggedIn"))
	_, ok, _ = s.GetString(ctx, "loggedIn")
	assert.False(t, ok)
}

func TestStore_CommitWithBatcher(t *testing.T) {
	ctx := context.Background()
	repo := slots.NewMemoryRepository()
	s := New(repo)
	require.NoError(t, s.SetString(ctx, "editContactId", "42"))

	b := s.NewBatch()
	b.Set("currentUser", "a@x.com")
	b.SetString("loggedIn", "true")
	b.Remove("editContactId")
	require.NoError(t, s.Commit(ctx, b))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"currentUser": []byte(`"a@x.com"`),
		"loggedIn":    []byte("true"),
	}, all)
}

func TestStore_CommitWithoutBatcher(t *testing.T) {
	ctx := context.Background()
	repo := &plainRepo{Repository: slots.NewMemoryRepository()}
	s := New(repo)

	b := s.NewBatch()
	b.SetString("a", "1")
	b.SetString("b", "2")
	b.Remove("c")
	require.NoError(t, s.Commit(ctx, b))

	assert.Equal(t, 2, repo.sets)
	assert.Equal(t, 1, repo.deletes)
}

func TestStore_CommitEncodeError(t *testing.T) {
	s := New(slots.NewMemoryRepository())
	b := s.NewBatch()
	b.Set("bad", func() {})
	b.SetString("ok", "1")

	err := s.Commit(context.Background(), b)
	require.ErrorContains(t, err, "encode slot[bad]")

	_, ok, _ := s.GetString(context.Background(), "ok")
	assert.False(t, ok)
}

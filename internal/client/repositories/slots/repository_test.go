package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises the behaviour every backend shares.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "users", []byte(`[]`)))

		v, err := r.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), v)
	})

	t.Run("absent key returns nil, nil", func(t *testing.T) {
		r := newRepo(t)
		v, err := r.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "loggedIn", []byte("false")))
		require.NoError(t, r.Set(ctx, "loggedIn", []byte("true")))

		v, err := r.Get(ctx, "loggedIn")
		require.NoError(t, err)
		assert.Equal(t, []byte("true"), v)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "currentContact", []byte(`{}`)))
		require.NoError(t, r.Delete(ctx, "currentContact"))

		v, err := r.Get(ctx, "currentContact")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, r.Delete(ctx, "currentContact"))
	})

	t.Run("list and clear", func(t *testing.T) {
		r := newRepo(t)
		require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
		require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Len(t, m, 2)
		assert.Equal(t, []byte{0xAA}, m["a"])
		assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])

		require.NoError(t, r.Clear(ctx))
		m, err = r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("batch apply", func(t *testing.T) {
		r := newRepo(t)
		b, ok := r.(Batcher)
		if !ok {
			t.Skip("backend does not batch")
		}
		require.NoError(t, r.Set(ctx, "gone", []byte("x")))

		err := b.Apply(ctx, map[string][]byte{"k1": []byte("1"), "k2": []byte("2")}, []string{"gone"})
		require.NoError(t, err)

		m, err := r.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string][]byte{"k1": []byte("1"), "k2": []byte("2")}, m)
	})
}

func TestMemoryRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		return NewMemoryRepository()
	})
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'x'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'y'
	again, _ := r.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

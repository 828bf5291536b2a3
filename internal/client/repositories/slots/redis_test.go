package slots

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRepo(t *testing.T, prefix string) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedisRepository(client, prefix, time.Second)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisRepository_Contract(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Repository {
		r, _ := newRedisRepo(t, "cb:")
		return r
	})
}

func TestRedisRepository_KeysArePrefixed(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, "cb:")

	require.NoError(t, r.Set(ctx, "loggedIn", []byte("true")))

	got, err := mr.Get("cb:loggedIn")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestRedisRepository_ClearLeavesForeignKeys(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, "cb:")

	require.NoError(t, mr.Set("other:key", "keep"))
	require.NoError(t, r.Set(ctx, "users", []byte("[]")))

	require.NoError(t, r.Clear(ctx))

	assert.True(t, mr.Exists("other:key"))
	assert.False(t, mr.Exists("cb:users"))
}

func TestRedisRepository_ServerDown(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisRepo(t, "cb:")
	mr.Close()

	_, err := r.Get(ctx, "users")
	require.ErrorContains(t, err, "failed to get slot[users]")
}

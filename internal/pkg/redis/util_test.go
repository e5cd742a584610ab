package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis 启动 miniredis 并替换全局客户端
func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	prev := Rdb
	Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = Rdb.Close()
		Rdb = prev
		mr.Close()
	})
	return mr
}

func TestGetValueMissingKey(t *testing.T) {
	setupMiniredis(t)

	val, err := GetValue(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestJSONRoundTripWithTTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Posts int `json:"posts"`
	}
	require.NoError(t, SetJSONWithExpiration(ctx, "k", payload{Posts: 3}, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	var out payload
	hit, err := GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, out.Posts)

	mr.FastForward(2 * time.Minute)
	hit, err = GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestTryLockIsExclusive(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock:a", "owner-1", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TryLock(ctx, "lock:a", "owner-2", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// 非持有者释放无效
	UnLock(ctx, "lock:a", "owner-2")
	ok, err = TryLock(ctx, "lock:a", "owner-2", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	UnLock(ctx, "lock:a", "owner-1")
	ok, err = TryLock(ctx, "lock:a", "owner-2", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteKey(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetWithExpiration(ctx, "a", "1", time.Minute))
	require.NoError(t, SetWithExpiration(ctx, "b", "2", time.Minute))
	require.NoError(t, DeleteKey(ctx, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	assert.NoError(t, DeleteKey(ctx))
}

func TestDeleteByPattern(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetWithExpiration(ctx, "dashboard:overview:7:30", "1", time.Minute))
	require.NoError(t, SetWithExpiration(ctx, "dashboard:overview:7:90", "2", time.Minute))
	require.NoError(t, SetWithExpiration(ctx, "dashboard:overview:70:30", "3", time.Minute))

	require.NoError(t, DeleteByPattern(ctx, "dashboard:overview:7:*"))
	assert.False(t, mr.Exists("dashboard:overview:7:30"))
	assert.False(t, mr.Exists("dashboard:overview:7:90"))
	assert.True(t, mr.Exists("dashboard:overview:70:30"))

	assert.NoError(t, DeleteByPattern(ctx, "nothing:*"))
}

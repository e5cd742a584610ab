package logger

import (
	"bytes"
	"context"
	"errors"
	log "log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCommandArgs(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "[PROTECTED]", commandArgs(redis.NewStatusCmd(ctx, "auth", "secret")))
	assert.Equal(t, "[set dashboard:overview:7:30] ...",
		commandArgs(redis.NewStatusCmd(ctx, "set", "dashboard:overview:7:30", `{"total_posts":3}`, "ex", 300)))
	assert.Equal(t, "[get account:overview:7]", commandArgs(redis.NewStringCmd(ctx, "get", "account:overview:7")))
}

func TestIgnorableRedisErr(t *testing.T) {
	assert.True(t, ignorableRedisErr("get", redis.Nil))
	assert.True(t, ignorableRedisErr("client", errors.New("ERR unknown subcommand 'setinfo'")))
	assert.False(t, ignorableRedisErr("get", errors.New("connection refused")))
}

func TestProcessHookLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(log.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { log.SetDefault(prev) })

	hook := NewRedisLogger().ProcessHook(func(context.Context, redis.Cmder) error {
		return errors.New("connection refused")
	})
	err := hook(context.Background(), redis.NewStringCmd(context.Background(), "get", "k"))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "Redis Error")

	buf.Reset()
	miss := NewRedisLogger().ProcessHook(func(context.Context, redis.Cmder) error { return redis.Nil })
	assert.ErrorIs(t, miss(context.Background(), redis.NewStringCmd(context.Background(), "get", "k")), redis.Nil)
	assert.Empty(t, buf.String())
}

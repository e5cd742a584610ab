package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const slowRedis = 100 * time.Millisecond

// payloadCommands 这些命令的值是缓存的 JSON，日志里只保留键
var payloadCommands = map[string]struct{}{
	"set":   {},
	"setex": {},
	"setnx": {},
}

type RedisLoggerHook struct {
	slow time.Duration
}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{slow: slowRedis}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

// commandArgs 认证命令整体打码，写缓存命令只保留命令名和键
func commandArgs(cmd redis.Cmder) string {
	name := cmd.Name()
	if name == "auth" || name == "hello" {
		return "[PROTECTED]"
	}
	args := cmd.Args()
	if _, ok := payloadCommands[name]; ok && len(args) > 2 {
		return fmt.Sprint(args[:2]) + " ..."
	}
	return fmt.Sprint(args)
}

// ignorableRedisErr 缓存未命中和客户端握手噪声不算错误
func ignorableRedisErr(name string, err error) bool {
	if errors.Is(err, redis.Nil) || err.Error() == "ERR no such key" {
		return true
	}
	return name == "client" && strings.Contains(err.Error(), "setinfo")
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		name := cmd.Name()
		fields := []any{
			log.String("command", name),
			log.String("args", commandArgs(cmd)),
			log.Duration("latency", elapsed),
		}
		switch {
		case err != nil && !ignorableRedisErr(name, err):
			log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
		case err == nil && elapsed > s.slow:
			log.WarnContext(ctx, "Redis Slow", fields...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		fields := []any{
			log.Int("cmd_count", len(cmds)),
			log.Duration("latency", elapsed),
		}
		switch {
		case err != nil && !errors.Is(err, redis.Nil):
			log.ErrorContext(ctx, "Redis Pipeline Error", append(fields, log.Any("err", err))...)
		case err == nil && elapsed > s.slow:
			log.WarnContext(ctx, "Redis Pipeline Slow", fields...)
		}
		return err
	}
}

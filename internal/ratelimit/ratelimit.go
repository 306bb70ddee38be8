// Redisの固定ウィンドウでリクエスト数を数える
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "ladimood:rl"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// 固定ウィンドウのレート制限
type Limiter struct {
	store cmdable
	raw   *redis.Client
}

// REDIS_URLから接続して疎通確認する
func New(ctx context.Context, url string) (*Limiter, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Limiter{store: raw, raw: raw}, nil
}

func newWithStore(store cmdable) *Limiter {
	return &Limiter{store: store}
}

func (l *Limiter) Close() error {
	if l == nil || l.raw == nil {
		return nil
	}
	return l.raw.Close()
}

// 最初のインクリメントでTTLを付ける
func (l *Limiter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if _, err := l.store.Expire(ctx, key, ttl).Result(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// scopeごとの回数がlimit以下なら許可
func (l *Limiter) Allow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	count, err := l.IncrWithTTL(ctx, Key(scope), window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func Key(scope string) string {
	return keyNamespace + ":" + scope
}

package service

import (
	"context"
	"time"

	"Palisade/internal/pkg/redis"

	"github.com/google/uuid"
)

// Locker 按 key 互斥锁，用于入队合并等临界区
type Locker interface {
	// TryLock 成功时返回释放函数
	TryLock(ctx context.Context, key string, expire time.Duration) (func(), bool, error)
}

type redisLocker struct {
	retryTimes int
}

// NewRedisLocker 基于 Redis SetNX 的分布式锁
func NewRedisLocker() Locker {
	return &redisLocker{retryTimes: 3}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, expire time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := redis.TryLock(ctx, key, token, expire, l.retryTimes)
	if err != nil || !ok {
		return nil, false, err
	}
	return func() { redis.UnLock(context.WithoutCancel(ctx), key, token) }, true, nil
}

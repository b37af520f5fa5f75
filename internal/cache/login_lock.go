package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var loginFailureScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if tonumber(ARGV[2]) > 0 and current >= tonumber(ARGV[2]) then
	redis.call("SET", KEYS[2], "1", "EX", ARGV[3])
	redis.call("DEL", KEYS[1])
end
return current
`)

func loginFailureKey(email string) string {
	return JoinKey("login", "fail", strings.ToLower(strings.TrimSpace(email)))
}

func loginLockKey(email string) string {
	return JoinKey("login", "lock", strings.ToLower(strings.TrimSpace(email)))
}

// LoginLocked 判断账号是否被锁定，返回剩余锁定时间
func LoginLocked(ctx context.Context, email string) (bool, time.Duration, error) {
	if !Enabled() {
		return false, 0, nil
	}
	ttl, err := redisClient.TTL(ctx, BuildKey(loginLockKey(email))).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl <= 0 && ttl != -1 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// RecordLoginFailure 记录失败次数，达到阈值后锁定
func RecordLoginFailure(ctx context.Context, email string, window time.Duration, maxAttempts int, block time.Duration) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	windowSeconds := int64(window / time.Second)
	if windowSeconds < 1 {
		windowSeconds = 1
	}
	blockSeconds := int64(block / time.Second)
	if blockSeconds < 1 {
		blockSeconds = windowSeconds
	}
	keys := []string{BuildKey(loginFailureKey(email)), BuildKey(loginLockKey(email))}
	return loginFailureScript.Run(ctx, redisClient, keys, windowSeconds, maxAttempts, blockSeconds).Int64()
}

// ClearLoginFailures 登录成功后清理失败记录
func ClearLoginFailures(ctx context.Context, email string) error {
	return Del(ctx, loginFailureKey(email), loginLockKey(email))
}

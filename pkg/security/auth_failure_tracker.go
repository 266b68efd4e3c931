package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// AuthFailureConfig holds configuration for failed-authentication tracking
type AuthFailureConfig struct {
	MaxAttempts   int           // Failed attempts per IP before a block (default: 10)
	AttemptWindow time.Duration // Window the attempts are counted in (default: 15min)
	BlockDuration time.Duration // How long a block lasts (default: 15min)
}

// DefaultAuthFailureConfig returns sensible defaults
func DefaultAuthFailureConfig() AuthFailureConfig {
	return AuthFailureConfig{
		MaxAttempts:   10,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// Redis key patterns
const (
	failAuthIPPrefix    = "fail:auth:ip:"
	blockedAuthIPPrefix = "blocked:auth:ip:"
)

// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
var incrWithTTLScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// AuthFailureTracker counts rejected credentials per client IP and blocks an
// IP for a while once it crosses the limit. Without Redis it never blocks.
type AuthFailureTracker struct {
	client *goredis.Client
	config AuthFailureConfig
	audit  *AuditLogger
}

func NewAuthFailureTracker(client *goredis.Client, config AuthFailureConfig, audit *AuditLogger) *AuthFailureTracker {
	defaults := DefaultAuthFailureConfig()
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaults.MaxAttempts
	}
	if config.AttemptWindow <= 0 {
		config.AttemptWindow = defaults.AttemptWindow
	}
	if config.BlockDuration <= 0 {
		config.BlockDuration = defaults.BlockDuration
	}
	return &AuthFailureTracker{client: client, config: config, audit: audit}
}

// IsBlocked reports whether ip is currently blocked and for how much longer.
func (t *AuthFailureTracker) IsBlocked(ctx context.Context, ip string) (bool, time.Duration, error) {
	if t == nil || t.client == nil || ip == "" {
		return false, 0, nil
	}
	ttl, err := t.client.TTL(ctx, blockedAuthIPPrefix+ip).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check IP block: %w", err)
	}
	// Negative TTLs mean the key is missing or has no expiry
	if ttl <= 0 {
		return false, 0, nil
	}
	return true, ttl, nil
}

// RecordFailure counts a rejected credential for ip and creates a block once
// the limit is reached. It returns whether ip is now blocked.
func (t *AuthFailureTracker) RecordFailure(ctx context.Context, ip, requestID string) (bool, error) {
	if t == nil || t.client == nil || ip == "" {
		return false, nil
	}

	ttlSeconds := int(t.config.AttemptWindow.Seconds())
	if ttlSeconds < 1 {
		ttlSeconds = 1
	}
	result, err := incrWithTTLScript.Run(ctx, t.client, []string{failAuthIPPrefix + ip}, ttlSeconds).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment auth failures: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected result type from Lua script")
	}
	if int(count) < t.config.MaxAttempts {
		return false, nil
	}

	if err := t.client.Set(ctx, blockedAuthIPPrefix+ip, "1", t.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("failed to set IP block: %w", err)
	}
	_ = t.client.Del(ctx, failAuthIPPrefix+ip).Err() // Best effort

	t.audit.LogAuthBlockCreated(ctx, ip, requestID, int(count), t.config.BlockDuration)
	return true, nil
}

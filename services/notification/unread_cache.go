package notification

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"clinichub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// UnreadCache holds the unread notification count per user.
//
// A reseed claims the empty key first and fills it only while the claim
// still stands, so an Invalidate racing the database count drops the fill.
type UnreadCache interface {
	// Get returns the cached count; ok is false on a miss or while a reseed is pending.
	Get(ctx context.Context, userID string) (count int64, ok bool, err error)
	// Claim reserves an empty key for a reseed. ok is false when the key is taken.
	Claim(ctx context.Context, userID string) (claim string, ok bool, err error)
	// Fill stores count only if claim still holds the key.
	Fill(ctx context.Context, userID, claim string, count int64) error
	Invalidate(ctx context.Context, userID string) error
}

const (
	unreadCacheTTL = 10 * time.Minute
	unreadClaimTTL = 15 * time.Second
	claimPrefix    = "claim:"
)

var fillScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("SET", KEYS[1], ARGV[2], "EX", ARGV[3])
end
return false
`)

// RedisUnreadCache keeps counts under "notif:unread:<userID>".
type RedisUnreadCache struct {
	Client *redis.Client
}

func NewRedisUnreadCache(client *redis.Client) *RedisUnreadCache {
	return &RedisUnreadCache{Client: client}
}

func (c *RedisUnreadCache) Get(ctx context.Context, userID string) (int64, bool, error) {
	v, err := c.Client.Get(ctx, utils.UnreadCachePrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if strings.HasPrefix(v, claimPrefix) {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *RedisUnreadCache) Claim(ctx context.Context, userID string) (string, bool, error) {
	claim := claimPrefix + uuid.New().String()
	ok, err := c.Client.SetNX(ctx, utils.UnreadCachePrefix+userID, claim, unreadClaimTTL).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return claim, true, nil
}

func (c *RedisUnreadCache) Fill(ctx context.Context, userID, claim string, count int64) error {
	err := fillScript.Run(ctx, c.Client,
		[]string{utils.UnreadCachePrefix + userID},
		claim, count, int(unreadCacheTTL.Seconds()),
	).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, userID string) error {
	return c.Client.Del(ctx, utils.UnreadCachePrefix+userID).Err()
}

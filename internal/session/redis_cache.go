package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/psicocare/psicocare_bot/internal/model"
)

const (
	cachePrefix = "psicocare:session:"
	// ttl for tokens without exp
	defaultCacheTTL = 24 * time.Hour
)

// RedisCache is a read-through/write-through cache in front of a Store.
// Redis failures are logged and fall through to the backing store.
type RedisCache struct {
	next   Store
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

func NewRedisCache(next Store, client *redis.Client, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{next: next, client: client, logger: logger, now: time.Now}
}

type cachedSession struct {
	TelegramID int64     `json:"telegram_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func cacheKey(telegramID int64) string {
	return cachePrefix + strconv.FormatInt(telegramID, 10)
}

func (c *RedisCache) Get(ctx context.Context, telegramID int64) (*Session, error) {
	raw, err := c.client.Get(ctx, cacheKey(telegramID)).Bytes()
	switch {
	case err == nil:
		var cs cachedSession
		if jerr := json.Unmarshal(raw, &cs); jerr == nil {
			return &Session{
				TelegramID: cs.TelegramID,
				UserID:     cs.UserID,
				Name:       cs.Name,
				Role:       model.Role(cs.Role),
				Token:      cs.Token,
				ExpiresAt:  cs.ExpiresAt,
			}, nil
		}
		c.logger.Warn("Dropping unreadable cached session", zap.Int64("telegram_id", telegramID))
		c.client.Del(ctx, cacheKey(telegramID))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Session cache read failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	s, err := c.next.Get(ctx, telegramID)
	if err != nil || s == nil {
		return s, err
	}
	c.put(ctx, s)
	return s, nil
}

func (c *RedisCache) Save(ctx context.Context, s *Session) error {
	if err := c.next.Save(ctx, s); err != nil {
		return err
	}
	c.put(ctx, s)
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, telegramID int64) error {
	if err := c.client.Del(ctx, cacheKey(telegramID)).Err(); err != nil {
		c.logger.Warn("Session cache delete failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
	return c.next.Delete(ctx, telegramID)
}

// DeleteExpired only touches the backing store; cached entries expire by TTL.
func (c *RedisCache) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return c.next.DeleteExpired(ctx, now)
}

func (c *RedisCache) put(ctx context.Context, s *Session) {
	ttl := defaultCacheTTL
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(c.now())
		if ttl <= 0 {
			return
		}
	}

	raw, err := json.Marshal(cachedSession{
		TelegramID: s.TelegramID,
		UserID:     s.UserID,
		Name:       s.Name,
		Role:       string(s.Role),
		Token:      s.Token,
		ExpiresAt:  s.ExpiresAt,
	})
	if err != nil {
		c.logger.Warn("Session cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(s.TelegramID), raw, ttl).Err(); err != nil {
		c.logger.Warn("Session cache write failed", zap.Int64("telegram_id", s.TelegramID), zap.Error(fmt.Errorf("set: %w", err)))
	}
}

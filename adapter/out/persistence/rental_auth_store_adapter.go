package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshTokenKeyPrefix = "auth:refresh:"
	otpKeyPrefix          = "auth:otp:"
)

// RedisAuthStore implements out.AuthStore on Redis. Refresh token hashes
// and OTP codes expire by TTL, so stale entries clean themselves up.
type RedisAuthStore struct {
	client *redis.Client
}

func NewRedisAuthStore(client *redis.Client) *RedisAuthStore {
	return &RedisAuthStore{client: client}
}

func (s *RedisAuthStore) SaveRefreshToken(ctx context.Context, userID, hashedToken string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenKeyPrefix+userID, hashedToken, ttl).Err()
}

func (s *RedisAuthStore) GetRefreshToken(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, refreshTokenKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisAuthStore) DeleteRefreshToken(ctx context.Context, userID string) error {
	return s.client.Del(ctx, refreshTokenKeyPrefix+userID).Err()
}

func (s *RedisAuthStore) SaveOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKeyPrefix+email, code, ttl).Err()
}

func (s *RedisAuthStore) GetOTP(ctx context.Context, email string) (string, error) {
	val, err := s.client.Get(ctx, otpKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *RedisAuthStore) DeleteOTP(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKeyPrefix+email).Err()
}

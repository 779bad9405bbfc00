package out

import (
	"context"
	"time"
)

// AuthStore keeps transient auth state: bcrypt-hashed refresh tokens keyed
// by user id, and email OTP codes with TTL.
type AuthStore interface {
	SaveRefreshToken(ctx context.Context, userID string, hashedToken string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID string) (string, error)
	DeleteRefreshToken(ctx context.Context, userID string) error

	SaveOTP(ctx context.Context, email string, code string, ttl time.Duration) error
	GetOTP(ctx context.Context, email string) (string, error)
	DeleteOTP(ctx context.Context, email string) error
}
